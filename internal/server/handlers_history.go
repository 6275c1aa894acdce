package server

import (
	"encoding/json"
	"net/http"

	"github.com/msuss/codenames/internal/db"
)

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusOK, map[string]any{"games": []any{}})
		return
	}
	var rows []db.History
	if err := s.db.Order("created_at desc").Find(&rows).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	games := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		entry := map[string]any{
			"game_id": row.GameID,
			"winner":  row.Winner,
			"version": row.Version,
		}
		var record historyRecord
		if err := json.Unmarshal(row.Record, &record); err == nil {
			entry["final_score"] = record.FinalScore
		}
		games = append(games, entry)
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseHistoryPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "history not available")
		return
	}
	var row db.History
	if err := s.db.Where("game_id = ?", gameID).First(&row).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	var record historyRecord
	if err := json.Unmarshal(row.Record, &record); err != nil {
		writeError(w, http.StatusInternalServerError, "corrupted game history")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request, gameID string) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "events not available")
		return
	}
	var parent db.Game
	if err := s.db.Where("game_id = ?", gameID).First(&parent).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	var records []db.Event
	if err := s.db.Where("game_id = ?", parent.ID).Order("created_at asc").Find(&records).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load events")
		return
	}
	events := make([]map[string]any, 0, len(records))
	for _, record := range records {
		events = append(events, map[string]any{
			"id":         record.ID,
			"type":       record.Type,
			"turn_count": record.TurnCount,
			"created_at": record.CreatedAt,
			"payload":    record.Payload,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game_id": gameID,
		"events":  events,
	})
}
