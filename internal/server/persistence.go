package server

import (
	"encoding/json"
	"errors"

	"github.com/msuss/codenames/internal/db"
	"github.com/msuss/codenames/internal/game"

	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// historyVersion tags the JSONB replay payload so tooling can evolve it.
const historyVersion = 1

func (s *Server) persistGame(g *game.Game) error {
	if s.db == nil {
		return nil
	}
	record := db.Game{
		GameID:    g.ID,
		Phase:     string(g.Phase),
		BoardSize: g.Config.BoardSize,
		Model:     g.Config.Model,
	}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error
}

// persistAction records an event row for a committed action, keeps the
// session row's phase current, and exports the terminal snapshot when the
// action finished the game. Persistence failures are logged, never allowed
// to fail the action that already committed in memory.
func (s *Server) persistAction(g *game.Game, eventType string, payload map[string]any) {
	if s.db == nil {
		return
	}
	if err := s.persistEvent(g, eventType, payload); err != nil {
		log.Error().Str("game_id", g.ID).Str("event", eventType).Err(err).Msg("failed to persist event")
	}
	updates := map[string]any{"phase": string(g.Phase)}
	if g.Winner != "" {
		updates["winner"] = string(g.Winner)
	}
	if err := s.db.Model(&db.Game{}).Where("game_id = ?", g.ID).Updates(updates).Error; err != nil {
		log.Error().Str("game_id", g.ID).Err(err).Msg("failed to update game row")
	}
	if g.Over() {
		if err := s.persistHistory(g); err != nil {
			log.Error().Str("game_id", g.ID).Err(err).Msg("failed to persist history")
		}
	}
}

func (s *Server) persistEvent(g *game.Game, eventType string, payload map[string]any) error {
	var parent db.Game
	if err := s.db.Where("game_id = ?", g.ID).First(&parent).Error; err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := db.Event{
		GameID:    parent.ID,
		TurnCount: g.TurnCount,
		Type:      eventType,
		Payload:   datatypes.JSON(data),
	}
	return s.db.Create(&event).Error
}

// historyRecord is the versioned on-disk replay schema.
type historyRecord struct {
	Version      int                   `json:"version"`
	GameID       string                `json:"game_id"`
	Cards        []game.Card           `json:"cards"`
	Winner       game.Team             `json:"winner,omitempty"`
	Log          []string              `json:"log"`
	ClueHistory  []game.ClueRecord     `json:"clue_history"`
	ReasoningLog []game.ReasoningEntry `json:"reasoning_log"`
	FinalScore   map[game.Team]int     `json:"final_score"`
}

func (s *Server) persistHistory(g *game.Game) error {
	record := historyRecord{
		Version:      historyVersion,
		GameID:       g.ID,
		Cards:        g.Cards,
		Winner:       g.Winner,
		Log:          g.Log,
		ClueHistory:  g.ClueHistory,
		ReasoningLog: g.ReasoningLog,
		FinalScore:   g.Score(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	row := db.History{
		GameID:  g.ID,
		Winner:  string(g.Winner),
		Version: historyVersion,
		Record:  datatypes.JSON(data),
	}
	err = s.db.Create(&row).Error
	if isUniqueViolation(err) {
		return s.db.Model(&db.History{}).Where("game_id = ?", g.ID).
			Updates(map[string]any{"winner": row.Winner, "record": row.Record}).Error
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
