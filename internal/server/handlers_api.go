package server

import (
	"net/http"

	"github.com/msuss/codenames/internal/game"
	"github.com/msuss/codenames/internal/words"

	"github.com/rs/zerolog/log"
)

type createGameRequest struct {
	BoardSize int               `json:"board_size"`
	LLMModel  string            `json:"llm_model"`
	Players   map[string]string `json:"players"`
}

type clueRequest struct {
	Team   string `json:"team"`
	Word   string `json:"word"`
	Number int    `json:"number"`
}

type guessRequest struct {
	Team string `json:"team"`
	Word string `json:"word"`
}

type endTurnRequest struct {
	Team string `json:"team"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	if !s.requireAccessToken(w, r) {
		return
	}
	req := createGameRequest{BoardSize: s.cfg.BoardSize, LLMModel: s.cfg.LLMModel}
	if r.ContentLength > 0 {
		if err := readJSON(r.Body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.BoardSize == 0 {
		req.BoardSize = s.cfg.BoardSize
	}
	if !validBoardSize(req.BoardSize) {
		writeError(w, http.StatusBadRequest, "board size must be one of 25, 36, 49, 64")
		return
	}
	pool, err := words.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load word pool")
		return
	}
	cfg := game.Config{
		BoardSize: req.BoardSize,
		WordPool:  pool,
		Model:     req.LLMModel,
		Players:   parsePlayers(req.Players),
	}
	g, err := s.store.CreateGame(cfg)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if err := s.persistGame(g); err != nil {
		log.Error().Str("game_id", g.ID).Err(err).Msg("failed to persist game")
	}
	log.Info().Str("game_id", g.ID).Int("board_size", req.BoardSize).Msg("game created")
	writeJSON(w, http.StatusCreated, map[string]string{
		"game_id": g.ID,
	})
}

func (s *Server) handleGameSubroutes(w http.ResponseWriter, r *http.Request) {
	gameID, action, ok := parseGamePath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		switch action {
		case "":
			s.handleGetGame(w, r, gameID)
		case "events":
			s.handleEvents(w, r, gameID)
		default:
			http.NotFound(w, r)
		}
	case http.MethodPost:
		switch action {
		case "clues":
			s.handleGiveClue(w, r, gameID)
		case "guesses":
			s.handleGuess(w, r, gameID)
		case "end-turn":
			s.handleEndTurn(w, r, gameID)
		case "agent-move":
			s.handleAgentMove(w, r, gameID)
		default:
			http.NotFound(w, r)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request, gameID string) {
	g, ok := s.store.GetGame(gameID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	spymasterView := r.URL.Query().Get("view") == "spymaster"
	writeJSON(w, http.StatusOK, snapshot(g, spymasterView))
}

func (s *Server) handleGiveClue(w http.ResponseWriter, r *http.Request, gameID string) {
	var req clueRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "clue word and number are required")
		return
	}
	word, err := validateClueWord(req.Word)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateClueNumber(req.Number); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g, err := s.store.UpdateGame(gameID, func(g *game.Game) error {
		_, err := g.Apply(actingTeam(g, req.Team), game.GiveClueAction{Word: word, Number: req.Number})
		return err
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	s.persistAction(g, "clue_given", map[string]any{
		"word":   word,
		"number": req.Number,
	})
	log.Info().Str("game_id", g.ID).Str("clue", word).Int("number", req.Number).Msg("clue given")
	writeJSON(w, http.StatusOK, snapshot(g, false))
	s.broadcastGameUpdate(g)
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request, gameID string) {
	var req guessRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "guess word is required")
		return
	}
	word, err := validateGuessWord(req.Word)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	turnEnded := false
	g, err := s.store.UpdateGame(gameID, func(g *game.Game) error {
		ended, err := g.Apply(actingTeam(g, req.Team), game.GuessAction{Word: word})
		turnEnded = ended
		return err
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	s.persistAction(g, "card_guessed", map[string]any{
		"word":       word,
		"turn_ended": turnEnded,
	})
	log.Info().Str("game_id", g.ID).Str("word", word).Bool("turn_ended", turnEnded).Msg("card guessed")
	resp := snapshot(g, false)
	resp["turn_ended"] = turnEnded
	writeJSON(w, http.StatusOK, resp)
	s.broadcastGameUpdate(g)
}

func (s *Server) handleEndTurn(w http.ResponseWriter, r *http.Request, gameID string) {
	var req endTurnRequest
	if r.ContentLength > 0 {
		if err := readJSON(r.Body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	g, err := s.store.UpdateGame(gameID, func(g *game.Game) error {
		_, err := g.Apply(actingTeam(g, req.Team), game.EndTurnAction{})
		return err
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	s.persistAction(g, "turn_ended", map[string]any{})
	log.Info().Str("game_id", g.ID).Str("next_team", string(g.CurrentTeam)).Msg("turn ended")
	writeJSON(w, http.StatusOK, snapshot(g, false))
	s.broadcastGameUpdate(g)
}

// actingTeam resolves the team a request acts for. An omitted team falls
// back to the side whose turn it is, so simple clients need not track it.
func actingTeam(g *game.Game, requested string) game.Team {
	if requested == "" {
		return g.CurrentTeam
	}
	return game.Team(requested)
}

func parsePlayers(raw map[string]string) map[game.Phase]game.PlayerKind {
	if len(raw) == 0 {
		return game.DefaultPlayers()
	}
	players := game.DefaultPlayers()
	for seat, kind := range raw {
		if _, known := players[game.Phase(seat)]; known {
			players[game.Phase(seat)] = game.PlayerKind(kind)
		}
	}
	return players
}
