package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/msuss/codenames/internal/game"

	"github.com/rs/zerolog/log"
)

// errStaleMove marks an agent result that arrived after the game already
// moved on. It is never surfaced as an HTTP error.
var errStaleMove = errors.New("stale agent move")

type agentMoveRequest struct {
	ExpectedTurnCount *int `json:"expected_turn_count"`
}

// handleAgentMove asks the LLM agent seated at the current phase for its
// move and applies it. The LLM call runs without the store lock against a
// snapshot; the result is applied only if the game's turn count is still
// the one the agent saw.
func (s *Server) handleAgentMove(w http.ResponseWriter, r *http.Request, gameID string) {
	if !s.requireAccessToken(w, r) {
		return
	}
	var req agentMoveRequest
	if r.ContentLength > 0 {
		if err := readJSON(r.Body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	var snap *game.Game
	if _, err := s.store.UpdateGame(gameID, func(g *game.Game) error {
		snap = g.Clone()
		return nil
	}); err != nil {
		writeEngineError(w, err)
		return
	}
	if req.ExpectedTurnCount != nil && *req.ExpectedTurnCount != snap.TurnCount {
		writeIgnored(w, fmt.Sprintf("expected turn %d but game is at turn %d", *req.ExpectedTurnCount, snap.TurnCount))
		return
	}
	if snap.Over() {
		writeIgnored(w, "game is over")
		return
	}
	if snap.Config.Players[snap.Phase] != game.PlayerAgent {
		writeError(w, http.StatusConflict, "current seat is not an agent")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(s.cfg.AgentTimeoutSeconds)*time.Second)
	defer cancel()

	if snap.Phase.IsSpymaster() {
		s.runSpymasterMove(ctx, w, gameID, snap)
		return
	}
	s.runGuesserMove(ctx, w, gameID, snap)
}

func (s *Server) runSpymasterMove(ctx context.Context, w http.ResponseWriter, gameID string, snap *game.Game) {
	spymaster := s.agents.Spymaster(snap.CurrentTeam, snap.Config.Model)
	move, err := spymaster.ProposeClue(ctx, snap)
	if err != nil {
		log.Error().Str("game_id", gameID).Err(err).Msg("spymaster agent failed")
		writeError(w, http.StatusBadGateway, "agent failed to produce a clue")
		return
	}

	g, err := s.store.UpdateGame(gameID, func(g *game.Game) error {
		if g.TurnCount != snap.TurnCount {
			return errStaleMove
		}
		g.AddReasoning(game.ReasoningEntry{
			Role:      fmt.Sprintf("%s SPYMASTER", g.CurrentTeam),
			Action:    fmt.Sprintf("Clue: %s %d", move.Word, move.Number),
			Reasoning: move.Reasoning,
			Timestamp: time.Now().UTC(),
		})
		_, err := g.Apply(g.CurrentTeam, game.GiveClueAction{Word: move.Word, Number: move.Number})
		return err
	})
	if errors.Is(err, errStaleMove) {
		writeIgnored(w, "game advanced while the agent was thinking")
		return
	}
	if err != nil {
		writeEngineError(w, err)
		return
	}
	s.persistAction(g, "agent_clue", map[string]any{
		"word":      move.Word,
		"number":    move.Number,
		"reasoning": move.Reasoning,
	})
	log.Info().Str("game_id", g.ID).Str("clue", move.Word).Int("number", move.Number).Msg("agent clue applied")
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"move": map[string]any{
			"type":   "clue",
			"word":   move.Word,
			"number": move.Number,
		},
		"state": snapshot(g, false),
	})
	s.broadcastGameUpdate(g)
}

func (s *Server) runGuesserMove(ctx context.Context, w http.ResponseWriter, gameID string, snap *game.Game) {
	guesser := s.agents.Guesser(snap.CurrentTeam, snap.Config.Model)
	plan, err := guesser.PlanGuesses(ctx, snap)
	if err != nil {
		log.Error().Str("game_id", gameID).Err(err).Msg("guesser agent failed")
		writeError(w, http.StatusBadGateway, "agent failed to produce a guess plan")
		return
	}

	action := "End Turn"
	if !plan.EndTurn {
		action = fmt.Sprintf("Guess Plan: [%s]", strings.Join(plan.Words, ", "))
	}

	var guessed []map[string]any
	g, err := s.store.UpdateGame(gameID, func(g *game.Game) error {
		if g.TurnCount != snap.TurnCount {
			return errStaleMove
		}
		g.AddReasoning(game.ReasoningEntry{
			Role:      fmt.Sprintf("%s GUESSER", g.CurrentTeam),
			Action:    action,
			Reasoning: plan.Reasoning,
			Timestamp: time.Now().UTC(),
		})
		if plan.EndTurn {
			_, err := g.Apply(g.CurrentTeam, game.EndTurnAction{})
			return err
		}
		team := g.CurrentTeam
		for _, word := range plan.Words {
			ended, err := g.Apply(team, game.GuessAction{Word: word})
			if err != nil {
				log.Warn().Str("game_id", g.ID).Str("word", word).Err(err).Msg("agent guess rejected")
				break
			}
			guessed = append(guessed, map[string]any{
				"word":       word,
				"turn_ended": ended,
			})
			if ended {
				break
			}
		}
		// A fully rejected plan must not stall the game.
		if len(guessed) == 0 && !g.Over() {
			_, err := g.Apply(team, game.EndTurnAction{})
			return err
		}
		return nil
	})
	if errors.Is(err, errStaleMove) {
		writeIgnored(w, "game advanced while the agent was thinking")
		return
	}
	if err != nil {
		writeEngineError(w, err)
		return
	}
	move := map[string]any{
		"type":     "guesses",
		"end_turn": plan.EndTurn,
		"guesses":  guessed,
	}
	s.persistAction(g, "agent_guesses", move)
	log.Info().Str("game_id", g.ID).Int("guesses", len(guessed)).Bool("end_turn", plan.EndTurn).Msg("agent guess plan applied")
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"move":   move,
		"state":  snapshot(g, false),
	})
	s.broadcastGameUpdate(g)
}

func writeIgnored(w http.ResponseWriter, reason string) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ignored",
		"reason": reason,
	})
}
