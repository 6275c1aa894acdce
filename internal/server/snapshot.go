package server

import "github.com/msuss/codenames/internal/game"

// snapshot renders a game for a viewer. Unrevealed card types are hidden
// unless the viewer is a spymaster or the game is over.
func snapshot(g *game.Game, spymasterView bool) map[string]any {
	gameOver := g.Over()
	cards := make([]map[string]any, 0, len(g.Cards))
	for _, card := range g.Cards {
		entry := map[string]any{
			"word":     card.Word,
			"revealed": card.Revealed,
			"type":     nil,
		}
		if spymasterView || card.Revealed || gameOver {
			entry["type"] = card.Type
		}
		cards = append(cards, entry)
	}

	var winner any
	if g.Winner != "" {
		winner = g.Winner
	}
	var lastClue any
	if g.LastClue != nil {
		lastClue = map[string]any{
			"word":   g.LastClue.Word,
			"number": g.LastClue.Number,
		}
	}

	players := make(map[string]game.PlayerKind, len(g.Config.Players))
	for seat, kind := range g.Config.Players {
		players[string(seat)] = kind
	}

	return map[string]any{
		"id":                g.ID,
		"cards":             cards,
		"phase":             g.Phase,
		"current_turn":      g.CurrentTeam,
		"players":           players,
		"llm_model":         g.Config.Model,
		"score":             g.Score(),
		"winner":            winner,
		"last_clue":         lastClue,
		"remaining_guesses": g.RemainingGuesses,
		"turn_count":        g.TurnCount,
		"log":               g.Log,
		"clue_history":      g.ClueHistory,
		"reasoning_log":     g.ReasoningLog,
	}
}
