package agent

import (
	"fmt"
	"strings"

	"github.com/msuss/codenames/internal/game"
)

// formatBoard lists every card with the visibility the role is entitled to:
// spymasters see all types, guessers only revealed ones.
func formatBoard(g *game.Game, spymasterView bool) string {
	var b strings.Builder
	b.WriteString("Current Board:\n")
	for _, card := range g.Cards {
		typeStr := "UNKNOWN"
		if spymasterView || card.Revealed {
			typeStr = string(card.Type)
		}
		status := ""
		if card.Revealed {
			status = " (REVEALED)"
		}
		fmt.Fprintf(&b, "- %s [%s]%s\n", card.Word, typeStr, status)
	}
	return b.String()
}

// formatClueHistory renders the clue record compactly for model context.
func formatClueHistory(history []game.ClueRecord) string {
	if len(history) == 0 {
		return "No clues given yet."
	}
	lines := make([]string, 0, len(history))
	for _, rec := range history {
		if len(rec.Guesses) == 0 {
			lines = append(lines, fmt.Sprintf("%s: %s %d -> (no guesses yet)", rec.Team, rec.Clue, rec.Number))
			continue
		}
		guesses := make([]string, 0, len(rec.Guesses))
		for _, guess := range rec.Guesses {
			guesses = append(guesses, fmt.Sprintf("%s(%s)", guess.Word, guess.Result))
		}
		lines = append(lines, fmt.Sprintf("%s: %s %d -> %s", rec.Team, rec.Clue, rec.Number, strings.Join(guesses, ", ")))
	}
	return strings.Join(lines, "\n")
}

func wordsOfType(g *game.Game, cardType game.CardType) []string {
	var out []string
	for _, card := range g.Cards {
		if card.Type == cardType && !card.Revealed {
			out = append(out, card.Word)
		}
	}
	return out
}
