package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/msuss/codenames/internal/game"
)

// endTurnSentinel in a guess plan signals a voluntary pass.
const endTurnSentinel = "END_TURN"

// GuesserAgent plans reveals for its team under the active clue.
type GuesserAgent struct {
	Team game.Team
	LLM  Completer
}

const guesserSystemPrompt = `You are an expert Codenames Guesser for Team %s.
The Spymaster has given you the clue: "%s" associated with %d cards. You are trying to find all your words before your opponent does.

STRATEGY:
1. Analyze the clue "%s" for all possible meanings (polysemy).
2. Rank the unrevealed words on the board by their semantic distance to the clue.
3. Select the top %d words that are strongest matches.
4. CONTEXT MATTERS: Look at your Spymaster's PREVIOUS clues in the Game History. If they previously gave a clue that you didn't fully resolve (e.g., they said "Animal 2" and you only guessed "DOG"), consider if "%s" helps confirm those old words as well.
5. If you are very confident (often due to historical context), you can guess one extra word to catch up on missed previous clues.
6. It is risky to guess if the next best word is weak or ambiguous.

Game History:
%s

Output JSON format:
{
    "reasoning": "Brief and concise analysis (max 2 sentences)",
    "words": ["GUESS_1", "GUESS_2"]
}
If you have no confident guesses, return ["END_TURN"] in the words list.`

func (a *GuesserAgent) PlanGuesses(ctx context.Context, g *game.Game) (GuessPlan, error) {
	if g.LastClue == nil {
		return GuessPlan{EndTurn: true, Reasoning: "No active clue."}, nil
	}
	clue := g.LastClue

	systemPrompt := fmt.Sprintf(guesserSystemPrompt,
		a.Team,
		clue.Word, clue.Number,
		clue.Word,
		clue.Number,
		clue.Word,
		formatClueHistory(g.ClueHistory),
	)
	userPrompt := formatBoard(g, false)

	response, err := a.LLM.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return GuessPlan{}, err
	}
	reasoning := stringField(response, "reasoning")
	words := stringSliceField(response, "words")
	for _, word := range words {
		if strings.EqualFold(word, endTurnSentinel) {
			if reasoning == "" {
				reasoning = "Decided to end turn."
			}
			return GuessPlan{EndTurn: true, Reasoning: reasoning}, nil
		}
	}
	if len(words) == 0 {
		return GuessPlan{EndTurn: true, Reasoning: reasoning}, nil
	}
	return GuessPlan{Words: words, Reasoning: reasoning}, nil
}

func stringSliceField(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		if word, ok := entry.(string); ok && strings.TrimSpace(word) != "" {
			out = append(out, strings.ToUpper(strings.TrimSpace(word)))
		}
	}
	return out
}
