package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/msuss/codenames/internal/game"

	"github.com/rs/zerolog/log"
)

// SpymasterAgent proposes clues for its team. It re-checks every candidate
// against the engine's own collision rules before submitting and retries a
// bounded number of times; the engine never relaxes validation for agents.
type SpymasterAgent struct {
	Team       game.Team
	LLM        Completer
	MaxRetries int
}

const spymasterSystemPrompt = `You are an expert Codenames Spymaster for Team %s.
Your goal is to be the FIRST to contact all your team's words. You want to beat the opponent.
Give a single-word clue that connects as many of your team's cards as possible, while strictly avoiding (in order of importance) the Assassin, the Opposing team's cards, and the Neutral cards.

STRATEGY:
1. Look for semantic intersections between 2, 3, or more of your words.
2. "Stretch" connections are okay if they are distinct from the "Bad" words.
3. Prioritize clues with numbers >= 2. A clue for 1 word is weak unless it's the last one.
4. Keep in mind that Guessers will look at previous clues from you to see if they missed any connections. You can use this to "guide" them toward words that were previously hinted at but not guessed.
5. ABSOLUTELY forbidden to give a clue that relates more strongly to the Assassin than your target words.

RULES:
1. Clue must be a single word (no spaces, no hyphens).
2. Clue cannot be any of the words currently visible on the board (unrevealed).
3. Clue cannot contain a board word as a substring (e.g. "PINEAPPLE" for "APPLE"), and a board word cannot contain the clue as a substring.

Game History:
%s

Your remaining words: %s
BAD words (Avoid!): %s (Assassin), %s (Opponent)

Output JSON format:
{
    "reasoning": "Brief and concise thought process (max 2 sentences)",
    "word": "CLUE_WORD",
    "number": INTEGER
}`

func (a *SpymasterAgent) ProposeClue(ctx context.Context, g *game.Game) (ClueMove, error) {
	myWords := wordsOfType(g, game.CardType(a.Team))
	if len(myWords) == 0 {
		return ClueMove{Word: "WIN", Number: 0, Reasoning: "No words left to hint at!"}, nil
	}
	oppWords := wordsOfType(g, game.CardType(a.Team.Opponent()))
	assassin := wordsOfType(g, game.CardAssassin)

	systemPrompt := fmt.Sprintf(spymasterSystemPrompt,
		a.Team,
		formatClueHistory(g.ClueHistory),
		strings.Join(myWords, ", "),
		strings.Join(assassin, ", "),
		strings.Join(oppWords, ", "),
	)
	userPrompt := formatBoard(g, true)

	attempts := 0
	for attempts <= a.MaxRetries {
		move, err := a.requestClue(ctx, g, systemPrompt, userPrompt)
		if err == nil {
			return move, nil
		}
		if ctx.Err() != nil {
			return ClueMove{}, ctx.Err()
		}
		attempts++
		log.Warn().Str("team", string(a.Team)).Int("attempt", attempts).Err(err).Msg("spymaster retry")
	}
	return ClueMove{Word: "PASS", Number: 0, Reasoning: "Failed to generate a valid clue."}, nil
}

func (a *SpymasterAgent) requestClue(ctx context.Context, g *game.Game, systemPrompt, userPrompt string) (ClueMove, error) {
	response, err := a.LLM.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return ClueMove{}, err
	}
	word := strings.ToUpper(strings.TrimSpace(stringField(response, "word")))
	if word == "" {
		return ClueMove{}, fmt.Errorf("model returned no clue word")
	}
	if strings.ContainsAny(word, " \t-") {
		return ClueMove{}, fmt.Errorf("clue %q is not a single word", word)
	}
	if err := g.ValidateClue(word); err != nil {
		return ClueMove{}, err
	}
	return ClueMove{
		Word:      word,
		Number:    intField(response, "number"),
		Reasoning: stringField(response, "reasoning"),
	}, nil
}

func stringField(m map[string]any, key string) string {
	if value, ok := m[key].(string); ok {
		return value
	}
	return ""
}

func intField(m map[string]any, key string) int {
	switch value := m[key].(type) {
	case float64:
		return int(value)
	case int:
		return value
	}
	return 0
}
