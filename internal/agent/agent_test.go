package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msuss/codenames/internal/game"
)

// fakeCompleter replays scripted responses and records how often it was
// asked.
type fakeCompleter struct {
	responses []map[string]any
	err       error
	calls     int
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (map[string]any, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	idx := f.calls - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx], nil
}

func testGame(t *testing.T) *game.Game {
	t.Helper()
	return &game.Game{
		ID: "test",
		Cards: []game.Card{
			{Word: "APPLE", Type: game.CardRed},
			{Word: "BRICK", Type: game.CardRed},
			{Word: "CLOUD", Type: game.CardBlue},
			{Word: "DRUM", Type: game.CardBlue},
			{Word: "EAGLE", Type: game.CardNeutral},
			{Word: "FROST", Type: game.CardAssassin},
		},
		CurrentTeam: game.TeamRed,
		Phase:       game.PhaseRedSpymaster,
	}
}

func TestSpymasterProposesValidClue(t *testing.T) {
	llm := &fakeCompleter{responses: []map[string]any{
		{"word": "fruit", "number": float64(2), "reasoning": "APPLE and BRICK share a stall"},
	}}
	spymaster := &SpymasterAgent{Team: game.TeamRed, LLM: llm, MaxRetries: 3}

	move, err := spymaster.ProposeClue(context.Background(), testGame(t))
	if err != nil {
		t.Fatalf("propose clue: %v", err)
	}
	if move.Word != "FRUIT" {
		t.Fatalf("expected uppercased clue, got %q", move.Word)
	}
	if move.Number != 2 {
		t.Fatalf("expected number 2, got %d", move.Number)
	}
	if llm.calls != 1 {
		t.Fatalf("expected one model call, got %d", llm.calls)
	}
}

func TestSpymasterRetriesIllegalClues(t *testing.T) {
	llm := &fakeCompleter{responses: []map[string]any{
		{"word": "APPLE", "number": float64(2)},     // on the board
		{"word": "TWO WORDS", "number": float64(1)}, // not a single word
		{"word": "FRUIT", "number": float64(2)},
	}}
	spymaster := &SpymasterAgent{Team: game.TeamRed, LLM: llm, MaxRetries: 3}

	move, err := spymaster.ProposeClue(context.Background(), testGame(t))
	if err != nil {
		t.Fatalf("propose clue: %v", err)
	}
	if move.Word != "FRUIT" {
		t.Fatalf("expected third attempt to land, got %q", move.Word)
	}
	if llm.calls != 3 {
		t.Fatalf("expected 3 model calls, got %d", llm.calls)
	}
}

func TestSpymasterFallsBackToPass(t *testing.T) {
	llm := &fakeCompleter{responses: []map[string]any{
		{"word": "APPLE", "number": float64(2)},
	}}
	spymaster := &SpymasterAgent{Team: game.TeamRed, LLM: llm, MaxRetries: 2}

	move, err := spymaster.ProposeClue(context.Background(), testGame(t))
	if err != nil {
		t.Fatalf("propose clue: %v", err)
	}
	if move.Word != "PASS" || move.Number != 0 {
		t.Fatalf("expected PASS fallback, got %+v", move)
	}
	if llm.calls != 3 {
		t.Fatalf("expected MaxRetries+1 calls, got %d", llm.calls)
	}
}

func TestSpymasterAbortsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	llm := &fakeCompleter{err: errors.New("request aborted")}
	spymaster := &SpymasterAgent{Team: game.TeamRed, LLM: llm, MaxRetries: 5}

	_, err := spymaster.ProposeClue(ctx, testGame(t))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if llm.calls != 1 {
		t.Fatalf("expected no retries after cancellation, got %d calls", llm.calls)
	}
}

func TestSpymasterWinsWithNoWordsLeft(t *testing.T) {
	g := testGame(t)
	g.Cards[0].Revealed = true
	g.Cards[1].Revealed = true
	llm := &fakeCompleter{}
	spymaster := &SpymasterAgent{Team: game.TeamRed, LLM: llm, MaxRetries: 3}

	move, err := spymaster.ProposeClue(context.Background(), g)
	if err != nil {
		t.Fatalf("propose clue: %v", err)
	}
	if move.Word != "WIN" {
		t.Fatalf("expected WIN sentinel, got %q", move.Word)
	}
	if llm.calls != 0 {
		t.Fatalf("expected no model calls, got %d", llm.calls)
	}
}

func TestGuesserPlansWords(t *testing.T) {
	g := testGame(t)
	g.Phase = game.PhaseRedGuesser
	g.LastClue = &game.Clue{Word: "FRUIT", Number: 2}
	llm := &fakeCompleter{responses: []map[string]any{
		{"words": []any{"apple", " brick "}, "reasoning": "both read as fruit stall items"},
	}}
	guesser := &GuesserAgent{Team: game.TeamRed, LLM: llm}

	plan, err := guesser.PlanGuesses(context.Background(), g)
	if err != nil {
		t.Fatalf("plan guesses: %v", err)
	}
	if plan.EndTurn {
		t.Fatalf("expected a guess plan, got end turn")
	}
	if len(plan.Words) != 2 || plan.Words[0] != "APPLE" || plan.Words[1] != "BRICK" {
		t.Fatalf("expected normalized words, got %v", plan.Words)
	}
}

func TestGuesserEndTurnSentinel(t *testing.T) {
	g := testGame(t)
	g.Phase = game.PhaseRedGuesser
	g.LastClue = &game.Clue{Word: "FRUIT", Number: 1}
	llm := &fakeCompleter{responses: []map[string]any{
		{"words": []any{"END_TURN"}, "reasoning": "nothing matches"},
	}}
	guesser := &GuesserAgent{Team: game.TeamRed, LLM: llm}

	plan, err := guesser.PlanGuesses(context.Background(), g)
	if err != nil {
		t.Fatalf("plan guesses: %v", err)
	}
	if !plan.EndTurn {
		t.Fatalf("expected end turn, got %v", plan.Words)
	}
}

func TestGuesserEndsTurnWithoutClue(t *testing.T) {
	llm := &fakeCompleter{}
	guesser := &GuesserAgent{Team: game.TeamRed, LLM: llm}

	plan, err := guesser.PlanGuesses(context.Background(), testGame(t))
	if err != nil {
		t.Fatalf("plan guesses: %v", err)
	}
	if !plan.EndTurn {
		t.Fatalf("expected end turn with no active clue")
	}
	if llm.calls != 0 {
		t.Fatalf("expected no model calls, got %d", llm.calls)
	}
}

func TestFormatBoardHidesTypesFromGuessers(t *testing.T) {
	g := testGame(t)
	g.Cards[2].Revealed = true

	board := formatBoard(g, false)
	if !strings.Contains(board, "- APPLE [UNKNOWN]") {
		t.Fatalf("guesser view should hide unrevealed types:\n%s", board)
	}
	if !strings.Contains(board, "- CLOUD [BLUE] (REVEALED)") {
		t.Fatalf("revealed cards should show their type:\n%s", board)
	}

	spymasterBoard := formatBoard(g, true)
	if !strings.Contains(spymasterBoard, "- FROST [ASSASSIN]") {
		t.Fatalf("spymaster view should show all types:\n%s", spymasterBoard)
	}
}

func TestFormatClueHistory(t *testing.T) {
	if got := formatClueHistory(nil); got != "No clues given yet." {
		t.Fatalf("unexpected empty history: %q", got)
	}
	history := []game.ClueRecord{
		{Team: game.TeamRed, Clue: "FRUIT", Number: 2, Guesses: []game.GuessOutcome{
			{Word: "APPLE", Result: game.CardRed},
			{Word: "EAGLE", Result: game.CardNeutral},
		}},
		{Team: game.TeamBlue, Clue: "SKY", Number: 1},
	}
	got := formatClueHistory(history)
	if !strings.Contains(got, "RED: FRUIT 2 -> APPLE(RED), EAGLE(NEUTRAL)") {
		t.Fatalf("unexpected history line:\n%s", got)
	}
	if !strings.Contains(got, "BLUE: SKY 1 -> (no guesses yet)") {
		t.Fatalf("unexpected empty-guess line:\n%s", got)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []string{
		`{"word": "FRUIT", "number": 2}`,
		"```json\n{\"word\": \"FRUIT\", \"number\": 2}\n```",
		"Here you go:\n```\n{\"word\": \"FRUIT\", \"number\": 2}\n```",
	}
	for _, raw := range cases {
		out, err := ExtractJSON(raw)
		if err != nil {
			t.Fatalf("extract %q: %v", raw, err)
		}
		if out["word"] != "FRUIT" {
			t.Fatalf("extract %q: got %v", raw, out)
		}
	}
	if _, err := ExtractJSON("not json at all"); err == nil {
		t.Fatalf("expected error for invalid payload")
	}
}
