// Package agent implements the LLM-backed players. Agents consume a game
// snapshot and propose moves; they never mutate state themselves. Everything
// they return goes through the engine's normal validation, and clue-giving
// agents self-validate with bounded retries before submitting.
package agent

import (
	"context"

	"github.com/msuss/codenames/internal/config"
	"github.com/msuss/codenames/internal/game"
)

// ClueMove is a spymaster decision.
type ClueMove struct {
	Word      string
	Number    int
	Reasoning string
}

// GuessPlan is a guesser decision: an ordered word plan, or a voluntary
// end of turn.
type GuessPlan struct {
	Words     []string
	EndTurn   bool
	Reasoning string
}

type Spymaster interface {
	ProposeClue(ctx context.Context, g *game.Game) (ClueMove, error)
}

type Guesser interface {
	PlanGuesses(ctx context.Context, g *game.Game) (GuessPlan, error)
}

// Factory builds agents per team and model. Tests substitute scripted
// implementations.
type Factory interface {
	Spymaster(team game.Team, model string) Spymaster
	Guesser(team game.Team, model string) Guesser
}

type llmFactory struct {
	cfg config.Config
}

func NewFactory(cfg config.Config) Factory {
	return &llmFactory{cfg: cfg}
}

func (f *llmFactory) Spymaster(team game.Team, model string) Spymaster {
	return &SpymasterAgent{
		Team:       team,
		LLM:        NewClient(f.cfg, model),
		MaxRetries: f.cfg.AgentMaxRetries,
	}
}

func (f *llmFactory) Guesser(team game.Team, model string) Guesser {
	return &GuesserAgent{
		Team: team,
		LLM:  NewClient(f.cfg, model),
	}
}
