package game

import "time"

// Team is one of the two guessing sides.
type Team string

const (
	TeamRed  Team = "RED"
	TeamBlue Team = "BLUE"
)

func (t Team) Opponent() Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

func (t Team) Valid() bool {
	return t == TeamRed || t == TeamBlue
}

// CardType is the hidden affiliation of a board card.
type CardType string

const (
	CardRed      CardType = "RED"
	CardBlue     CardType = "BLUE"
	CardNeutral  CardType = "NEUTRAL"
	CardAssassin CardType = "ASSASSIN"
)

// Phase names the acting seat; GAME_OVER is terminal.
type Phase string

const (
	PhaseRedSpymaster  Phase = "RED_SPYMASTER"
	PhaseRedGuesser    Phase = "RED_GUESSER"
	PhaseBlueSpymaster Phase = "BLUE_SPYMASTER"
	PhaseBlueGuesser   Phase = "BLUE_GUESSER"
	PhaseGameOver      Phase = "GAME_OVER"
)

func (p Phase) IsSpymaster() bool {
	return p == PhaseRedSpymaster || p == PhaseBlueSpymaster
}

func (p Phase) IsGuesser() bool {
	return p == PhaseRedGuesser || p == PhaseBlueGuesser
}

// PlayerKind says whether a seat is driven by a human or an LLM agent.
type PlayerKind string

const (
	PlayerHuman PlayerKind = "human"
	PlayerAgent PlayerKind = "agent"
)

// Card is immutable after creation except for the Revealed flag, which
// flips to true exactly once.
type Card struct {
	Word     string   `json:"word"`
	Type     CardType `json:"type"`
	Revealed bool     `json:"revealed"`
}

// Clue is a spymaster's hint word and stated count.
type Clue struct {
	Word   string `json:"word"`
	Number int    `json:"number"`
}

// GuessOutcome records one reveal made under a clue.
type GuessOutcome struct {
	Word   string   `json:"word"`
	Result CardType `json:"result"`
}

// ClueRecord is the structured history entry for one clue. Guesses is
// appended to as reveals happen while the clue is active.
type ClueRecord struct {
	Team    Team           `json:"team"`
	Clue    string         `json:"clue"`
	Number  int            `json:"number"`
	Guesses []GuessOutcome `json:"guesses"`
}

// ReasoningEntry is an externally supplied rationale from an agent move.
// The engine stores these verbatim; it never produces them itself.
type ReasoningEntry struct {
	Role      string    `json:"role"`
	Action    string    `json:"action"`
	Reasoning string    `json:"reasoning"`
	Timestamp time.Time `json:"timestamp"`
}

// Config is fixed once a game starts.
type Config struct {
	BoardSize int
	WordPool  []string
	Model     string
	Players   map[Phase]PlayerKind
}

// DefaultPlayers seats humans everywhere.
func DefaultPlayers() map[Phase]PlayerKind {
	return map[Phase]PlayerKind{
		PhaseRedSpymaster:  PlayerHuman,
		PhaseRedGuesser:    PlayerHuman,
		PhaseBlueSpymaster: PlayerHuman,
		PhaseBlueGuesser:   PlayerHuman,
	}
}
