package game

import (
	"fmt"
	"strings"
)

// Game is the authoritative state of one session. Methods are not safe for
// concurrent use; the caller serializes access per game.
type Game struct {
	ID               string
	Config           Config
	Cards            []Card
	CurrentTeam      Team
	Phase            Phase
	Winner           Team // empty until decided, set at most once
	LastClue         *Clue
	RemainingGuesses int
	TurnCount        int
	Log              []string
	ClueHistory      []ClueRecord
	ReasoningLog     []ReasoningEntry
}

// New builds a fresh game with a generated board. RED moves first.
func New(id string, cfg Config) (*Game, error) {
	cards, err := NewBoard(cfg.WordPool, cfg.BoardSize)
	if err != nil {
		return nil, err
	}
	if cfg.Players == nil {
		cfg.Players = DefaultPlayers()
	}
	g := &Game{
		ID:          id,
		Config:      cfg,
		Cards:       cards,
		CurrentTeam: TeamRed,
		Phase:       PhaseRedSpymaster,
	}
	g.Log = append(g.Log, "Game initialized. Team RED starts.")
	return g, nil
}

func (g *Game) Over() bool {
	return g.Phase == PhaseGameOver
}

// ValidateClue applies the board-collision rules against unrevealed words:
// equality, clue containing a board word, or a board word containing the
// clue, all case-insensitive. Revealed words are no longer live targets and
// do not restrict clues.
func (g *Game) ValidateClue(word string) error {
	clue := strings.ToUpper(strings.TrimSpace(word))
	for _, c := range g.Cards {
		if c.Revealed {
			continue
		}
		boardWord := strings.ToUpper(c.Word)
		if clue == boardWord {
			return fmt.Errorf("%w: %q is on the board", ErrIllegalClue, word)
		}
		if strings.Contains(clue, boardWord) {
			return fmt.Errorf("%w: %q contains board word %q", ErrIllegalClue, word, c.Word)
		}
		if strings.Contains(boardWord, clue) {
			return fmt.Errorf("%w: %q is part of board word %q", ErrIllegalClue, word, c.Word)
		}
	}
	return nil
}

// GiveClue validates and commits a spymaster clue. The team is granted
// number+1 guesses including the standard bonus guess.
func (g *Game) GiveClue(team Team, word string, number int) error {
	if !g.Phase.IsSpymaster() {
		return fmt.Errorf("%w: phase is %s, only spymasters can move", ErrWrongPhase, g.Phase)
	}
	if team != g.CurrentTeam {
		return fmt.Errorf("%w: it is %s's turn, %s tried to move", ErrWrongTurn, g.CurrentTeam, team)
	}
	if err := g.ValidateClue(word); err != nil {
		return err
	}

	g.LastClue = &Clue{Word: word, Number: number}
	g.RemainingGuesses = number + 1
	g.TurnCount++
	g.Log = append(g.Log, fmt.Sprintf("%s Spymaster gives clue: %s %d", team, word, number))
	g.ClueHistory = append(g.ClueHistory, ClueRecord{
		Team:    team,
		Clue:    word,
		Number:  number,
		Guesses: []GuessOutcome{},
	})

	if g.CurrentTeam == TeamRed {
		g.Phase = PhaseRedGuesser
	} else {
		g.Phase = PhaseBlueGuesser
	}
	return nil
}

// GuessCard reveals the named card and applies its turn effects. The
// returned flag reports whether the guessing team's turn ended, so callers
// know without re-querying whether another guess is still legal.
func (g *Game) GuessCard(team Team, word string) (turnEnded bool, err error) {
	if !g.Phase.IsGuesser() {
		return false, fmt.Errorf("%w: phase is %s, only guessers can move", ErrWrongPhase, g.Phase)
	}
	if team != g.CurrentTeam {
		return false, fmt.Errorf("%w: it is %s's turn, %s tried to move", ErrWrongTurn, g.CurrentTeam, team)
	}
	idx := -1
	for i := range g.Cards {
		if g.Cards[i].Word == word {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, fmt.Errorf("%w: %q", ErrCardNotFound, word)
	}
	card := &g.Cards[idx]
	if card.Revealed {
		return false, fmt.Errorf("%w: %q", ErrAlreadyRevealed, word)
	}

	card.Revealed = true
	g.TurnCount++
	logMsg := fmt.Sprintf("%s guesses %s...", team, word)
	if n := len(g.ClueHistory); n > 0 {
		rec := &g.ClueHistory[n-1]
		rec.Guesses = append(rec.Guesses, GuessOutcome{Word: word, Result: card.Type})
	}

	switch card.Type {
	case CardAssassin:
		g.Log = append(g.Log, logMsg+" It's the ASSASSIN! Game Over.")
		g.Winner = g.CurrentTeam.Opponent()
		g.Phase = PhaseGameOver
		return true, nil
	case CardNeutral:
		g.Log = append(g.Log, logMsg+" It's a Civilian. Turn Over.")
		g.endTurn()
		return true, nil
	case CardType(g.CurrentTeam.Opponent()):
		g.Log = append(g.Log, logMsg+" It's the Opponent's card! Turn Over.")
		// The reveal may have flipped the opponent's last card.
		if g.checkWin() {
			return true, nil
		}
		g.endTurn()
		return true, nil
	case CardType(g.CurrentTeam):
		g.Log = append(g.Log, logMsg+" Correct!")
		g.RemainingGuesses--
		if g.checkWin() {
			return true, nil
		}
		if g.RemainingGuesses <= 0 {
			g.Log = append(g.Log, "Out of guesses. Turn Over.")
			g.endTurn()
			return true, nil
		}
		return false, nil
	}
	return false, fmt.Errorf("unknown card type %q", card.Type)
}

// EndTurn is the guessing team's voluntary pass.
func (g *Game) EndTurn(team Team) error {
	if !g.Phase.IsGuesser() {
		return fmt.Errorf("%w: cannot end turn during %s", ErrWrongPhase, g.Phase)
	}
	if team != g.CurrentTeam {
		return fmt.Errorf("%w: it is %s's turn", ErrWrongTurn, g.CurrentTeam)
	}
	g.Log = append(g.Log, fmt.Sprintf("%s ends turn manually.", team))
	g.endTurn()
	return nil
}

func (g *Game) endTurn() {
	g.TurnCount++
	g.LastClue = nil
	g.RemainingGuesses = 0
	if g.CurrentTeam == TeamRed {
		g.CurrentTeam = TeamBlue
		g.Phase = PhaseBlueSpymaster
	} else {
		g.CurrentTeam = TeamRed
		g.Phase = PhaseRedSpymaster
	}
}

// checkWin runs after every reveal regardless of which team acted. Setting
// the winner is permanent and forces the terminal phase.
func (g *Game) checkWin() bool {
	if g.Unrevealed(TeamRed) == 0 {
		g.Winner = TeamRed
		g.Log = append(g.Log, "Team RED wins!")
		g.Phase = PhaseGameOver
		return true
	}
	if g.Unrevealed(TeamBlue) == 0 {
		g.Winner = TeamBlue
		g.Log = append(g.Log, "Team BLUE wins!")
		g.Phase = PhaseGameOver
		return true
	}
	return false
}

// Unrevealed counts a team's cards still face down.
func (g *Game) Unrevealed(team Team) int {
	count := 0
	for _, c := range g.Cards {
		if c.Type == CardType(team) && !c.Revealed {
			count++
		}
	}
	return count
}

// Score counts revealed cards per team.
func (g *Game) Score() map[Team]int {
	score := map[Team]int{TeamRed: 0, TeamBlue: 0}
	for _, c := range g.Cards {
		if c.Revealed {
			switch c.Type {
			case CardRed:
				score[TeamRed]++
			case CardBlue:
				score[TeamBlue]++
			}
		}
	}
	return score
}

// AddReasoning appends an agent rationale to the reasoning log.
func (g *Game) AddReasoning(entry ReasoningEntry) {
	g.ReasoningLog = append(g.ReasoningLog, entry)
}

// Clone returns a deep copy, safe to read after the per-game lock is
// released (agents prompt against a clone while the live game moves on).
func (g *Game) Clone() *Game {
	clone := *g
	clone.Cards = append([]Card(nil), g.Cards...)
	clone.Log = append([]string(nil), g.Log...)
	clone.ReasoningLog = append([]ReasoningEntry(nil), g.ReasoningLog...)
	clone.ClueHistory = make([]ClueRecord, len(g.ClueHistory))
	for i, rec := range g.ClueHistory {
		rec.Guesses = append([]GuessOutcome(nil), rec.Guesses...)
		clone.ClueHistory[i] = rec
	}
	if g.LastClue != nil {
		clue := *g.LastClue
		clone.LastClue = &clue
	}
	return &clone
}
