package game

// Action is the closed set of moves the engine accepts. The transport layer
// decodes requests into one of these instead of passing free-form payloads.
type Action interface {
	isAction()
}

type GiveClueAction struct {
	Word   string
	Number int
}

type GuessAction struct {
	Word string
}

type EndTurnAction struct{}

func (GiveClueAction) isAction() {}
func (GuessAction) isAction()    {}
func (EndTurnAction) isAction()  {}

// Apply dispatches an action for the given team. The turn-ended flag is
// meaningful for guesses; clue and end-turn actions always report true.
func (g *Game) Apply(team Team, action Action) (turnEnded bool, err error) {
	switch a := action.(type) {
	case GiveClueAction:
		return true, g.GiveClue(team, a.Word, a.Number)
	case GuessAction:
		return g.GuessCard(team, a.Word)
	case EndTurnAction:
		return true, g.EndTurn(team)
	default:
		panic("game: unhandled action type")
	}
}
