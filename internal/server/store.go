package server

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/msuss/codenames/internal/game"

	"github.com/google/uuid"
)

var errGameNotFound = errors.New("game not found")

// Store is the session arena: every live game keyed by id, all mutation
// funneled through one lock so each accepted action is atomic.
type Store struct {
	mu    sync.Mutex
	games map[string]*game.Game
}

func NewStore() *Store {
	return &Store{
		games: make(map[string]*game.Game),
	}
}

func (s *Store) CreateGame(cfg game.Config) (*game.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := newGameID()
	for {
		if _, taken := s.games[id]; !taken {
			break
		}
		id = newGameID()
	}
	g, err := game.New(id, cfg)
	if err != nil {
		return nil, err
	}
	s.games[id] = g
	return g, nil
}

func (s *Store) GetGame(id string) (*game.Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	return g, ok
}

// UpdateGame runs update under the store lock. If update returns an error
// the game is left exactly as it was.
func (s *Store) UpdateGame(id string, update func(g *game.Game) error) (*game.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, errGameNotFound
	}
	if err := update(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Store) RemoveGame(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

type GameSummary struct {
	ID        string
	Phase     game.Phase
	TurnCount int
	Winner    game.Team
}

func (s *Store) ListGameSummaries() []GameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]GameSummary, 0, len(s.games))
	for _, g := range s.games {
		list = append(list, GameSummary{
			ID:        g.ID,
			Phase:     g.Phase,
			TurnCount: g.TurnCount,
			Winner:    g.Winner,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}

func newGameID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
