package server

import (
	"net/http"

	"github.com/msuss/codenames/internal/agent"
	"github.com/msuss/codenames/internal/config"

	"gorm.io/gorm"
)

type Server struct {
	store  *Store
	db     *gorm.DB
	ws     *wsHub
	cfg    config.Config
	agents agent.Factory
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		store:  NewStore(),
		db:     conn,
		ws:     newWSHub(),
		cfg:    cfg,
		agents: agent.NewFactory(cfg),
	}
}

// SetAgentFactory swaps the LLM-backed agent factory, used by tests to
// substitute scripted agents.
func (s *Server) SetAgentFactory(factory agent.Factory) {
	s.agents = factory
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("POST /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("GET /api/history", s.handleHistoryList)
	mux.HandleFunc("GET /api/history/", s.handleHistoryGet)
	mux.HandleFunc("GET /ws/games/", s.handleWebsocket)
	return mux
}
