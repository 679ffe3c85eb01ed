package server

import (
	"net/http"

	"disc-score/internal/config"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Server struct {
	store *Store
	db    *gorm.DB
	ws    *wsHub
	cfg   config.Config
}

// New builds a server over an optional database connection. A nil conn runs
// the server purely in memory, which is how the tests exercise it.
func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		store: NewStore(),
		db:    conn,
		ws:    newWSHub(),
		cfg:   cfg,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /games/", s.handleGameView)
	mux.HandleFunc("GET /ws/games/", s.handleWebsocket)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /api/teams", s.handleCreateTeam)
	mux.HandleFunc("GET /api/teams", s.handleListTeams)
	mux.HandleFunc("GET /api/teams/", s.handleTeamSubroutes)
	mux.HandleFunc("POST /api/teams/", s.handleTeamSubroutes)
	mux.HandleFunc("DELETE /api/teams/", s.handleTeamSubroutes)
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games", s.handleListGames)
	mux.HandleFunc("GET /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("POST /api/games/", s.handleGameSubroutes)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}

// broadcastGame recomputes the snapshot and pushes it to every websocket
// watching the game.
func (s *Server) broadcastGame(game *Game) {
	s.ws.Broadcast(game.ID, s.snapshot(game))
}
