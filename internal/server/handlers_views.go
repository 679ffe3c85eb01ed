package server

import (
	"log"
	"net/http"
	"strings"

	"disc-score/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	templ.Handler(web.Home(s.homeSummaries(currentUserID(r)))).ServeHTTP(w, r)
}

func (s *Server) homeSummaries(ownerID string) []web.GameSummary {
	summaries := s.store.ListGameSummaries(ownerID)
	list := make([]web.GameSummary, 0, len(summaries))
	for _, summary := range summaries {
		list = append(list, web.GameSummary(summary))
	}
	return list
}

func (s *Server) handleGameView(w http.ResponseWriter, r *http.Request) {
	gameID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/games/"), "/")
	if gameID == "" || strings.Contains(gameID, "/") {
		http.NotFound(w, r)
		return
	}
	game, ok := s.store.GetGame(gameID)
	if !ok {
		log.Printf("game view missing game_id=%s", gameID)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	templ.Handler(web.GameView(game.ID, game.Name)).ServeHTTP(w, r)
}
