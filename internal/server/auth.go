package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const scorekeeperTokenHeader = "X-Scorekeeper-Token"

// currentUserID reads the opaque user id cookie set by the external auth
// layer. It is used only to partition team and game listings; an empty id is
// a valid anonymous session.
func currentUserID(r *http.Request) string {
	cookie, err := r.Cookie("uid")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

// newScorekeeperToken issues the per-game token handed to whoever created
// the game. Mutating point routes require it.
func newScorekeeperToken() string {
	return uuid.NewString()
}

func authorizeScorekeeper(game *Game, r *http.Request) bool {
	provided := strings.TrimSpace(r.Header.Get(scorekeeperTokenHeader))
	if provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(game.ScorekeeperToken)) == 1
}
