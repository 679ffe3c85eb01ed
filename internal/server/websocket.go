package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// wsHub tracks the sockets watching each game. Every mutation pushes a full
// snapshot; clients never send anything meaningful upstream.
type wsHub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		groups: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (h *wsHub) Add(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[gameID]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[gameID] = group
	}
	group[conn] = struct{}{}
}

func (h *wsHub) Remove(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if group, ok := h.groups[gameID]; ok {
		delete(group, conn)
		if len(group) == 0 {
			delete(h.groups, gameID)
		}
	}
	_ = conn.Close()
}

func (h *wsHub) Broadcast(gameID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.groups[gameID]))
	for conn := range h.groups[gameID] {
		conns = append(conns, conn)
	}
	h.mu.Unlock()
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(gameID, conn)
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	gameID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/ws/games/"), "/")
	game, ok := s.store.GetGame(gameID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed game_id=%s err=%v", gameID, err)
		return
	}
	s.ws.Add(gameID, conn)
	s.ws.Broadcast(gameID, s.snapshot(game))

	go func() {
		defer s.ws.Remove(gameID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
