package session

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/coder/websocket"
)

var ErrBoardBusy = errors.New("board is open in another session")

// Hub tracks the live client of every open board. A board has at most one
// client at a time since each session owns its scene store.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client // boardID -> client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Acquire registers c as the client of its board.
func (h *Hub) Acquire(c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.BoardID()]; ok {
		return ErrBoardBusy
	}
	h.clients[c.BoardID()] = c
	slog.Info("session opened", "board", c.BoardID(), "session", c.session.ID)
	return nil
}

// Release unregisters c. It is a no-op if c no longer owns its board.
func (h *Hub) Release(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.BoardID()] != c {
		return
	}
	delete(h.clients, c.BoardID())
	slog.Info("session closed", "board", c.BoardID(), "session", c.session.ID)
}

// Busy reports whether boardID has a live client.
func (h *Hub) Busy(boardID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[boardID]
	return ok
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown closes every live connection. Each read loop then releases its
// client.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if c.conn != nil {
			c.conn.Close(websocket.StatusGoingAway, "server shutting down")
		}
	}
}
