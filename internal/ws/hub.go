package ws

import (
	"encoding/json"
	"sync"

	"todo_backend/internal/domain"
	"todo_backend/internal/logger"
)

// Hub fans change events out to every connected client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Register adds c; it reports false once the hub is closed.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	logger.Debug("ws client registered", "client", c.ID, "clients", len(h.clients))
	return true
}

// Unregister removes c and closes its send queue. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(c)
}

func (h *Hub) remove(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.Send)
	logger.Debug("ws client unregistered", "client", c.ID, "clients", len(h.clients))
}

// Publish never blocks: clients whose queue is full are dropped.
func (h *Hub) Publish(e domain.Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		logger.Error("ws marshal event", "type", e.Type, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("ws client too slow, dropping", "client", c.ID)
			h.remove(c)
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.remove(c)
	}
}
