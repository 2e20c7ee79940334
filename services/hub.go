package services

import (
	"encoding/json"
	"sync"

	"github.com/bingolive/backend/game"
	"github.com/bingolive/backend/utils/logger"
)

// Hub tracks live websocket clients and implements game.Publisher. Delivery
// is fire-and-forget: a client whose send buffer is full just misses the
// message, the session never waits on a socket.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}

func (h *Hub) get(id string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[id]
	return c, ok
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(evt game.Event) {
	b, err := json.Marshal(evt)
	if err != nil {
		logger.Errorf("marshal %s event: %v", evt.Type, err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.enqueue(b) {
			logger.Warnf("dropping %s event to client %s", evt.Type, c.id)
		}
	}
}

// SendTo sends an event to a single client; unknown ids are dropped.
func (h *Hub) SendTo(id string, evt game.Event) {
	c, ok := h.get(id)
	if !ok {
		return
	}
	b, err := json.Marshal(evt)
	if err != nil {
		logger.Errorf("marshal %s event: %v", evt.Type, err)
		return
	}
	if !c.enqueue(b) {
		logger.Warnf("dropping %s event to client %s", evt.Type, c.id)
	}
}

// Kick flushes what is already queued for a client and closes it.
func (h *Hub) Kick(id string) {
	if c, ok := h.get(id); ok {
		c.closeSend()
	}
}
