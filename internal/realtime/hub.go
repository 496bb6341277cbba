// Package realtime fans out leaderboard change events to WebSocket clients.
package realtime

import (
	"log/slog"
	"sync"

	"github.com/goccy/go-json"

	"github.com/terra-clan/academy-api/internal/metrics"
)

// Event types
const (
	EventLeaderboardUpdated = "leaderboard_updated"
	EventSubmissionCreated  = "submission_created"
	EventWeeklyReset        = "weekly_reset"
)

// Event is one message pushed to every connected client
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Hub keeps the set of connected clients. Publishing never blocks: a client
// whose send buffer is full is disconnected.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	closed  bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Publish encodes evt once and queues it for every client
func (h *Hub) Publish(evt Event) {
	payload, err := json.Marshal(evt)
	if err != nil {
		slog.Error("failed to encode event", "type", evt.Type, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			slog.Warn("dropping slow stream client", "client_id", c.id)
			h.removeLocked(c)
			metrics.WSDroppedClients.Inc()
		}
	}
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	metrics.WSConnections.Inc()
	slog.Info("stream client connected", "client_id", c.id, "total_clients", len(h.clients))
	return true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked closes the client's send channel exactly once.
// Caller holds h.mu.
func (h *Hub) removeLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	metrics.WSConnections.Dec()
	slog.Info("stream client disconnected", "client_id", c.id, "total_clients", len(h.clients))
}
