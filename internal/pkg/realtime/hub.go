// Package realtime pushes freshly created notification records to connected
// recipients over WebSocket. The stream is best-effort and at-least-once:
// a disconnected client misses nothing durable, because the rows are already
// in the notifications table and the client re-fetches on reconnect.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/SaSee1722/leavex/internal/app/models"
)

// Hub maintains the set of active clients grouped by recipient user ID and
// fans notification events out to them.
type Hub struct {
	// Registered clients organized by recipient user ID
	clients map[string]map[*Client]bool

	// Channel for outbound notification events
	events chan *models.Notification

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		events:     make(chan *models.Notification, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run processes register/unregister/event traffic. It should be started once
// in its own goroutine during bootstrap.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mu.Unlock()
			h.logger.Debug().Str("userID", client.userID).Msg("Realtime client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.userID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.events:
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Error().Err(err).Str("notificationID", event.ID).Msg("Failed to marshal realtime event")
				continue
			}

			h.mu.RLock()
			conns := h.clients[event.UserID]
			for client := range conns {
				select {
				case client.send <- payload:
				default:
					// Slow consumer; drop the frame, the row is durable.
					h.logger.Debug().Str("userID", event.UserID).Msg("Dropped realtime frame for slow client")
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish queues a notification for delivery to the recipient's open
// connections. It never blocks the caller.
func (h *Hub) Publish(n *models.Notification) {
	select {
	case h.events <- n:
	default:
		h.logger.Warn().Str("notificationID", n.ID).Msg("Realtime event queue full, dropping frame")
	}
}
