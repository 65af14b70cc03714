package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of active clients and pushes notification events
// to the connected clients of each user.
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	// Channel for outbound notification events
	events chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// Event is a notification event pushed over WebSocket
type Event struct {
	// Type of event: "notification"
	Type string `json:"type"`

	// User this event is addressed to
	UserID int64 `json:"userId"`

	// User who triggered the event
	SenderID int64 `json:"senderId"`

	// Notification kind: "like", "comment", "follow", "report"
	NotificationType string `json:"notificationType"`

	// ID of the post or user the notification refers to
	ReferenceID int64 `json:"referenceId"`

	// Human readable notification text
	Message string `json:"message"`

	// Timestamp when the event was created
	Timestamp time.Time `json:"timestamp"`

	// Notification ID from the database
	ID int64 `json:"id,omitempty"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		events:     make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and event delivery
// until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.events:
			h.deliverEvent(event)

		case <-ctx.Done():
			return
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.userID
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[*Client]bool)
	}
	h.clients[userID][client] = true

	h.logger.Info().
		Int64("userID", userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.userID
	if _, ok := h.clients[userID]; ok {
		if _, ok := h.clients[userID][client]; ok {
			delete(h.clients[userID], client)
			close(client.send)

			// If no more clients for this user, clean up
			if len(h.clients[userID]) == 0 {
				delete(h.clients, userID)
			}

			h.logger.Info().
				Int64("userID", userID).
				Str("addr", client.conn.RemoteAddr().String()).
				Msg("Client unregistered")
		}
	}
}

// deliverEvent sends an event to all connections of the addressed user
func (h *Hub) deliverEvent(event *Event) {
	h.mu.RLock()

	clients, ok := h.clients[event.UserID]
	if !ok {
		h.mu.RUnlock()
		h.logger.Debug().
			Int64("userID", event.UserID).
			Msg("No connected clients for event delivery")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().
			Err(err).
			Int64("userID", event.UserID).
			Msg("Failed to marshal event for delivery")
		return
	}

	// Clients with a full send buffer are dropped after the lock is released
	var stale []*Client
	for client := range clients {
		select {
		case client.send <- data:
		default:
			stale = append(stale, client)
		}
	}

	clientCount := len(clients)
	h.mu.RUnlock()

	for _, client := range stale {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Int64("userID", event.UserID).
		Int("clientCount", clientCount).
		Msg("Event delivered to user connections")
}

// NotifyUser queues an event for delivery to a user's open connections.
// The send is non-blocking; events are dropped if the hub is saturated.
func (h *Hub) NotifyUser(event *Event) {
	select {
	case h.events <- event:
	default:
		h.logger.Warn().Int64("userID", event.UserID).Msg("Event queue full, dropping event")
	}
}

// GetClientsCount returns the number of connected clients for a user
func (h *Hub) GetClientsCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[userID]; ok {
		return len(clients)
	}
	return 0
}
