package websocket

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ahmedX999/customer-support-tickets-api/internal/core/ports"
)

// Hub is the process-local connection registry: it maps user IDs to their
// active connections and delivers messages to every connection a recipient
// holds. Entries exist only while a connection is open; nothing survives a
// restart and nothing is shared across instances.
type Hub struct {
	// clients maps user IDs to their active connections.
	// A single user can have multiple connections (multiple tabs/devices).
	clients map[uuid.UUID]map[*Client]bool

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// mu protects the clients map
	mu sync.RWMutex

	// logger for the hub
	logger *slog.Logger
}

// Ensure Hub implements the Pusher interface.
var _ ports.Pusher = (*Hub)(nil)

// NewHub creates a new WebSocket hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger.With("component", "websocket_hub"),
	}
}

// Run starts the hub's event loop. This MUST be run as a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)
		}
	}
}

// registerClient adds a client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.UserID] == nil {
		h.clients[client.UserID] = make(map[*Client]bool)
	}
	h.clients[client.UserID][client] = true

	h.logger.Info("client registered",
		"user_id", client.UserID,
		"total_connections", len(h.clients[client.UserID]),
	)
}

// unregisterClient removes a client from the hub and closes its send channel
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if userClients, ok := h.clients[client.UserID]; ok {
		if _, exists := userClients[client]; exists {
			delete(userClients, client)
			if len(userClients) == 0 {
				delete(h.clients, client.UserID)
			}
		}
	}

	client.CloseSend()

	h.logger.Info("client unregistered",
		"user_id", client.UserID,
	)
}

// SendToUser delivers a message to all of a user's connections. A recipient
// with no registered connection is silently skipped; that is expected, not
// an error.
func (h *Hub) SendToUser(userID uuid.UUID, message string) {
	h.mu.RLock()
	clients, ok := h.clients[userID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	// Copy the client list to avoid holding the lock while sending
	clientList := make([]*Client, 0, len(clients))
	for client := range clients {
		clientList = append(clientList, client)
	}
	h.mu.RUnlock()

	h.logger.Debug("pushing message",
		"user_id", userID,
		"connection_count", len(clientList),
	)

	for _, client := range clientList {
		select {
		case client.Send <- message:
		default:
			// Buffer full, skip this connection
			h.logger.Warn("client send buffer full, dropping message",
				"user_id", userID,
			)
		}
	}
}

// IsUserConnected checks if a user has any active connections
func (h *Hub) IsUserConnected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.clients[userID]
	return ok && len(clients) > 0
}

// ClientCount returns the total number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, userClients := range h.clients {
		count += len(userClients)
	}
	return count
}
