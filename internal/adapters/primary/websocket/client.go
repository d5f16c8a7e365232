package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Buffered channel of outbound messages.
	Send chan string

	// User ID for this client.
	UserID uuid.UUID

	// closeOnce ensures the Send channel is only closed once
	closeOnce sync.Once

	// logger for this client
	logger *slog.Logger
}

// NewClient creates a new WebSocket client
func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, logger *slog.Logger) *Client {
	return &Client{
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan string, 256),
		UserID: userID,
		logger: logger.With("user_id", userID.String()),
	}
}

// CloseSend safely closes the Send channel exactly once
func (c *Client) CloseSend() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// ReadPump pumps control messages from the websocket connection and tears
// the client down when the peer disconnects.
// This method runs in its own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error("failed to set read deadline", "error", err)
		return
	}

	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.logger.Error("failed to set read deadline in pong handler", "error", err)
		}
		return nil
	})

	for {
		// Clients only receive; anything they send is discarded.
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", "error", err)
			}
			break
		}
	}
}

// WritePump pumps messages from the hub to the websocket connection.
// This method runs in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline", "error", err)
				return
			}

			if !ok {
				// The hub closed the channel. Send close message.
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug("failed to send close message", "error", err)
				}
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline for ping", "error", err)
				return
			}

			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}
