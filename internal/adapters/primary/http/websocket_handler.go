package http

import (
	"log/slog"
	"net/http"

	gorillaws "github.com/gorilla/websocket"

	"github.com/ahmedX999/customer-support-tickets-api/internal/adapters/primary/websocket"
	"github.com/ahmedX999/customer-support-tickets-api/internal/auth"
)

// WebSocketHandler upgrades HTTP requests to websocket connections and
// registers them with the hub for live notification delivery.
type WebSocketHandler struct {
	hub          *websocket.Hub
	tokenManager *auth.TokenManager
	upgrader     gorillaws.Upgrader
	logger       *slog.Logger
}

// NewWebSocketHandler creates a new websocket handler. allowedOrigins is the
// same origin list the CORS middleware uses; "*" allows any origin.
func NewWebSocketHandler(
	hub *websocket.Hub,
	tokenManager *auth.TokenManager,
	allowedOrigins []string,
	logger *slog.Logger,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		tokenManager: tokenManager,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger.With("handler", "websocket"),
	}
}

func originChecker(allowedOrigins []string) func(*http.Request) bool {
	allowed := make(map[string]bool, len(allowedOrigins))
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(r *http.Request) bool {
		if allowAll {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			// Non-browser clients don't send an Origin header.
			return true
		}
		return allowed[origin]
	}
}

// HandleConnect handles GET /ws. Browsers cannot set headers on websocket
// requests, so the token is passed as a query parameter instead.
func (h *WebSocketHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing authentication token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokenManager.ValidateToken(token)
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, claims.UserID, h.logger)
	h.hub.Register <- client

	h.logger.Info("websocket connection established", "user_id", claims.UserID)

	go client.WritePump()
	go client.ReadPump()
}
