package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/ahmedX999/customer-support-tickets-api/internal/adapters/primary/http/middleware"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/ports"
)

// UserHandler exposes the user directory to admins
type UserHandler struct {
	authService  ports.AuthService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	authService ports.AuthService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		authService:  authService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "user"),
	}
}

// RegisterRoutes sets up the routing for the user endpoints
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.With(mw.RequireRole(domain.RoleAdmin)).Get("/", h.HandleListUsers)
}

// HandleListUsers handles GET /users (admin only)
func (h *UserHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]UserDTO, 0, len(users))
	for _, user := range users {
		response = append(response, toUserDTO(user))
	}

	WriteList(w, response)
}
