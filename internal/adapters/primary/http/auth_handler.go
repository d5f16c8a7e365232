package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ahmedX999/customer-support-tickets-api/internal/adapters/primary/validation"
	"github.com/ahmedX999/customer-support-tickets-api/internal/auth"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/ports"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	authService  ports.AuthService
	tokenManager *auth.TokenManager
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService ports.AuthService,
	tokenManager *auth.TokenManager,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenManager: tokenManager,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "auth"),
	}
}

// RegisterRoutes sets up the routing for the auth endpoints. These routes
// are public and must be mounted outside the JWT middleware.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
}

// RegisterRequest defines the expected JSON body for user registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate validates the registration request
func (r *RegisterRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("name", r.Name).
		MaxLength("name", r.Name, 100)

	v.Required("email", r.Email).
		Email("email", r.Email)

	v.Required("password", r.Password)

	if r.Role != "" {
		v.OneOf("role", r.Role, []string{"customer", "agent", "admin"})
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// LoginRequest defines the expected JSON body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login request
func (r *LoginRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("email", r.Email).
		Email("email", r.Email)

	v.Required("password", r.Password)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UserDTO defines the JSON response for users. The password hash never
// leaves the server.
type UserDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// AuthResponse is returned on successful login
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

func toUserDTO(user *domain.User) UserDTO {
	return UserDTO{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// HandleRegister handles POST /auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[RegisterRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	role := domain.RoleCustomer
	if req.Role != "" {
		role = domain.Role(req.Role)
	}

	user, err := h.authService.Register(r.Context(), domain.UserRegistrationParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("user registered",
		"user_id", user.ID,
		"role", user.Role,
	)

	WriteCreated(w, toUserDTO(user))
}

// HandleLogin handles POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[LoginRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	token, err := h.tokenManager.GenerateToken(user.ID, user.Role)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID)

	WriteJSON(w, http.StatusOK, AuthResponse{
		Token: token,
		User:  toUserDTO(user),
	})
}
