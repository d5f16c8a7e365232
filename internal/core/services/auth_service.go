package services

import (
	"context"
	"errors"

	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
	apperrors "github.com/ahmedX999/customer-support-tickets-api/internal/core/errors"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/ports"
)

// AuthService implements authentication business logic.
type AuthService struct {
	userRepo ports.UserRepository
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo ports.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new user account with validated credentials.
func (s *AuthService) Register(ctx context.Context, params domain.UserRegistrationParams) (*domain.User, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Check if user already exists
	_, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err == nil {
		return nil, apperrors.ErrUserExists
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err // An actual DB error occurred
	}

	user, err := domain.NewUser(params)
	if err != nil {
		return nil, err
	}

	return s.userRepo.Create(ctx, user)
}

// Login authenticates a user with email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" {
		return nil, apperrors.ErrEmailRequired
	}
	if password == "" {
		return nil, apperrors.ErrPasswordRequired
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Don't reveal whether email exists
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// ListUsers returns all registered users.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}
