package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
	apperrors "github.com/ahmedX999/customer-support-tickets-api/internal/core/errors"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/mocks"
)

func validRegistration() domain.UserRegistrationParams {
	return domain.UserRegistrationParams{
		Name:     "Jamie Doe",
		Email:    "jamie@example.com",
		Password: "Str0ngPassword",
		Role:     domain.RoleCustomer,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user when the email is free", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		service := NewAuthService(userRepo)

		userRepo.On("GetByEmail", ctx, "jamie@example.com").
			Return(nil, apperrors.ErrUserNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Return(&domain.User{Email: "jamie@example.com", Role: domain.RoleCustomer}, nil)

		user, err := service.Register(ctx, validRegistration())

		require.NoError(t, err)
		assert.Equal(t, "jamie@example.com", user.Email)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		service := NewAuthService(userRepo)

		userRepo.On("GetByEmail", ctx, "jamie@example.com").
			Return(&domain.User{Email: "jamie@example.com"}, nil)

		_, err := service.Register(ctx, validRegistration())

		assert.ErrorIs(t, err, apperrors.ErrUserExists)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid params without hitting the repository", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		service := NewAuthService(userRepo)

		params := validRegistration()
		params.Password = "weak"

		_, err := service.Register(ctx, params)

		var validationErrs *apperrors.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	newStoredUser := func(t *testing.T) *domain.User {
		t.Helper()
		user, err := domain.NewUser(validRegistration())
		require.NoError(t, err)
		return user
	}

	t.Run("returns the user for correct credentials", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		service := NewAuthService(userRepo)
		stored := newStoredUser(t)

		userRepo.On("GetByEmail", ctx, stored.Email).Return(stored, nil)

		user, err := service.Login(ctx, stored.Email, "Str0ngPassword")

		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
	})

	t.Run("wrong password yields invalid credentials", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		service := NewAuthService(userRepo)
		stored := newStoredUser(t)

		userRepo.On("GetByEmail", ctx, stored.Email).Return(stored, nil)

		_, err := service.Login(ctx, stored.Email, "WrongPassword1")

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email yields invalid credentials, not not-found", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		service := NewAuthService(userRepo)

		userRepo.On("GetByEmail", ctx, "ghost@example.com").
			Return(nil, apperrors.ErrUserNotFound)

		_, err := service.Login(ctx, "ghost@example.com", "Whatever123")

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("empty fields are rejected up front", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		service := NewAuthService(userRepo)

		_, err := service.Login(ctx, "", "Whatever123")
		assert.ErrorIs(t, err, apperrors.ErrEmailRequired)

		_, err = service.Login(ctx, "jamie@example.com", "")
		assert.ErrorIs(t, err, apperrors.ErrPasswordRequired)

		userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}

func TestAuthService_ListUsers(t *testing.T) {
	ctx := context.Background()
	userRepo := mocks.NewMockUserRepository()
	service := NewAuthService(userRepo)

	expected := []*domain.User{
		{Name: "Jamie", Email: "jamie@example.com", Role: domain.RoleCustomer},
		{Name: "Alex", Email: "alex@example.com", Role: domain.RoleAgent},
	}
	userRepo.On("List", ctx).Return(expected, nil)

	users, err := service.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, users)
}
