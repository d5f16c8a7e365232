package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
)

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("test-secret-key-for-unit-tests", time.Hour)
	userID := uuid.New()

	token, err := tm.GenerateToken(userID, domain.RoleAgent)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleAgent, claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret-key-for-unit-tests", -time.Minute)

	token, err := tm.GenerateToken(uuid.New(), domain.RoleCustomer)
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("correct-secret", time.Hour)
	other := NewTokenManager("wrong-secret", time.Hour)

	token, err := tm.GenerateToken(uuid.New(), domain.RoleAdmin)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	_, err := tm.ValidateToken("not-a-token")
	assert.Error(t, err)
}
