package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ahmedX999/customer-support-tickets-api/internal/core/errors"
)

func TestUserRegistrationParams_Validate(t *testing.T) {
	valid := UserRegistrationParams{
		Name:     "Jamie Doe",
		Email:    "jamie@example.com",
		Password: "Str0ngPassword",
		Role:     RoleCustomer,
	}

	t.Run("accepts valid params", func(t *testing.T) {
		params := valid
		assert.NoError(t, params.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*UserRegistrationParams)
		field  string
	}{
		{"missing name", func(p *UserRegistrationParams) { p.Name = "" }, "name"},
		{"missing email", func(p *UserRegistrationParams) { p.Email = "" }, "email"},
		{"malformed email", func(p *UserRegistrationParams) { p.Email = "not-an-email" }, "email"},
		{"unknown role", func(p *UserRegistrationParams) { p.Role = Role("superuser") }, "role"},
		{"weak password", func(p *UserRegistrationParams) { p.Password = "short" }, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid
			tt.mutate(&params)

			err := params.Validate()
			require.Error(t, err)

			var validationErrs *apperrors.ValidationErrors
			require.ErrorAs(t, err, &validationErrs)
			assert.Contains(t, validationErrs.Errors, tt.field)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Empty(t, ValidatePassword("Abcdefg1"))
	assert.NotEmpty(t, ValidatePassword("abcdefg1"), "missing uppercase")
	assert.NotEmpty(t, ValidatePassword("ABCDEFG1"), "missing lowercase")
	assert.NotEmpty(t, ValidatePassword("Abcdefgh"), "missing number")
	assert.NotEmpty(t, ValidatePassword("Ab1"), "too short")
}

func TestNewUser(t *testing.T) {
	user, err := NewUser(UserRegistrationParams{
		Name:     "Jamie Doe",
		Email:    "jamie@example.com",
		Password: "Str0ngPassword",
		Role:     RoleAgent,
	})
	require.NoError(t, err)

	assert.NotEqual(t, "", user.ID.String())
	assert.Equal(t, RoleAgent, user.Role)
	assert.NotEqual(t, "Str0ngPassword", user.HashedPassword, "password must be hashed")

	assert.True(t, user.CheckPassword("Str0ngPassword"))
	assert.False(t, user.CheckPassword("WrongPassword1"))
}

func TestUser_Ref(t *testing.T) {
	user, err := NewUser(UserRegistrationParams{
		Name:     "Jamie Doe",
		Email:    "jamie@example.com",
		Password: "Str0ngPassword",
		Role:     RoleCustomer,
	})
	require.NoError(t, err)

	ref := user.Ref()
	assert.Equal(t, user.ID, ref.ID)
	assert.Equal(t, user.Name, ref.Name)
	assert.Equal(t, user.Email, ref.Email)
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleCustomer.IsValid())
	assert.True(t, RoleAgent.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("root").IsValid())
}
