package domain

import (
	"net/mail"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/ahmedX999/customer-support-tickets-api/internal/core/errors"
)

// Password and field length constraints.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxNameLength     = 255
	MaxEmailLength    = 255
)

// Role determines which lifecycle operations a user may invoke.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// ValidRoles lists every role a user may hold.
var ValidRoles = []Role{RoleCustomer, RoleAgent, RoleAdmin}

// IsValid reports whether the role is one of the enumerated values.
func (r Role) IsValid() bool {
	for _, valid := range ValidRoles {
		if r == valid {
			return true
		}
	}
	return false
}

type User struct {
	ID             uuid.UUID
	Name           string
	Email          string
	HashedPassword string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// Ref returns the lightweight projection used for display and
// notification addressing.
func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserRegistrationParams holds parameters for user registration.
type UserRegistrationParams struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

// Validate validates user registration parameters.
func (p *UserRegistrationParams) Validate() error {
	errs := apperrors.NewValidationErrors()

	if p.Name == "" {
		errs.Add("name", "Name is required")
	} else if len(p.Name) > MaxNameLength {
		errs.Add("name", "Name must be 255 characters or less")
	}

	if p.Email == "" {
		errs.Add("email", "Email is required")
	} else if len(p.Email) > MaxEmailLength {
		errs.Add("email", "Email must be 255 characters or less")
	} else if !isValidEmail(p.Email) {
		errs.Add("email", "Invalid email format")
	}

	if !p.Role.IsValid() {
		errs.Add("role", "Role must be one of: customer, agent, admin")
	}

	for _, msg := range ValidatePassword(p.Password) {
		errs.Add("password", msg)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ValidatePassword checks if a password meets security requirements.
// Returns a slice of error messages (empty if valid).
func ValidatePassword(password string) []string {
	var errors []string

	if len(password) < MinPasswordLength {
		errors = append(errors, "Password must be at least 8 characters long")
	}
	if len(password) > MaxPasswordLength {
		errors = append(errors, "Password must be 128 characters or less")
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		errors = append(errors, "Password must contain at least one uppercase letter")
	}
	if !hasLower {
		errors = append(errors, "Password must contain at least one lowercase letter")
	}
	if !hasNumber {
		errors = append(errors, "Password must contain at least one number")
	}

	return errors
}

// isValidEmail validates email format.
func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// CheckPassword verifies if the provided password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
	return err == nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	if errs := ValidatePassword(password); len(errs) > 0 {
		return "", apperrors.ErrPasswordTooWeak
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// NewUser creates a new user with validated parameters.
func NewUser(params UserRegistrationParams) (*User, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	hashedPassword, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:             uuid.New(),
		Name:           params.Name,
		Email:          params.Email,
		HashedPassword: hashedPassword,
		Role:           params.Role,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
