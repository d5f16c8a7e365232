package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ahmedX999/customer-support-tickets-api/internal/core/domain"
)

// Claims defines the structured data we store in the JWT
type Claims struct {
	UserID uuid.UUID   `json:"user_id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secretKey []byte
	tokenTTL  time.Duration
}

func NewTokenManager(secret string, tokenTTL time.Duration) *TokenManager {
	return &TokenManager{
		secretKey: []byte(secret),
		tokenTTL:  tokenTTL,
	}
}

// GenerateToken creates a new JWT access token carrying the user's identity
// and role.
func (tm *TokenManager) GenerateToken(userID uuid.UUID, role domain.Role) (string, error) {
	expirationTime := time.Now().Add(tm.tokenTTL)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			Subject:   userID.String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secretKey)
}

// ValidateToken parses and validates the token string
func (tm *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
