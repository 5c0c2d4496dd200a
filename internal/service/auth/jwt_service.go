package auth

import (
	"context"
	"time"

	"github.com/gymdesk/gym-api/internal/domain"
)

// Identity is what a token asserts about its holder.
type Identity struct {
	ID     string
	Email  string
	Nombre string
	Rol    domain.Role
	Plan   string
}

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for id.
	// Returns the token string and its expiry time.
	GenerateToken(ctx context.Context, id Identity) (string, time.Time, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated content of a token.
type Claims struct {
	// UserID is the identifier of the user record the token was issued for.
	UserID string      `json:"id"`
	Email  string      `json:"email"`
	Nombre string      `json:"nombre"`
	Rol    domain.Role `json:"rol"`
	Plan   string      `json:"plan"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// Identity returns the identity asserted by the claims.
func (c *Claims) Identity() Identity {
	return Identity{ID: c.UserID, Email: c.Email, Nombre: c.Nombre, Rol: c.Rol, Plan: c.Plan}
}
