package mocks

import (
	"context"
	"time"

	"github.com/gymdesk/gym-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	// GenerateTokenFn allows test cases to mock the GenerateToken behavior
	GenerateTokenFn func(ctx context.Context, id auth.Identity) (string, time.Time, error)

	// ValidateTokenFn allows test cases to mock the ValidateToken behavior
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token       string
	ExpiresAt   time.Time
	Err         error
	ValidateErr error
	Claims      *auth.Claims

	// Issued records every identity passed to GenerateToken
	Issued []auth.Identity
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, id auth.Identity) (string, time.Time, error) {
	m.Issued = append(m.Issued, id)

	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, id)
	}
	return m.Token, m.ExpiresAt, m.Err
}

// ValidateToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}
