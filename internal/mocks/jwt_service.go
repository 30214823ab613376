package mocks

import (
	"context"

	"github.com/kraftfix/kraftfix-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, identity string) (*auth.Token, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Defaults returned when the Fn fields are nil
	Token       *auth.Token
	Err         error
	Claims      *auth.Claims
	ValidateErr error
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, identity string) (*auth.Token, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, identity)
	}
	return m.Token, m.Err
}

// ValidateToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}
