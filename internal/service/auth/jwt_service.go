package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing signed session credentials.
type JWTService interface {
	// GenerateToken creates a signed token naming identity.
	// Returns ErrMissingIdentity when identity is empty.
	GenerateToken(ctx context.Context, identity string) (*Token, error)

	// ValidateToken verifies the signature and validity window of tokenString
	// and extracts its claims. The returned error is one of ErrInvalidToken,
	// ErrExpiredToken or ErrTokenNotYetValid.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Token is a freshly signed credential together with its claims.
type Token struct {
	Value  string
	Claims Claims
}

// Claims represents the verified content of a session credential.
type Claims struct {
	// Email is the identity the credential was issued for.
	Email string `json:"email"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
