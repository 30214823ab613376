package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kraftfix/kraftfix-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.AuthConfig
		wantErr string
	}{
		{"valid", config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 1440}, ""},
		{"short secret", config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 1440}, "at least 32"},
		{"zero lifetime", config.AuthConfig{JWTSecret: testSecret}, "lifetime"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewJWTService(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, svc)
		})
	}
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 24 * time.Hour
	svc := NewTestJWTService(testSecret, lifetime, func() time.Time { return fixedTime })

	t.Run("round trip yields the same identity", func(t *testing.T) {
		t.Parallel()
		token, err := svc.GenerateToken(context.Background(), "a@x.com")
		require.NoError(t, err)
		require.NotEmpty(t, token.Value)
		assert.Equal(t, fixedTime.Add(lifetime), token.Claims.ExpiresAt)

		claims, err := svc.ValidateToken(context.Background(), token.Value)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Email)
		assert.Equal(t, "a@x.com", claims.Subject)
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
		assert.Equal(t, token.Claims.ID, claims.ID)
	})

	t.Run("empty identity", func(t *testing.T) {
		t.Parallel()
		_, err := svc.GenerateToken(context.Background(), "")
		assert.ErrorIs(t, err, ErrMissingIdentity)
	})

	t.Run("token ids are unique", func(t *testing.T) {
		t.Parallel()
		a, err := svc.GenerateToken(context.Background(), "a@x.com")
		require.NoError(t, err)
		b, err := svc.GenerateToken(context.Background(), "a@x.com")
		require.NoError(t, err)
		assert.NotEqual(t, a.Claims.ID, b.Claims.ID)
	})
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 24 * time.Hour
	issuer := NewTestJWTService(testSecret, lifetime, func() time.Time { return issuedAt })
	token, err := issuer.GenerateToken(context.Background(), "a@x.com")
	require.NoError(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtCustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtCustomClaims{Email: "a@x.com"}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwtCustomClaims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		now     time.Time
		wantErr error
	}{
		{"valid token", token.Value, testSecret, issuedAt.Add(time.Hour), nil},
		{"one second before expiry", token.Value, testSecret, issuedAt.Add(lifetime - time.Second), nil},
		{"exactly at expiry", token.Value, testSecret, issuedAt.Add(lifetime), ErrExpiredToken},
		{"after expiry", token.Value, testSecret, issuedAt.Add(lifetime + time.Minute), ErrExpiredToken},
		{"issued in the future", token.Value, testSecret, issuedAt.Add(-time.Hour), ErrTokenNotYetValid},
		{"wrong secret", token.Value, wrongSecret, issuedAt.Add(time.Hour), ErrInvalidToken},
		{"tampered payload", tamper(token.Value), testSecret, issuedAt.Add(time.Hour), ErrInvalidToken},
		{"malformed", "not-a-jwt", testSecret, issuedAt, ErrInvalidToken},
		{"empty", "", testSecret, issuedAt, ErrInvalidToken},
		{"missing email claim", noEmail, testSecret, issuedAt.Add(time.Minute), ErrInvalidToken},
		{"missing expiry", noExpiry, testSecret, issuedAt, ErrInvalidToken},
		{"alg none", noneAlg, testSecret, issuedAt, ErrInvalidToken},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			now := tt.now
			svc := NewTestJWTService(tt.secret, lifetime, func() time.Time { return now })

			claims, err := svc.ValidateToken(context.Background(), tt.token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", claims.Email)
		})
	}
}

// tamper swaps the payload segment for one naming another identity.
func tamper(token string) string {
	parts := strings.Split(token, ".")
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtCustomClaims{Email: "evil@x.com"})
	forged, _ := other.SignedString([]byte("some-other-secret-of-at-least-32-chars"))
	parts[1] = strings.Split(forged, ".")[1]
	return strings.Join(parts, ".")
}
