package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kraftfix/kraftfix-api/internal/api/shared"
	"github.com/kraftfix/kraftfix-api/internal/platform/logger"
	"github.com/kraftfix/kraftfix-api/internal/platform/metrics"
	"github.com/kraftfix/kraftfix-api/internal/service/auth"
)

// UnauthorizedMessage is the body message of every 401 from the guard.
const UnauthorizedMessage = "unauthorized access"

// AuthMiddleware is the access guard for protected routes. It reads the
// session cookie, falling back to an "Authorization: Bearer" header.
type AuthMiddleware struct {
	tokens     auth.JWTService
	cookieName string
	metrics    metrics.Recorder
}

// NewAuthMiddleware creates an AuthMiddleware. A nil recorder disables metrics.
func NewAuthMiddleware(tokens auth.JWTService, cookieName string, recorder metrics.Recorder) *AuthMiddleware {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &AuthMiddleware{
		tokens:     tokens,
		cookieName: cookieName,
		metrics:    recorder,
	}
}

// Verify runs the credential checks for r without touching the response.
// It returns auth.ErrMissingToken when no credential is attached and the
// validation error otherwise.
func (m *AuthMiddleware) Verify(r *http.Request) (auth.AuthContext, error) {
	token := m.extractToken(r)
	if token == "" {
		return auth.AuthContext{}, auth.ErrMissingToken
	}
	claims, err := m.tokens.ValidateToken(r.Context(), token)
	if err != nil {
		return auth.AuthContext{}, err
	}
	return auth.NewAuthContext(claims), nil
}

// Authenticate rejects requests without a valid credential with 401 and
// attaches the verified auth.AuthContext otherwise.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, err := m.Verify(r)
		if err != nil {
			reason := rejectionReason(err)
			m.metrics.RecordGuardRejection(reason)
			logger.FromContext(r.Context()).Debug("access guard rejected request",
				slog.String("reason", reason),
				slog.String("path", r.URL.Path),
				slog.String("trace_id", shared.GetTraceID(r.Context())))
			shared.RespondWithError(w, r, http.StatusUnauthorized, UnauthorizedMessage)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithAuthContext(r.Context(), ac)))
	})
}

func (m *AuthMiddleware) extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return metrics.ReasonMissing
	case errors.Is(err, auth.ErrExpiredToken):
		return metrics.ReasonExpired
	default:
		return metrics.ReasonInvalid
	}
}
