package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/kraftfix/kraftfix-api/internal/service/auth"
)

// ContextKey is the type of request-scoped context keys set by the API layer.
type ContextKey string

const (
	// TraceIDKey carries the request trace id.
	TraceIDKey ContextKey = "traceID"

	// AuthContextKey carries the auth.AuthContext produced by the access guard.
	AuthContextKey ContextKey = "authContext"

	// TraceIDHeader is the response header echoing the trace id.
	TraceIDHeader = "X-Trace-ID"

	// TraceIDLength is the number of random bytes in a trace id (32 hex chars).
	TraceIDLength = 16
)

// SetTraceID stores a fresh trace id in ctx.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID returns the trace id in ctx, or "" when none is set.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithAuthContext attaches the authenticated identity to ctx.
func WithAuthContext(ctx context.Context, ac auth.AuthContext) context.Context {
	return context.WithValue(ctx, AuthContextKey, ac)
}

// AuthContextFrom returns the identity attached by the access guard, or nil
// when the request was not authenticated.
func AuthContextFrom(ctx context.Context) *auth.AuthContext {
	ac, ok := ctx.Value(AuthContextKey).(auth.AuthContext)
	if !ok {
		return nil
	}
	return &ac
}

func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		slog.Error("failed to generate random trace id, falling back to uuid",
			slog.String("error", err.Error()))
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return hex.EncodeToString(b)
}
