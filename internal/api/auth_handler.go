package api

import (
	"context"
	"log/slog"

	"github.com/kraftfix/kraftfix-api/internal/api/shared"
	"github.com/kraftfix/kraftfix-api/internal/platform/logger"
	"github.com/kraftfix/kraftfix-api/internal/platform/metrics"
	"github.com/kraftfix/kraftfix-api/internal/service/auth"
)

// AuthHandler serves the session credential routes.
type AuthHandler struct {
	sessions *auth.SessionService
	metrics  metrics.Recorder
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler. A nil recorder disables metrics.
func NewAuthHandler(sessions *auth.SessionService, recorder metrics.Recorder, logger *slog.Logger) *AuthHandler {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		sessions: sessions,
		metrics:  recorder,
		logger:   logger.With(slog.String("component", "auth_handler")),
	}
}

// IssueToken handles POST /token.
func (h *AuthHandler) IssueToken(ctx context.Context, req Request, _ *auth.AuthContext) Response {
	var body TokenRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return Fail(err)
	}
	if err := shared.ValidateRequest(&body); err != nil {
		return Fail(auth.ErrMissingIdentity)
	}

	cred, err := h.sessions.Issue(ctx, body.Email)
	if err != nil {
		return Fail(err)
	}
	h.metrics.RecordCredentialIssued()
	logger.FromContextOrDefault(ctx, h.logger).Info("session credential issued",
		slog.Time("expires_at", cred.ExpiresAt))

	resp := OK(TokenResponse{Success: true, Token: cred.Token})
	resp.Cookies = append(resp.Cookies, cred.Cookie)
	return resp
}

// LogOut handles GET /logOut. It succeeds whether or not a session exists.
func (h *AuthHandler) LogOut(_ context.Context, _ Request, _ *auth.AuthContext) Response {
	resp := OK(SuccessResponse{Success: true})
	resp.Cookies = append(resp.Cookies, h.sessions.Revoke())
	return resp
}
