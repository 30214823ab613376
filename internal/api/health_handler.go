package api

import (
	"context"
	"net/http"

	"github.com/kraftfix/kraftfix-api/internal/api/shared"
	"github.com/kraftfix/kraftfix-api/internal/service/auth"
)

// Greeting is the body of GET /.
const Greeting = "Hello kraftFix"

// Root handles GET / with a plain text greeting.
func Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, r, http.StatusOK, Greeting)
}

// Health handles GET /health.
func Health(_ context.Context, _ Request, _ *auth.AuthContext) Response {
	return OK(HealthResponse{Status: "ok"})
}
