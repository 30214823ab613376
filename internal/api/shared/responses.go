package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kraftfix/kraftfix-api/internal/platform/logger"
	"github.com/kraftfix/kraftfix-api/internal/redact"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// RespondWithJSON writes data as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if traceID := GetTraceID(r.Context()); traceID != "" {
		w.Header().Set(TraceIDHeader, traceID)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

// RespondWithText writes a plain text body.
func RespondWithText(w http.ResponseWriter, r *http.Request, status int, body string) {
	if traceID := GetTraceID(r.Context()); traceID != "" {
		w.Header().Set(TraceIDHeader, traceID)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// RespondWithError writes an ErrorResponse carrying message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logger.FromContext(r.Context()).Debug("sending error response",
		slog.Int("status_code", status),
		slog.String("message", message),
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	RespondWithJSON(w, r, status, ErrorResponse{Message: message})
}

// RespondWithErrorAndLog writes userMessage to the client and logs err
// redacted. Server errors are logged at ERROR, everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	attrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.FromContext(r.Context()).LogAttrs(r.Context(), level, "API error response", attrs...)

	RespondWithJSON(w, r, status, ErrorResponse{Message: userMessage})
}
