// Package logger provides structured logging functionality for the application.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kraftfix/kraftfix-api/internal/config"
)

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured JSON logger on stdout
// with the configured level, tags every record with the deployment
// environment and sets it as the default logger for the application.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	logger := New(os.Stdout, cfg.LogLevel)
	if cfg.Environment != "" {
		logger = logger.With(slog.String("env", cfg.Environment))
	}

	// Allows using slog.Info, slog.Error etc. from packages without an injected logger.
	slog.SetDefault(logger)

	return logger, nil
}

// New builds a JSON logger writing to w. Unknown levels fall back to info
// and a warning is emitted through the returned logger.
func New(w io.Writer, level string) *slog.Logger {
	parsed, ok := ParseLevel(level)
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parsed}))
	if !ok {
		logger.Warn("invalid log level configured, using default level",
			slog.String("configured_level", level),
			slog.String("default_level", "info"))
	}
	return logger
}

// ParseLevel maps a case-insensitive level name to a slog.Level.
// The boolean is false when the name is not recognised, in which case
// slog.LevelInfo is returned.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
