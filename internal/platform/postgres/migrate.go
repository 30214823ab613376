package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// gooseMu guards goose's package-level configuration.
var gooseMu sync.Mutex

// slogGooseLogger forwards goose output to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// RunMigrations runs a goose command ("up", "down", "status", "version",
// "reset") against db using the migrations embedded in this package.
func RunMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "migrations"), slog.String("command", command))

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(slogGooseLogger{logger: logger})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, migrationsDir); err != nil {
		logger.Error("migration command failed", slog.String("error", err.Error()))
		return fmt.Errorf("goose %s: %w", command, err)
	}

	logger.Info("migration command completed")
	return nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	return RunMigrations(ctx, db, "up", logger)
}
