// Package main implements the entry point for the kraftFix API server,
// which lists repair services and books providers for customers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kraftfix/kraftfix-api/internal/config"
	"github.com/kraftfix/kraftfix-api/internal/platform/logger"
	"github.com/kraftfix/kraftfix-api/internal/platform/postgres"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "kraftfix-api: %v\n", err)
		os.Exit(1)
	}
}

// run parses flags, loads configuration and either executes a one-off
// migration command or serves HTTP until the process is signalled.
func run(args []string) error {
	flags := flag.NewFlagSet("kraftfix-api", flag.ContinueOnError)
	migrateCmd := flags.String("migrate", "", "run a goose migration command (up, down, status, version, reset) and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("environment", cfg.Server.Environment),
		slog.String("database_driver", cfg.Database.Driver),
		slog.Bool("cache_enabled", cfg.Cache.RedisURL != ""))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *migrateCmd != "" {
		return runMigrationCommand(ctx, cfg, log, *migrateCmd)
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

func runMigrationCommand(ctx context.Context, cfg *config.Config, log *slog.Logger, command string) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return errors.New("migrations require the postgres database driver")
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("failed to close database", slog.String("error", cerr.Error()))
		}
	}()

	return postgres.RunMigrations(ctx, db, command, log)
}
