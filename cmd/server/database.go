package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kraftfix/kraftfix-api/internal/config"
	"github.com/kraftfix/kraftfix-api/internal/platform/memory"
	"github.com/kraftfix/kraftfix-api/internal/platform/postgres"
)

// setupStores connects the configured persistence backend and assigns the
// listing and booking stores on app.
func (app *application) setupStores(ctx context.Context) error {
	switch app.config.Database.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, app.config.Database)
		if err != nil {
			return err
		}
		app.db = db
		app.logger.Info("database connection established")

		if app.config.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, db, app.logger); err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
		}

		app.listingStore = postgres.NewPostgresListingStore(db, app.logger)
		app.bookingStore = postgres.NewPostgresBookingStore(db, app.logger)

	case config.DriverMemory:
		app.logger.Warn("using in-memory stores; data is lost on restart")
		app.listingStore = memory.NewListingStore()
		app.bookingStore = memory.NewBookingStore()

	default:
		return fmt.Errorf("unsupported database driver %q", app.config.Database.Driver)
	}

	app.logger.Debug("stores initialized", slog.String("driver", app.config.Database.Driver))
	return nil
}
