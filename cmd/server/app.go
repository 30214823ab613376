package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/kraftfix/kraftfix-api/internal/config"
	"github.com/kraftfix/kraftfix-api/internal/platform/metrics"
	"github.com/kraftfix/kraftfix-api/internal/platform/rediscache"
	"github.com/kraftfix/kraftfix-api/internal/service"
	"github.com/kraftfix/kraftfix-api/internal/service/auth"
	"github.com/kraftfix/kraftfix-api/internal/store"
)

// application holds all dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the memory driver is configured.
	db *sql.DB
	// cache is nil when no Redis URL is configured.
	cache *rediscache.Cache

	registry *prometheus.Registry
	metrics  *metrics.Collector

	listingStore store.ListingStore
	bookingStore store.BookingStore

	jwtService     auth.JWTService
	sessions       *auth.SessionService
	listingService service.ListingService
	bookingService service.BookingService
}

// newApplication wires every component from cfg. Resources acquired before
// a failure are released before returning the error.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.NewCollector(app.registry)

	if err := app.setupStores(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	if cfg.Cache.RedisURL != "" {
		cache, err := rediscache.Open(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL())
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.cache = cache
		logger.Info("listing cache enabled", slog.Duration("ttl", cfg.Cache.TTL()))
	}

	if err := app.setupServices(); err != nil {
		app.cleanup()
		return nil, err
	}

	return app, nil
}

func (app *application) setupServices() error {
	jwtService, err := auth.NewJWTService(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.jwtService = jwtService
	app.sessions = auth.NewSessionService(jwtService, auth.NewCookiePolicy(app.config.Auth.CookieName, app.config.Server))

	var cache service.ListingCache
	if app.cache != nil {
		cache = app.cache
	}

	app.listingService, err = service.NewListingService(app.listingStore, cache, app.metrics, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create listing service: %w", err)
	}

	app.bookingService, err = service.NewBookingService(app.bookingStore, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create booking service: %w", err)
	}

	return nil
}

// cleanup releases the database pool and the cache client.
func (app *application) cleanup() {
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("failed to close cache", slog.String("error", err.Error()))
		}
		app.cache = nil
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
		app.db = nil
	}
}
