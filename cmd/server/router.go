package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kraftfix/kraftfix-api/internal/api"
	apiMiddleware "github.com/kraftfix/kraftfix-api/internal/api/middleware"
	"github.com/kraftfix/kraftfix-api/internal/platform/metrics"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.NewLoggingMiddleware(app.metrics))
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewCORSMiddleware(app.config.CORS.AllowedOrigins))

	authHandler := api.NewAuthHandler(app.sessions, app.metrics, app.logger)
	listingHandler := api.NewListingHandler(app.listingService)
	bookingHandler := api.NewBookingHandler(app.bookingService)
	guard := apiMiddleware.NewAuthMiddleware(app.jwtService, app.sessions.CookieName(), app.metrics)

	r.Get("/", api.Root)
	r.Get("/health", api.Handle(api.Health))
	r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))

	// Session
	r.Post("/token", api.Handle(authHandler.IssueToken))
	r.Get("/logOut", api.Handle(authHandler.LogOut))

	// Listings
	r.Get("/services", api.Handle(listingHandler.Featured))
	r.Get("/allServices", api.Handle(listingHandler.Search))
	r.Get("/servicesTotalLength", api.Handle(listingHandler.Count))
	r.Post("/services", api.Handle(listingHandler.Create))
	r.Get("/services/{id}", api.Handle(listingHandler.Get, api.ParamID))
	r.Put("/services/{id}", api.Handle(listingHandler.Update, api.ParamID))
	r.Delete("/services/{id}", api.Handle(listingHandler.Delete, api.ParamID))

	// Bookings
	r.Post("/bookings", api.Handle(bookingHandler.Create))

	r.Group(func(r chi.Router) {
		r.Use(guard.Authenticate)

		r.Get("/service/{email}", api.Handle(listingHandler.ListByOwner, api.ParamEmail))
		r.Get("/bookings/{email}", api.Handle(bookingHandler.ListByCustomer, api.ParamEmail))
		r.Get("/servicesToDo/{email}", api.Handle(bookingHandler.ListByProvider, api.ParamEmail))
		r.Patch("/bookings", api.Handle(bookingHandler.UpdateStatus))
	})

	return r
}
