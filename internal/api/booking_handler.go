package api

import (
	"context"

	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/service"
	"github.com/kraftfix/kraftfix-api/internal/service/auth"
)

// BookingHandler serves the booking routes.
type BookingHandler struct {
	bookings service.BookingService
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(ctx context.Context, req Request, _ *auth.AuthContext) Response {
	var booking domain.Booking
	if err := decodeBody(req.Body, &booking); err != nil {
		return Fail(err)
	}
	res, err := h.bookings.Create(ctx, &booking)
	if err != nil {
		return Fail(err)
	}
	return OK(res)
}

// ListByCustomer handles GET /bookings/{email}. Requires the guard.
func (h *BookingHandler) ListByCustomer(ctx context.Context, req Request, ac *auth.AuthContext) Response {
	bookings, err := h.bookings.ListByCustomer(ctx, ac, req.Param(ParamEmail))
	if err != nil {
		return Fail(err)
	}
	return OK(bookings)
}

// ListByProvider handles GET /servicesToDo/{email}. Requires the guard.
func (h *BookingHandler) ListByProvider(ctx context.Context, req Request, ac *auth.AuthContext) Response {
	bookings, err := h.bookings.ListByProvider(ctx, ac, req.Param(ParamEmail))
	if err != nil {
		return Fail(err)
	}
	return OK(bookings)
}

// UpdateStatus handles PATCH /bookings?id with body {"stat": "..."}.
// Requires the guard; only the booking's provider may change its status.
func (h *BookingHandler) UpdateStatus(ctx context.Context, req Request, ac *auth.AuthContext) Response {
	var body StatusUpdateRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return Fail(err)
	}
	if body.Stat == nil {
		return Fail(domain.NewValidationError("stat", "is required", nil))
	}
	res, err := h.bookings.UpdateStatus(ctx, ac, req.Query.Get("id"), *body.Stat)
	if err != nil {
		return Fail(err)
	}
	return OK(res)
}
