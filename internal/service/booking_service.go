package service

import (
	"context"
	"log/slog"

	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/platform/logger"
	"github.com/kraftfix/kraftfix-api/internal/service/auth"
	"github.com/kraftfix/kraftfix-api/internal/store"
)

// BookingService exposes the booking use cases.
type BookingService interface {
	// Create stores booking as given. No ownership or shape check applies.
	Create(ctx context.Context, booking *domain.Booking) (store.InsertResult, error)

	// ListByCustomer lists bookings made by customer. The requester must be customer.
	ListByCustomer(ctx context.Context, ac *auth.AuthContext, customer string) ([]*domain.Booking, error)

	// ListByProvider lists bookings addressed to provider. The requester must be provider.
	ListByProvider(ctx context.Context, ac *auth.AuthContext, provider string) ([]*domain.Booking, error)

	// UpdateStatus sets the status of a booking. The requester must be the
	// booking's provider. A booking that does not exist yields an
	// acknowledgement with MatchedCount 0.
	UpdateStatus(ctx context.Context, ac *auth.AuthContext, rawID, status string) (store.UpdateResult, error)
}

type bookingServiceImpl struct {
	bookings store.BookingStore
	logger   *slog.Logger
}

var _ BookingService = (*bookingServiceImpl)(nil)

// NewBookingService creates a BookingService.
func NewBookingService(bookings store.BookingStore, logger *slog.Logger) (BookingService, error) {
	if bookings == nil {
		return nil, domain.NewValidationError("bookings", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &bookingServiceImpl{
		bookings: bookings,
		logger:   logger.With(slog.String("component", "booking_service")),
	}, nil
}

func (s *bookingServiceImpl) Create(ctx context.Context, booking *domain.Booking) (store.InsertResult, error) {
	if booking == nil {
		return store.InsertResult{}, NewServiceError("booking", "create",
			domain.NewValidationError("body", "booking is required", domain.ErrValidation))
	}

	res, err := s.bookings.Create(ctx, booking)
	if err != nil {
		return store.InsertResult{}, NewServiceError("booking", "create", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("booking created",
		slog.String("booking_id", res.InsertedID))
	return res, nil
}

func (s *bookingServiceImpl) ListByCustomer(
	ctx context.Context,
	ac *auth.AuthContext,
	customer string,
) ([]*domain.Booking, error) {
	if err := auth.RequireOwner(ac, customer); err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByCustomer(ctx, customer)
	if err != nil {
		return nil, NewServiceError("booking", "list_by_customer", err)
	}
	return bookings, nil
}

func (s *bookingServiceImpl) ListByProvider(
	ctx context.Context,
	ac *auth.AuthContext,
	provider string,
) ([]*domain.Booking, error) {
	if err := auth.RequireOwner(ac, provider); err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByProvider(ctx, provider)
	if err != nil {
		return nil, NewServiceError("booking", "list_by_provider", err)
	}
	return bookings, nil
}

func (s *bookingServiceImpl) UpdateStatus(
	ctx context.Context,
	ac *auth.AuthContext,
	rawID, status string,
) (store.UpdateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if ac == nil {
		return store.UpdateResult{}, auth.ErrMissingToken
	}
	id, err := domain.ParseID(rawID)
	if err != nil {
		return store.UpdateResult{}, NewServiceError("booking", "update_status", err)
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if store.IsNotFoundError(err) {
		log.Debug("status update for unknown booking", slog.String("booking_id", id.String()))
		return store.UpdateResult{Acknowledged: true}, nil
	}
	if err != nil {
		return store.UpdateResult{}, NewServiceError("booking", "update_status", err)
	}

	if err := auth.RequireOwner(ac, booking.ProviderEmail); err != nil {
		log.Warn("status update by non-provider rejected",
			slog.String("booking_id", id.String()))
		return store.UpdateResult{}, err
	}

	res, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		return store.UpdateResult{}, NewServiceError("booking", "update_status", err)
	}

	log.Info("booking status updated",
		slog.String("booking_id", id.String()),
		slog.String("status", status))
	return res, nil
}
