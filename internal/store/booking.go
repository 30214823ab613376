package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kraftfix/kraftfix-api/internal/domain"
)

// BookingStore defines the persistence operations for bookings.
type BookingStore interface {
	// Create inserts booking verbatim. A zero ID is replaced by a new one.
	Create(ctx context.Context, booking *domain.Booking) (InsertResult, error)

	// GetByID returns ErrBookingNotFound when no booking has id.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)

	// ListByCustomer returns every booking whose user email equals customer.
	ListByCustomer(ctx context.Context, customer string) ([]*domain.Booking, error)

	// ListByProvider returns every booking whose provider email equals provider.
	ListByProvider(ctx context.Context, provider string) ([]*domain.Booking, error)

	// UpdateStatus sets the status field only. A missing id yields a
	// result with MatchedCount 0.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (UpdateResult, error)
}
