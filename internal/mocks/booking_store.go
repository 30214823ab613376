package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/store"
)

// MockBookingStore implements store.BookingStore for testing
type MockBookingStore struct {
	CreateFn         func(ctx context.Context, booking *domain.Booking) (store.InsertResult, error)
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByCustomerFn func(ctx context.Context, customer string) ([]*domain.Booking, error)
	ListByProviderFn func(ctx context.Context, provider string) ([]*domain.Booking, error)
	UpdateStatusFn   func(ctx context.Context, id uuid.UUID, status string) (store.UpdateResult, error)
}

var _ store.BookingStore = (*MockBookingStore)(nil)

// Create implements store.BookingStore
func (m *MockBookingStore) Create(ctx context.Context, booking *domain.Booking) (store.InsertResult, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, booking)
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return store.InsertResult{Acknowledged: true, InsertedID: booking.ID.String()}, nil
}

// GetByID implements store.BookingStore
func (m *MockBookingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrBookingNotFound
}

// ListByCustomer implements store.BookingStore
func (m *MockBookingStore) ListByCustomer(ctx context.Context, customer string) ([]*domain.Booking, error) {
	if m.ListByCustomerFn != nil {
		return m.ListByCustomerFn(ctx, customer)
	}
	return []*domain.Booking{}, nil
}

// ListByProvider implements store.BookingStore
func (m *MockBookingStore) ListByProvider(ctx context.Context, provider string) ([]*domain.Booking, error) {
	if m.ListByProviderFn != nil {
		return m.ListByProviderFn(ctx, provider)
	}
	return []*domain.Booking{}, nil
}

// UpdateStatus implements store.BookingStore
func (m *MockBookingStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status string,
) (store.UpdateResult, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return store.UpdateResult{Acknowledged: true}, nil
}
