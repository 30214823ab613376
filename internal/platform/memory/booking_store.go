package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/store"
)

// BookingStore is a concurrency-safe in-memory store.BookingStore.
type BookingStore struct {
	mu    sync.RWMutex
	order []uuid.UUID
	byID  map[uuid.UUID]*domain.Booking
}

// NewBookingStore creates an empty BookingStore.
func NewBookingStore() *BookingStore {
	return &BookingStore{byID: make(map[uuid.UUID]*domain.Booking)}
}

var _ store.BookingStore = (*BookingStore)(nil)

func (s *BookingStore) Create(ctx context.Context, booking *domain.Booking) (store.InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return store.InsertResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	if _, exists := s.byID[booking.ID]; exists {
		return store.InsertResult{}, store.NewStoreError("booking", "create", store.ErrDuplicate)
	}
	s.byID[booking.ID] = cloneBooking(booking)
	s.order = append(s.order, booking.ID)
	return store.InsertResult{Acknowledged: true, InsertedID: booking.ID.String()}, nil
}

func (s *BookingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.byID[id]
	if !ok {
		return nil, store.ErrBookingNotFound
	}
	return cloneBooking(booking), nil
}

func (s *BookingStore) ListByCustomer(ctx context.Context, customer string) ([]*domain.Booking, error) {
	return s.list(ctx, func(b *domain.Booking) bool { return b.UserEmail == customer })
}

func (s *BookingStore) ListByProvider(ctx context.Context, provider string) ([]*domain.Booking, error) {
	return s.list(ctx, func(b *domain.Booking) bool { return b.ProviderEmail == provider })
}

func (s *BookingStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (store.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return store.UpdateResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.byID[id]
	if !ok {
		return store.UpdateResult{Acknowledged: true}, nil
	}
	updated := cloneBooking(booking)
	updated.Status = status
	s.byID[id] = updated
	return store.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *BookingStore) list(ctx context.Context, match func(*domain.Booking) bool) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]*domain.Booking, 0)
	for _, id := range s.order {
		if b := s.byID[id]; match(b) {
			bookings = append(bookings, cloneBooking(b))
		}
	}
	return bookings, nil
}
