package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/store"
)

// MockListingStore implements store.ListingStore for testing
type MockListingStore struct {
	PreviewFn     func(ctx context.Context, limit int) ([]*domain.Listing, error)
	SearchFn      func(ctx context.Context, filter string, page domain.Page) ([]*domain.Listing, error)
	CountFn       func(ctx context.Context, filter string) (int64, error)
	CreateFn      func(ctx context.Context, listing *domain.Listing) (store.InsertResult, error)
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	ListByOwnerFn func(ctx context.Context, owner string) ([]*domain.Listing, error)
	UpsertFn      func(ctx context.Context, id uuid.UUID, patch domain.ListingPatch) (store.UpdateResult, error)
	DeleteFn      func(ctx context.Context, id uuid.UUID) (store.DeleteResult, error)
}

var _ store.ListingStore = (*MockListingStore)(nil)

// Preview implements store.ListingStore
func (m *MockListingStore) Preview(ctx context.Context, limit int) ([]*domain.Listing, error) {
	if m.PreviewFn != nil {
		return m.PreviewFn(ctx, limit)
	}
	return []*domain.Listing{}, nil
}

// Search implements store.ListingStore
func (m *MockListingStore) Search(
	ctx context.Context,
	filter string,
	page domain.Page,
) ([]*domain.Listing, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, filter, page)
	}
	return []*domain.Listing{}, nil
}

// Count implements store.ListingStore
func (m *MockListingStore) Count(ctx context.Context, filter string) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}
	return 0, nil
}

// Create implements store.ListingStore
func (m *MockListingStore) Create(ctx context.Context, listing *domain.Listing) (store.InsertResult, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, listing)
	}
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	return store.InsertResult{Acknowledged: true, InsertedID: listing.ID.String()}, nil
}

// GetByID implements store.ListingStore
func (m *MockListingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrListingNotFound
}

// ListByOwner implements store.ListingStore
func (m *MockListingStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Listing, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, owner)
	}
	return []*domain.Listing{}, nil
}

// Upsert implements store.ListingStore
func (m *MockListingStore) Upsert(
	ctx context.Context,
	id uuid.UUID,
	patch domain.ListingPatch,
) (store.UpdateResult, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, id, patch)
	}
	return store.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

// Delete implements store.ListingStore
func (m *MockListingStore) Delete(ctx context.Context, id uuid.UUID) (store.DeleteResult, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return store.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}
