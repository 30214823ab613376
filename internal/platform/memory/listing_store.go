package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/store"
)

// ListingStore is a concurrency-safe in-memory store.ListingStore.
// Listings are kept in insertion order.
type ListingStore struct {
	mu    sync.RWMutex
	order []uuid.UUID
	byID  map[uuid.UUID]*domain.Listing
}

// NewListingStore creates an empty ListingStore.
func NewListingStore() *ListingStore {
	return &ListingStore{byID: make(map[uuid.UUID]*domain.Listing)}
}

var _ store.ListingStore = (*ListingStore)(nil)

func (s *ListingStore) Preview(ctx context.Context, limit int) ([]*domain.Listing, error) {
	return s.filter(ctx, "", 0, limit)
}

func (s *ListingStore) Search(ctx context.Context, filter string, page domain.Page) ([]*domain.Listing, error) {
	return s.filter(ctx, filter, page.Offset(), page.Size)
}

func (s *ListingStore) Count(ctx context.Context, filter string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, id := range s.order {
		if matchesFilter(s.byID[id], filter) {
			total++
		}
	}
	return total, nil
}

func (s *ListingStore) Create(ctx context.Context, listing *domain.Listing) (store.InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return store.InsertResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	if _, exists := s.byID[listing.ID]; exists {
		return store.InsertResult{}, store.NewStoreError("listing", "create", store.ErrDuplicate)
	}
	s.insertLocked(cloneListing(listing))
	return store.InsertResult{Acknowledged: true, InsertedID: listing.ID.String()}, nil
}

func (s *ListingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.byID[id]
	if !ok {
		return nil, store.ErrListingNotFound
	}
	return cloneListing(listing), nil
}

func (s *ListingStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	listings := make([]*domain.Listing, 0)
	for _, id := range s.order {
		if l := s.byID[id]; l.ProviderEmail == owner {
			listings = append(listings, cloneListing(l))
		}
	}
	return listings, nil
}

func (s *ListingStore) Upsert(
	ctx context.Context,
	id uuid.UUID,
	patch domain.ListingPatch,
) (store.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return store.UpdateResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[id]
	if !ok {
		created := &domain.Listing{ID: id, Attributes: map[string]any{}}
		patch.Apply(created)
		s.insertLocked(cloneListing(created))
		upserted := id.String()
		return store.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &upserted}, nil
	}

	updated := cloneListing(existing)
	patch.Apply(updated)
	s.byID[id] = updated

	result := store.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}
	if patch.IsEmpty() {
		result.ModifiedCount = 0
	}
	return result, nil
}

func (s *ListingStore) Delete(ctx context.Context, id uuid.UUID) (store.DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return store.DeleteResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return store.DeleteResult{Acknowledged: true}, nil
	}
	delete(s.byID, id)
	s.order = slices.DeleteFunc(s.order, func(other uuid.UUID) bool { return other == id })
	return store.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (s *ListingStore) insertLocked(listing *domain.Listing) {
	s.byID[listing.ID] = listing
	s.order = append(s.order, listing.ID)
}

// filter walks listings in order, skipping offset matches and collecting at
// most limit of the rest.
func (s *ListingStore) filter(ctx context.Context, filter string, offset, limit int) ([]*domain.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	listings := make([]*domain.Listing, 0)
	if limit <= 0 {
		return listings, nil
	}
	for _, id := range s.order {
		l := s.byID[id]
		if !matchesFilter(l, filter) {
			continue
		}
		if offset > 0 {
			offset--
			continue
		}
		listings = append(listings, cloneListing(l))
		if len(listings) == limit {
			break
		}
	}
	return listings, nil
}

// matchesFilter is the Search/Count predicate: case-insensitive substring of
// the service name, with an empty filter matching everything.
func matchesFilter(l *domain.Listing, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.ServiceName), strings.ToLower(filter))
}
