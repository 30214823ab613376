package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/platform/logger"
	"github.com/kraftfix/kraftfix-api/internal/platform/metrics"
	"github.com/kraftfix/kraftfix-api/internal/service/auth"
	"github.com/kraftfix/kraftfix-api/internal/store"
)

const (
	featuredCacheKey = "featured"
	countCachePrefix = "count:"
)

// ListingService exposes the listing use cases.
type ListingService interface {
	// Featured returns the first domain.FeaturedListingLimit listings.
	Featured(ctx context.Context) ([]*domain.Listing, error)

	// Search returns one page of listings whose service name contains filter.
	// Out of range page numbers and sizes are clamped by domain.NewPage.
	Search(ctx context.Context, filter string, page, size int) ([]*domain.Listing, error)

	// Count returns the number of listings matching filter.
	Count(ctx context.Context, filter string) (int64, error)

	Create(ctx context.Context, listing *domain.Listing) (store.InsertResult, error)

	// Get returns store.ErrListingNotFound for a well formed id with no
	// listing and domain.ErrInvalidID for a malformed one.
	Get(ctx context.Context, rawID string) (*domain.Listing, error)

	// ListByOwner lists the listings of owner. The requester must be owner.
	ListByOwner(ctx context.Context, ac *auth.AuthContext, owner string) ([]*domain.Listing, error)

	// Update merges patch into the listing, creating it when absent.
	Update(ctx context.Context, rawID string, patch domain.ListingPatch) (store.UpdateResult, error)

	Delete(ctx context.Context, rawID string) (store.DeleteResult, error)
}

type listingServiceImpl struct {
	listings store.ListingStore
	cache    ListingCache
	metrics  metrics.Recorder
	logger   *slog.Logger
}

var _ ListingService = (*listingServiceImpl)(nil)

// NewListingService creates a ListingService. A nil cache disables caching
// and a nil recorder disables metrics.
func NewListingService(
	listings store.ListingStore,
	cache ListingCache,
	recorder metrics.Recorder,
	logger *slog.Logger,
) (ListingService, error) {
	if listings == nil {
		return nil, domain.NewValidationError("listings", "cannot be nil", domain.ErrValidation)
	}
	if cache == nil {
		cache = NoopCache{}
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &listingServiceImpl{
		listings: listings,
		cache:    cache,
		metrics:  recorder,
		logger:   logger.With(slog.String("component", "listing_service")),
	}, nil
}

// cachedListing keeps the id next to the document since the flat JSON
// decoder discards client supplied "_id" keys.
type cachedListing struct {
	ID  uuid.UUID       `json:"id"`
	Doc json.RawMessage `json:"doc"`
}

func (s *listingServiceImpl) Featured(ctx context.Context) ([]*domain.Listing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var cached []cachedListing
	if s.cacheGet(ctx, featuredCacheKey, &cached) {
		listings, err := fromCache(cached)
		if err == nil {
			return listings, nil
		}
		log.Warn("discarding undecodable featured cache entry", slog.String("error", err.Error()))
	}

	listings, err := s.listings.Preview(ctx, domain.FeaturedListingLimit)
	if err != nil {
		return nil, NewServiceError("listing", "featured", err)
	}

	entries, err := toCache(listings)
	if err != nil {
		log.Warn("failed to encode featured listings for cache", slog.String("error", err.Error()))
		return listings, nil
	}
	s.cacheSet(ctx, featuredCacheKey, entries)
	return listings, nil
}

func (s *listingServiceImpl) Search(
	ctx context.Context,
	filter string,
	page, size int,
) ([]*domain.Listing, error) {
	p := domain.NewPage(page, size)
	logger.FromContextOrDefault(ctx, s.logger).Debug("searching listings",
		slog.String("filter", filter),
		slog.Int("page", p.Number),
		slog.Int("size", p.Size))

	listings, err := s.listings.Search(ctx, filter, p)
	if err != nil {
		return nil, NewServiceError("listing", "search", err)
	}
	return listings, nil
}

func (s *listingServiceImpl) Count(ctx context.Context, filter string) (int64, error) {
	key := countCachePrefix + filter

	var n int64
	if s.cacheGet(ctx, key, &n) {
		return n, nil
	}

	n, err := s.listings.Count(ctx, filter)
	if err != nil {
		return 0, NewServiceError("listing", "count", err)
	}
	s.cacheSet(ctx, key, n)
	return n, nil
}

func (s *listingServiceImpl) Create(ctx context.Context, listing *domain.Listing) (store.InsertResult, error) {
	if listing == nil {
		return store.InsertResult{}, NewServiceError("listing", "create",
			domain.NewValidationError("body", "listing is required", domain.ErrValidation))
	}

	res, err := s.listings.Create(ctx, listing)
	if err != nil {
		return store.InsertResult{}, NewServiceError("listing", "create", err)
	}
	s.invalidate(ctx)

	logger.FromContextOrDefault(ctx, s.logger).Info("listing created",
		slog.String("listing_id", res.InsertedID))
	return res, nil
}

func (s *listingServiceImpl) Get(ctx context.Context, rawID string) (*domain.Listing, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, NewServiceError("listing", "get", err)
	}

	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("listing", "get", err)
	}
	return listing, nil
}

func (s *listingServiceImpl) ListByOwner(
	ctx context.Context,
	ac *auth.AuthContext,
	owner string,
) ([]*domain.Listing, error) {
	if err := auth.RequireOwner(ac, owner); err != nil {
		return nil, err
	}

	listings, err := s.listings.ListByOwner(ctx, owner)
	if err != nil {
		return nil, NewServiceError("listing", "list_by_owner", err)
	}
	return listings, nil
}

func (s *listingServiceImpl) Update(
	ctx context.Context,
	rawID string,
	patch domain.ListingPatch,
) (store.UpdateResult, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return store.UpdateResult{}, NewServiceError("listing", "update", err)
	}

	res, err := s.listings.Upsert(ctx, id, patch)
	if err != nil {
		return store.UpdateResult{}, NewServiceError("listing", "update", err)
	}
	s.invalidate(ctx)

	if res.UpsertedCount > 0 {
		logger.FromContextOrDefault(ctx, s.logger).Info("listing created by update",
			slog.String("listing_id", id.String()))
	}
	return res, nil
}

func (s *listingServiceImpl) Delete(ctx context.Context, rawID string) (store.DeleteResult, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return store.DeleteResult{}, NewServiceError("listing", "delete", err)
	}

	res, err := s.listings.Delete(ctx, id)
	if err != nil {
		return store.DeleteResult{}, NewServiceError("listing", "delete", err)
	}
	if res.DeletedCount > 0 {
		s.invalidate(ctx)
	}
	return res, nil
}

// cacheGet reports a hit. Cache errors count as a miss.
func (s *listingServiceImpl) cacheGet(ctx context.Context, key string, dst any) bool {
	hit, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("listing cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		hit = false
	}
	if _, noop := s.cache.(NoopCache); !noop {
		s.metrics.RecordCacheLookup(hit)
	}
	return hit
}

func (s *listingServiceImpl) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("listing cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

func (s *listingServiceImpl) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("listing cache invalidation failed",
			slog.String("error", err.Error()))
	}
}

func toCache(listings []*domain.Listing) ([]cachedListing, error) {
	out := make([]cachedListing, 0, len(listings))
	for _, l := range listings {
		doc, err := json.Marshal(l)
		if err != nil {
			return nil, err
		}
		out = append(out, cachedListing{ID: l.ID, Doc: doc})
	}
	return out, nil
}

func fromCache(entries []cachedListing) ([]*domain.Listing, error) {
	out := make([]*domain.Listing, 0, len(entries))
	for _, e := range entries {
		var l domain.Listing
		if err := json.Unmarshal(e.Doc, &l); err != nil {
			return nil, err
		}
		l.ID = e.ID
		out = append(out, &l)
	}
	return out, nil
}
