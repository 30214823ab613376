package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/platform/logger"
	"github.com/kraftfix/kraftfix-api/internal/store"
)

const (
	listingColumns = `id, provider_email, service_name, attributes`
	listingOrder   = ` ORDER BY created_at, id`

	// searchPredicate is shared by Search and Count so both always agree.
	// strpos keeps LIKE wildcards in the filter literal.
	searchPredicate = ` WHERE ($1::text = '' OR strpos(lower(service_name), lower($1::text)) > 0)`
)

// PostgresListingStore implements the store.ListingStore interface
// using a PostgreSQL database as the storage backend.
type PostgresListingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresListingStore creates a new PostgreSQL implementation of the ListingStore interface.
// It accepts a database connection or transaction that is initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresListingStore(db store.DBTX, logger *slog.Logger) *PostgresListingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresListingStore{
		db:     db,
		logger: logger.With(slog.String("component", "listing_store")),
	}
}

// Ensure PostgresListingStore implements store.ListingStore interface
var _ store.ListingStore = (*PostgresListingStore)(nil)

// Preview implements store.ListingStore.Preview
func (s *PostgresListingStore) Preview(ctx context.Context, limit int) ([]*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings` + listingOrder + ` LIMIT $1`
	return s.queryListings(ctx, "preview", query, limit)
}

// Search implements store.ListingStore.Search
func (s *PostgresListingStore) Search(
	ctx context.Context,
	filter string,
	page domain.Page,
) ([]*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings` + searchPredicate + listingOrder + ` LIMIT $2 OFFSET $3`
	return s.queryListings(ctx, "search", query, filter, page.Size, page.Offset())
}

// Count implements store.ListingStore.Count
func (s *PostgresListingStore) Count(ctx context.Context, filter string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM listings`+searchPredicate, filter).Scan(&total)
	if err != nil {
		log.Error("failed to count listings", slog.String("error", err.Error()))
		return 0, store.NewStoreError("listing", "count", MapError(err, nil))
	}
	return total, nil
}

// Create implements store.ListingStore.Create
func (s *PostgresListingStore) Create(ctx context.Context, listing *domain.Listing) (store.InsertResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	attributes, err := encodeAttributes(listing.Attributes)
	if err != nil {
		return store.InsertResult{}, store.NewStoreError("listing", "create", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO listings (id, provider_email, service_name, attributes) VALUES ($1, $2, $3, $4::jsonb)`,
		listing.ID, listing.ProviderEmail, listing.ServiceName, attributes)
	if err != nil {
		log.Error("failed to create listing",
			slog.String("error", err.Error()),
			slog.String("listing_id", listing.ID.String()))
		return store.InsertResult{}, store.NewStoreError("listing", "create", MapError(err, nil))
	}

	log.Info("listing created",
		slog.String("listing_id", listing.ID.String()),
		slog.String("provider_email", listing.ProviderEmail))
	return store.InsertResult{Acknowledged: true, InsertedID: listing.ID.String()}, nil
}

// GetByID implements store.ListingStore.GetByID
// Returns store.ErrListingNotFound if the listing does not exist.
func (s *PostgresListingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	listing, err := scanListing(row)
	if err != nil {
		mapped := MapError(err, store.ErrListingNotFound)
		if errors.Is(mapped, store.ErrListingNotFound) {
			log.Debug("listing not found", slog.String("listing_id", id.String()))
			return nil, mapped
		}
		log.Error("failed to get listing",
			slog.String("error", err.Error()),
			slog.String("listing_id", id.String()))
		return nil, store.NewStoreError("listing", "get", mapped)
	}
	return listing, nil
}

// ListByOwner implements store.ListingStore.ListByOwner
func (s *PostgresListingStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE provider_email = $1` + listingOrder
	return s.queryListings(ctx, "list_by_owner", query, owner)
}

// Upsert implements store.ListingStore.Upsert
// Present core fields overwrite the stored ones and attributes are merged
// with the JSONB || operator. xmax = 0 identifies a freshly inserted row.
func (s *PostgresListingStore) Upsert(
	ctx context.Context,
	id uuid.UUID,
	patch domain.ListingPatch,
) (store.UpdateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	attributes, err := encodeAttributes(patch.Attributes)
	if err != nil {
		return store.UpdateResult{}, store.NewStoreError("listing", "upsert", err)
	}

	query := `
		INSERT INTO listings (id, provider_email, service_name, attributes)
		VALUES ($1, COALESCE($2::text, ''), COALESCE($3::text, ''), $4::jsonb)
		ON CONFLICT (id) DO UPDATE SET
			provider_email = COALESCE($2::text, listings.provider_email),
			service_name   = COALESCE($3::text, listings.service_name),
			attributes     = listings.attributes || EXCLUDED.attributes,
			updated_at     = now()
		RETURNING (xmax = 0) AS inserted
	`

	var inserted bool
	err = s.db.QueryRowContext(ctx, query, id, patch.ProviderEmail, patch.ServiceName, attributes).Scan(&inserted)
	if err != nil {
		log.Error("failed to upsert listing",
			slog.String("error", err.Error()),
			slog.String("listing_id", id.String()))
		return store.UpdateResult{}, store.NewStoreError("listing", "upsert", MapError(err, nil))
	}

	if inserted {
		upserted := id.String()
		log.Info("listing created by upsert", slog.String("listing_id", upserted))
		return store.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &upserted}, nil
	}

	result := store.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}
	if patch.IsEmpty() {
		result.ModifiedCount = 0
	}
	log.Info("listing updated", slog.String("listing_id", id.String()))
	return result, nil
}

// Delete implements store.ListingStore.Delete
func (s *PostgresListingStore) Delete(ctx context.Context, id uuid.UUID) (store.DeleteResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete listing",
			slog.String("error", err.Error()),
			slog.String("listing_id", id.String()))
		return store.DeleteResult{}, store.NewStoreError("listing", "delete", MapError(err, nil))
	}

	deleted, err := rowsAffected(result)
	if err != nil {
		return store.DeleteResult{}, store.NewStoreError("listing", "delete", err)
	}

	log.Info("listing delete executed",
		slog.String("listing_id", id.String()),
		slog.Int64("deleted", deleted))
	return store.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}

func (s *PostgresListingStore) queryListings(
	ctx context.Context,
	operation string,
	query string,
	args ...any,
) ([]*domain.Listing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query listings",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("listing", operation, MapError(err, nil))
	}
	defer func() { _ = rows.Close() }()

	listings := make([]*domain.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, store.NewStoreError("listing", operation, err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("listing", operation, MapError(err, nil))
	}
	return listings, nil
}

func scanListing(row rowScanner) (*domain.Listing, error) {
	var (
		listing    domain.Listing
		attributes []byte
	)
	if err := row.Scan(&listing.ID, &listing.ProviderEmail, &listing.ServiceName, &attributes); err != nil {
		return nil, err
	}
	decoded, err := decodeAttributes(attributes)
	if err != nil {
		return nil, err
	}
	listing.Attributes = decoded
	return &listing, nil
}
