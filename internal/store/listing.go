package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kraftfix/kraftfix-api/internal/domain"
)

// ListingStore defines the persistence operations for service listings.
// Sequences are returned in a stable order (creation time, then id) and are
// never nil.
type ListingStore interface {
	// Preview returns up to limit listings for the featured view.
	Preview(ctx context.Context, limit int) ([]*domain.Listing, error)

	// Search returns one page of listings whose service name contains filter,
	// case-insensitively. An empty filter matches every listing.
	Search(ctx context.Context, filter string, page domain.Page) ([]*domain.Listing, error)

	// Count returns the number of listings Search would match over all pages.
	Count(ctx context.Context, filter string) (int64, error)

	// Create inserts listing. A zero ID is replaced by a new one and written
	// back to listing.
	Create(ctx context.Context, listing *domain.Listing) (InsertResult, error)

	// GetByID returns ErrListingNotFound when no listing has id.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)

	// ListByOwner returns every listing whose provider email equals owner exactly.
	ListByOwner(ctx context.Context, owner string) ([]*domain.Listing, error)

	// Upsert merges patch into the listing with id, or creates it from the
	// patch when it does not exist.
	Upsert(ctx context.Context, id uuid.UUID, patch domain.ListingPatch) (UpdateResult, error)

	// Delete removes the listing with id. A missing id is not an error.
	Delete(ctx context.Context, id uuid.UUID) (DeleteResult, error)
}
