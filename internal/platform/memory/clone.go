package memory

import (
	"maps"

	"github.com/kraftfix/kraftfix-api/internal/domain"
)

// Records are copied on the way in and out so callers never share maps with
// the store.

func cloneListing(l *domain.Listing) *domain.Listing {
	out := *l
	out.Attributes = maps.Clone(l.AttributesOrEmpty())
	return &out
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	out := *b
	out.Attributes = maps.Clone(b.AttributesOrEmpty())
	return &out
}
