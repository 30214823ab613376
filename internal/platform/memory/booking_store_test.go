package memory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/platform/memory"
	"github.com/kraftfix/kraftfix-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStore_StatusScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.NewBookingStore()
	b := &domain.Booking{UserEmail: "c@x.com", ProviderEmail: "p@x.com", Status: "pending"}

	inserted, err := s.Create(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, b.ID.String(), inserted.InsertedID)

	result, err := s.UpdateStatus(ctx, b.ID, "done")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.MatchedCount)

	byProvider, err := s.ListByProvider(ctx, "p@x.com")
	require.NoError(t, err)
	require.Len(t, byProvider, 1)
	assert.Equal(t, "done", byProvider[0].Status)

	byCustomer, err := s.ListByCustomer(ctx, "c@x.com")
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, "done", byCustomer[0].Status)
}

func TestBookingStore_UpdateStatusMissing(t *testing.T) {
	t.Parallel()

	result, err := memory.NewBookingStore().UpdateStatus(context.Background(), uuid.New(), "done")

	require.NoError(t, err)
	assert.Equal(t, store.UpdateResult{Acknowledged: true}, result)
}

func TestBookingStore_GetByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.NewBookingStore()
	b := &domain.Booking{UserEmail: "c@x.com", Attributes: map[string]any{"note": "x"}}
	_, err := s.Create(ctx, b)
	require.NoError(t, err)

	got, err := s.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Attributes["note"])

	_, err = s.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrBookingNotFound)
}

func TestBookingStore_DuplicateID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.NewBookingStore()
	id := uuid.New()

	_, err := s.Create(ctx, &domain.Booking{ID: id})
	require.NoError(t, err)
	_, err = s.Create(ctx, &domain.Booking{ID: id})

	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestBookingStore_ListsAreExactAndOrdered(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.NewBookingStore()
	first := &domain.Booking{UserEmail: "c@x.com", ProviderEmail: "p@x.com", Status: "1"}
	second := &domain.Booking{UserEmail: "c@x.com", ProviderEmail: "q@x.com", Status: "2"}
	other := &domain.Booking{UserEmail: "C@X.COM", ProviderEmail: "p@x.com", Status: "3"}
	for _, b := range []*domain.Booking{first, second, other} {
		_, err := s.Create(ctx, b)
		require.NoError(t, err)
	}

	mine, err := s.ListByCustomer(ctx, "c@x.com")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, first.ID, mine[0].ID)
	assert.Equal(t, second.ID, mine[1].ID)

	none, err := s.ListByProvider(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
