package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/platform/postgres"
	"github.com/kraftfix/kraftfix-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var listingCols = []string{"id", "provider_email", "service_name", "attributes"}

func newListingStore(t *testing.T) (*postgres.PostgresListingStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return postgres.NewPostgresListingStore(db, nil), mock
}

func q(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

func TestPostgresListingStore_Preview(t *testing.T) {
	t.Parallel()
	s, mock := newListingStore(t)
	id := uuid.New()

	mock.ExpectQuery(q("FROM listings ORDER BY created_at, id LIMIT $1")).
		WithArgs(domain.FeaturedListingLimit).
		WillReturnRows(sqlmock.NewRows(listingCols).
			AddRow(id.String(), "p@x.com", "AC Repair", []byte(`{"price":120,"area":"north"}`)))

	listings, err := s.Preview(context.Background(), domain.FeaturedListingLimit)

	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, id, listings[0].ID)
	assert.Equal(t, "p@x.com", listings[0].ProviderEmail)
	assert.Equal(t, "AC Repair", listings[0].ServiceName)
	assert.Equal(t, map[string]any{"price": json.Number("120"), "area": "north"}, listings[0].Attributes)
}

func TestPostgresListingStore_SearchUsesSharedPredicateAndOffset(t *testing.T) {
	t.Parallel()
	s, mock := newListingStore(t)

	mock.ExpectQuery(q("WHERE ($1::text = '' OR strpos(lower(service_name), lower($1::text)) > 0) ORDER BY created_at, id LIMIT $2 OFFSET $3")).
		WithArgs("repair", 5, 10).
		WillReturnRows(sqlmock.NewRows(listingCols))

	listings, err := s.Search(context.Background(), "repair", domain.NewPage(3, 5))

	require.NoError(t, err)
	assert.NotNil(t, listings, "empty result must be an empty slice")
	assert.Empty(t, listings)
}

func TestPostgresListingStore_SearchHugePageSendsNonNegativeOffset(t *testing.T) {
	t.Parallel()
	s, mock := newListingStore(t)

	mock.ExpectQuery(q("LIMIT $2 OFFSET $3")).
		WithArgs("", domain.MaxPageSize, (domain.MaxPageNumber-1)*domain.MaxPageSize).
		WillReturnRows(sqlmock.NewRows(listingCols))

	listings, err := s.Search(context.Background(), "", domain.NewPage(1e17, domain.MaxPageSize))

	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestPostgresListingStore_Count(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		s, mock := newListingStore(t)
		mock.ExpectQuery(q("SELECT count(*) FROM listings WHERE ($1::text = ''")).
			WithArgs("").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

		total, err := s.Count(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, int64(42), total)
	})

	t.Run("database error", func(t *testing.T) {
		s, mock := newListingStore(t)
		mock.ExpectQuery(q("SELECT count(*) FROM listings")).
			WithArgs("ac").
			WillReturnError(errors.New("connection reset"))

		_, err := s.Count(context.Background(), "ac")

		require.Error(t, err)
		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "count", storeErr.Operation)
		assert.False(t, store.IsNotFoundError(err))
	})
}

func TestPostgresListingStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("assigns id and stores attributes", func(t *testing.T) {
		s, mock := newListingStore(t)
		listing := &domain.Listing{
			ProviderEmail: "p@x.com",
			ServiceName:   "AC Repair",
			Attributes:    map[string]any{"price": 120},
		}
		mock.ExpectExec(q("INSERT INTO listings (id, provider_email, service_name, attributes)")).
			WithArgs(sqlmock.AnyArg(), "p@x.com", "AC Repair", `{"price":120}`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		result, err := s.Create(context.Background(), listing)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, listing.ID)
		assert.Equal(t, store.InsertResult{Acknowledged: true, InsertedID: listing.ID.String()}, result)
	})

	t.Run("nil attributes stored as empty object", func(t *testing.T) {
		s, mock := newListingStore(t)
		mock.ExpectExec(q("INSERT INTO listings")).
			WithArgs(sqlmock.AnyArg(), "", "", `{}`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		_, err := s.Create(context.Background(), &domain.Listing{})

		require.NoError(t, err)
	})

	t.Run("duplicate id", func(t *testing.T) {
		s, mock := newListingStore(t)
		mock.ExpectExec(q("INSERT INTO listings")).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "listings_pkey"})

		_, err := s.Create(context.Background(), &domain.Listing{ID: uuid.New()})

		assert.ErrorIs(t, err, store.ErrDuplicate)
	})
}

func TestPostgresListingStore_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		s, mock := newListingStore(t)
		id := uuid.New()
		mock.ExpectQuery(q("FROM listings WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(listingCols).AddRow(id.String(), "p@x.com", "AC Repair", []byte(`{}`)))

		listing, err := s.GetByID(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, id, listing.ID)
		assert.Empty(t, listing.Attributes)
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newListingStore(t)
		id := uuid.New()
		mock.ExpectQuery(q("FROM listings WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(listingCols))

		listing, err := s.GetByID(context.Background(), id)

		assert.Nil(t, listing)
		assert.ErrorIs(t, err, store.ErrListingNotFound)
	})
}

func TestPostgresListingStore_ListByOwner(t *testing.T) {
	t.Parallel()
	s, mock := newListingStore(t)

	mock.ExpectQuery(q("FROM listings WHERE provider_email = $1 ORDER BY created_at, id")).
		WithArgs("p@x.com").
		WillReturnRows(sqlmock.NewRows(listingCols).
			AddRow(uuid.NewString(), "p@x.com", "AC Repair", []byte(`{}`)).
			AddRow(uuid.NewString(), "p@x.com", "Fridge Repair", []byte(`{}`)))

	listings, err := s.ListByOwner(context.Background(), "p@x.com")

	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "Fridge Repair", listings[1].ServiceName)
}

func TestPostgresListingStore_Upsert(t *testing.T) {
	t.Parallel()
	name := "Plumbing"

	t.Run("inserts missing listing", func(t *testing.T) {
		s, mock := newListingStore(t)
		id := uuid.New()
		mock.ExpectQuery(q("ON CONFLICT (id) DO UPDATE SET")).
			WithArgs(id, nil, "Plumbing", `{"x":1}`).
			WillReturnRows(sqlmock.NewRows([]string{"inserted"}).AddRow(true))

		result, err := s.Upsert(context.Background(), id, domain.ListingPatch{
			ServiceName: &name,
			Attributes:  map[string]any{"x": 1},
		})

		require.NoError(t, err)
		require.NotNil(t, result.UpsertedID)
		assert.Equal(t, id.String(), *result.UpsertedID)
		assert.Equal(t, int64(1), result.UpsertedCount)
		assert.Equal(t, int64(0), result.MatchedCount)
	})

	t.Run("merges into existing listing", func(t *testing.T) {
		s, mock := newListingStore(t)
		id := uuid.New()
		mock.ExpectQuery(q("listings.attributes || EXCLUDED.attributes")).
			WithArgs(id, nil, "Plumbing", `{}`).
			WillReturnRows(sqlmock.NewRows([]string{"inserted"}).AddRow(false))

		result, err := s.Upsert(context.Background(), id, domain.ListingPatch{ServiceName: &name})

		require.NoError(t, err)
		assert.Equal(t, store.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, result)
	})

	t.Run("empty patch reports no modification", func(t *testing.T) {
		s, mock := newListingStore(t)
		id := uuid.New()
		mock.ExpectQuery(q("ON CONFLICT (id)")).
			WithArgs(id, nil, nil, `{}`).
			WillReturnRows(sqlmock.NewRows([]string{"inserted"}).AddRow(false))

		result, err := s.Upsert(context.Background(), id, domain.ListingPatch{})

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.MatchedCount)
		assert.Equal(t, int64(0), result.ModifiedCount)
	})
}

func TestPostgresListingStore_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		matched int64
	}{
		{"existing listing", 1},
		{"missing listing is a no-op", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newListingStore(t)
			id := uuid.New()
			mock.ExpectExec(q("DELETE FROM listings WHERE id = $1")).
				WithArgs(id).
				WillReturnResult(sqlmock.NewResult(0, tt.matched))

			result, err := s.Delete(context.Background(), id)

			require.NoError(t, err)
			assert.Equal(t, store.DeleteResult{Acknowledged: true, DeletedCount: tt.matched}, result)
		})
	}
}
