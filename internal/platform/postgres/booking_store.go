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
	bookingColumns = `id, user_email, provider_email, status, attributes`
	bookingOrder   = ` ORDER BY created_at, id`
)

// PostgresBookingStore implements the store.BookingStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookingStore creates a new PostgreSQL implementation of the BookingStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresBookingStore(db store.DBTX, logger *slog.Logger) *PostgresBookingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresBookingStore{
		db:     db,
		logger: logger.With(slog.String("component", "booking_store")),
	}
}

// Ensure PostgresBookingStore implements store.BookingStore interface
var _ store.BookingStore = (*PostgresBookingStore)(nil)

// Create implements store.BookingStore.Create
func (s *PostgresBookingStore) Create(ctx context.Context, booking *domain.Booking) (store.InsertResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	attributes, err := encodeAttributes(booking.Attributes)
	if err != nil {
		return store.InsertResult{}, store.NewStoreError("booking", "create", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO bookings (id, user_email, provider_email, status, attributes) VALUES ($1, $2, $3, $4, $5::jsonb)`,
		booking.ID, booking.UserEmail, booking.ProviderEmail, booking.Status, attributes)
	if err != nil {
		log.Error("failed to create booking",
			slog.String("error", err.Error()),
			slog.String("booking_id", booking.ID.String()))
		return store.InsertResult{}, store.NewStoreError("booking", "create", MapError(err, nil))
	}

	log.Info("booking created",
		slog.String("booking_id", booking.ID.String()),
		slog.String("provider_email", booking.ProviderEmail))
	return store.InsertResult{Acknowledged: true, InsertedID: booking.ID.String()}, nil
}

// GetByID implements store.BookingStore.GetByID
// Returns store.ErrBookingNotFound if the booking does not exist.
func (s *PostgresBookingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	booking, err := scanBooking(row)
	if err != nil {
		mapped := MapError(err, store.ErrBookingNotFound)
		if errors.Is(mapped, store.ErrBookingNotFound) {
			return nil, mapped
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get booking",
			slog.String("error", err.Error()),
			slog.String("booking_id", id.String()))
		return nil, store.NewStoreError("booking", "get", mapped)
	}
	return booking, nil
}

// ListByCustomer implements store.BookingStore.ListByCustomer
func (s *PostgresBookingStore) ListByCustomer(ctx context.Context, customer string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_email = $1` + bookingOrder
	return s.queryBookings(ctx, "list_by_customer", query, customer)
}

// ListByProvider implements store.BookingStore.ListByProvider
func (s *PostgresBookingStore) ListByProvider(ctx context.Context, provider string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE provider_email = $1` + bookingOrder
	return s.queryBookings(ctx, "list_by_provider", query, provider)
}

// UpdateStatus implements store.BookingStore.UpdateStatus
func (s *PostgresBookingStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status string,
) (store.UpdateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		log.Error("failed to update booking status",
			slog.String("error", err.Error()),
			slog.String("booking_id", id.String()))
		return store.UpdateResult{}, store.NewStoreError("booking", "update_status", MapError(err, nil))
	}

	matched, err := rowsAffected(result)
	if err != nil {
		return store.UpdateResult{}, store.NewStoreError("booking", "update_status", err)
	}

	log.Info("booking status update executed",
		slog.String("booking_id", id.String()),
		slog.String("status", status),
		slog.Int64("matched", matched))
	return store.UpdateResult{Acknowledged: true, MatchedCount: matched, ModifiedCount: matched}, nil
}

func (s *PostgresBookingStore) queryBookings(
	ctx context.Context,
	operation string,
	query string,
	args ...any,
) ([]*domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query bookings",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("booking", operation, MapError(err, nil))
	}
	defer func() { _ = rows.Close() }()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, store.NewStoreError("booking", operation, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("booking", operation, MapError(err, nil))
	}
	return bookings, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking    domain.Booking
		attributes []byte
	)
	err := row.Scan(&booking.ID, &booking.UserEmail, &booking.ProviderEmail, &booking.Status, &attributes)
	if err != nil {
		return nil, err
	}
	decoded, err := decodeAttributes(attributes)
	if err != nil {
		return nil, err
	}
	booking.Attributes = decoded
	return &booking, nil
}
