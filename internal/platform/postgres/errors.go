package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kraftfix/kraftfix-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// MapError maps a database error to a store sentinel while keeping the
// original error in the chain. notFound is returned (wrapped) for
// sql.ErrNoRows so each store can report its entity-specific error.
func MapError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		if notFound == nil {
			notFound = store.ErrNotFound
		}
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %s: %v", store.ErrDuplicate, pgErr.ConstraintName, err)
		case foreignKeyViolationCode, checkViolationCode:
			return fmt.Errorf("%w: constraint %s: %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case notNullViolationCode:
			return fmt.Errorf("%w: column %s: %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
		}
	}

	return err
}

// rowsAffected reads the affected row count of result.
func rowsAffected(result sql.Result) (int64, error) {
	if result == nil {
		return 0, errors.New("nil result")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
