package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB (and *sql.Tx) the SQL stores need. Stores
// depend on it rather than on *sql.DB so tests can hand them a sqlmock
// connection and callers can run them inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
