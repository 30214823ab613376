// Package postgres implements the listing and booking stores on PostgreSQL
// through database/sql and the pgx driver. Open-ended document attributes are
// kept in JSONB columns next to the typed ownership and search fields, and the
// schema is versioned with embedded goose migrations.
package postgres
