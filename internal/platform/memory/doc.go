// Package memory provides in-process implementations of the listing and
// booking stores. They back the "memory" database driver for local runs and
// serve as fast test doubles with the same ordering and upsert semantics as
// the PostgreSQL stores.
package memory
