// Package service holds the marketplace use cases. It sits between the HTTP
// endpoints and the store interfaces: it parses raw identifiers, clamps
// pagination, enforces ownership through auth.RequireOwner and keeps the
// listing read cache coherent with writes.
//
// Services depend only on the interfaces in internal/store, never on a
// concrete backend.
package service
