// Package domain contains the marketplace entities (service listings and
// bookings), their flat JSON document form, identifier parsing and the
// pagination policy. It is independent of any storage or transport.
package domain
