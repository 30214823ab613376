// Package store defines the persistence contracts for listings and bookings,
// the acknowledgement shapes returned by write operations and the sentinel
// errors every implementation maps its failures onto. Implementations live
// under internal/platform (postgres and memory).
package store
