package service

import "context"

// ListingCache caches read-mostly listing results. Implementations must be
// safe for concurrent use. A miss is (false, nil).
type ListingCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context) error
}

// NoopCache never stores anything.
type NoopCache struct{}

var _ ListingCache = NoopCache{}

func (NoopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NoopCache) Set(context.Context, string, any) error         { return nil }
func (NoopCache) Invalidate(context.Context) error               { return nil }
