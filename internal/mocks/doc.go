// Package mocks provides hand-written test doubles for the service and store
// interfaces.
//
// Each mock exposes one function field per method. A nil field falls back to
// a zero-value result, so tests set only the behavior they care about:
//
//	listings := &mocks.MockListingStore{
//	    GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
//	        return nil, store.ErrListingNotFound
//	    },
//	}
package mocks
