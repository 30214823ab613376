package api

import (
	"context"
	"strconv"

	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/service"
	"github.com/kraftfix/kraftfix-api/internal/service/auth"
	"github.com/kraftfix/kraftfix-api/internal/store"
)

// Route parameter names.
const (
	ParamID    = "id"
	ParamEmail = "email"
)

// ListingHandler serves the listing routes.
type ListingHandler struct {
	listings service.ListingService
}

// NewListingHandler creates a ListingHandler.
func NewListingHandler(listings service.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// Featured handles GET /services.
func (h *ListingHandler) Featured(ctx context.Context, _ Request, _ *auth.AuthContext) Response {
	listings, err := h.listings.Featured(ctx)
	if err != nil {
		return Fail(err)
	}
	return OK(listings)
}

// Search handles GET /allServices?search&size&skip, where skip is the
// 1-based page number.
func (h *ListingHandler) Search(ctx context.Context, req Request, _ *auth.AuthContext) Response {
	page := queryInt(req, "skip")
	size := queryInt(req, "size")

	listings, err := h.listings.Search(ctx, req.Query.Get("search"), page, size)
	if err != nil {
		return Fail(err)
	}
	return OK(SearchResponse{Services: listings})
}

// Count handles GET /servicesTotalLength?search.
func (h *ListingHandler) Count(ctx context.Context, req Request, _ *auth.AuthContext) Response {
	n, err := h.listings.Count(ctx, req.Query.Get("search"))
	if err != nil {
		return Fail(err)
	}
	return OK(CountResponse{TotalLength: n})
}

// Create handles POST /services.
func (h *ListingHandler) Create(ctx context.Context, req Request, _ *auth.AuthContext) Response {
	var listing domain.Listing
	if err := decodeBody(req.Body, &listing); err != nil {
		return Fail(err)
	}
	res, err := h.listings.Create(ctx, &listing)
	if err != nil {
		return Fail(err)
	}
	return OK(res)
}

// Get handles GET /services/{id}. An unknown id renders as JSON null.
func (h *ListingHandler) Get(ctx context.Context, req Request, _ *auth.AuthContext) Response {
	listing, err := h.listings.Get(ctx, req.Param(ParamID))
	if store.IsNotFoundError(err) {
		return OK(nil)
	}
	if err != nil {
		return Fail(err)
	}
	return OK(listing)
}

// ListByOwner handles GET /service/{email}. Requires the guard.
func (h *ListingHandler) ListByOwner(ctx context.Context, req Request, ac *auth.AuthContext) Response {
	listings, err := h.listings.ListByOwner(ctx, ac, req.Param(ParamEmail))
	if err != nil {
		return Fail(err)
	}
	return OK(listings)
}

// Update handles PUT /services/{id}.
func (h *ListingHandler) Update(ctx context.Context, req Request, _ *auth.AuthContext) Response {
	var patch domain.ListingPatch
	if err := decodeBody(req.Body, &patch); err != nil {
		return Fail(err)
	}
	res, err := h.listings.Update(ctx, req.Param(ParamID), patch)
	if err != nil {
		return Fail(err)
	}
	return OK(res)
}

// Delete handles DELETE /services/{id}.
func (h *ListingHandler) Delete(ctx context.Context, req Request, _ *auth.AuthContext) Response {
	res, err := h.listings.Delete(ctx, req.Param(ParamID))
	if err != nil {
		return Fail(err)
	}
	return OK(res)
}

// queryInt parses an integer query value. Missing or non-numeric values
// read as 0 and are clamped by domain.NewPage.
func queryInt(req Request, key string) int {
	n, err := strconv.Atoi(req.Query.Get(key))
	if err != nil {
		return 0
	}
	return n
}
