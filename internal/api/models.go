package api

import "github.com/kraftfix/kraftfix-api/internal/domain"

// TokenRequest is the body of POST /token. Any other claims a client sends
// are ignored; only the identity is signed.
type TokenRequest struct {
	Email string `json:"email" validate:"required"`
}

// TokenResponse is returned by POST /token alongside the session cookie.
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// SuccessResponse is returned by GET /logOut.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// SearchResponse wraps one page of listings.
type SearchResponse struct {
	Services []*domain.Listing `json:"services"`
}

// CountResponse is returned by GET /servicesTotalLength.
type CountResponse struct {
	TotalLength int64 `json:"totalLength"`
}

// StatusUpdateRequest is the body of PATCH /bookings.
type StatusUpdateRequest struct {
	Stat *string `json:"stat"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
