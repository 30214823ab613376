package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/platform/memory"
	"github.com/kraftfix/kraftfix-api/internal/service"
	"github.com/kraftfix/kraftfix-api/internal/service/auth"
	"github.com/kraftfix/kraftfix-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingHandler(t *testing.T) *BookingHandler {
	t.Helper()
	svc, err := service.NewBookingService(memory.NewBookingStore(), nil)
	require.NoError(t, err)
	return NewBookingHandler(svc)
}

func TestBookingHandler_StatusScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newBookingHandler(t)
	provider := &auth.AuthContext{Identity: "p@x.com"}

	resp := h.Create(ctx, Request{Body: []byte(`{"userEmail":"c@x.com","providerEmail":"p@x.com","status":"pending","date":"2026-01-02"}`)}, nil)
	require.NoError(t, resp.Err)
	id := resp.Body.(store.InsertResult).InsertedID

	resp = h.UpdateStatus(ctx, Request{
		Query: url.Values{"id": {id}},
		Body:  []byte(`{"stat":"done"}`),
	}, provider)
	require.NoError(t, resp.Err)
	assert.Equal(t, int64(1), resp.Body.(store.UpdateResult).ModifiedCount)

	resp = h.ListByProvider(ctx, Request{Params: map[string]string{ParamEmail: "p@x.com"}}, provider)
	require.NoError(t, resp.Err)
	bookings := resp.Body.([]*domain.Booking)
	require.Len(t, bookings, 1)
	assert.Equal(t, "done", bookings[0].Status)
	assert.Equal(t, "2026-01-02", bookings[0].Attributes["date"])

	resp = h.ListByCustomer(ctx, Request{Params: map[string]string{ParamEmail: "c@x.com"}}, &auth.AuthContext{Identity: "c@x.com"})
	require.NoError(t, resp.Err)
	assert.Len(t, resp.Body.([]*domain.Booking), 1)
}

func TestBookingHandler_UpdateStatusRejections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newBookingHandler(t)

	resp := h.Create(ctx, Request{Body: []byte(`{"userEmail":"c@x.com","providerEmail":"p@x.com","status":"pending"}`)}, nil)
	require.NoError(t, resp.Err)
	id := resp.Body.(store.InsertResult).InsertedID

	tests := []struct {
		name       string
		ac         *auth.AuthContext
		id         string
		body       string
		wantStatus int
	}{
		{"customer", &auth.AuthContext{Identity: "c@x.com"}, id, `{"stat":"done"}`, http.StatusForbidden},
		{"stranger", &auth.AuthContext{Identity: "z@x.com"}, id, `{"stat":"done"}`, http.StatusForbidden},
		{"no credential", nil, id, `{"stat":"done"}`, http.StatusUnauthorized},
		{"missing stat", &auth.AuthContext{Identity: "p@x.com"}, id, `{}`, http.StatusBadRequest},
		{"numeric stat", &auth.AuthContext{Identity: "p@x.com"}, id, `{"stat":3}`, http.StatusBadRequest},
		{"missing id", &auth.AuthContext{Identity: "p@x.com"}, "", `{"stat":"done"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := h.UpdateStatus(ctx, Request{Query: url.Values{"id": {tt.id}}, Body: []byte(tt.body)}, tt.ac)
			require.Error(t, resp.Err)
			assert.Equal(t, tt.wantStatus, MapErrorToStatusCode(resp.Err))
		})
	}
}

func TestBookingHandler_ListOwnership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newBookingHandler(t)
	requester := &auth.AuthContext{Identity: "a@x.com"}

	resp := h.ListByCustomer(ctx, Request{Params: map[string]string{ParamEmail: "b@x.com"}}, requester)
	assert.ErrorIs(t, resp.Err, auth.ErrForbidden)

	resp = h.ListByProvider(ctx, Request{Params: map[string]string{ParamEmail: "b@x.com"}}, requester)
	assert.ErrorIs(t, resp.Err, auth.ErrForbidden)

	resp = h.ListByCustomer(ctx, Request{Params: map[string]string{ParamEmail: "a@x.com"}}, requester)
	require.NoError(t, resp.Err)
	assert.NotNil(t, resp.Body)
	assert.Empty(t, resp.Body)
}
