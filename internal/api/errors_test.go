package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/service"
	"github.com/kraftfix/kraftfix-api/internal/service/auth"
	"github.com/kraftfix/kraftfix-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized, MsgUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, MsgUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, MsgUnauthorized},
		{"forbidden", auth.ErrForbidden, http.StatusForbidden, MsgForbidden},
		{"wrapped forbidden", service.NewServiceError("booking", "update_status", auth.ErrForbidden), http.StatusForbidden, MsgForbidden},
		{"missing identity", auth.ErrMissingIdentity, http.StatusBadRequest, "email is required"},
		{"invalid id", fmt.Errorf("%w: %q", domain.ErrInvalidID, "42"), http.StatusBadRequest, MsgInvalidID},
		{"validation", domain.NewValidationError("serviceName", "must be a string", nil), http.StatusBadRequest, "invalid serviceName: must be a string"},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest, "invalid entity data"},
		{"not found", service.NewServiceError("listing", "get", store.ErrListingNotFound), http.StatusNotFound, MsgNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusConflict, MsgConflict},
		{"unknown", errors.New("pq: password authentication failed for user kraft"), http.StatusInternalServerError, MsgInternal},
		{"nil", nil, http.StatusInternalServerError, MsgInternal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantStatus, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.wantMsg, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIError_NeverLeaksCause(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	rec := httptest.NewRecorder()

	HandleAPIError(rec, req, errors.New("dial tcp postgres://kraft:hunter2@db:5432 refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"An unexpected error occurred"}`, rec.Body.String())
}
