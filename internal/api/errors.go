package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kraftfix/kraftfix-api/internal/api/shared"
	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/service/auth"
	"github.com/kraftfix/kraftfix-api/internal/store"
)

// Client facing messages.
const (
	MsgUnauthorized = "unauthorized access"
	MsgForbidden    = "forbidden access"
	MsgInvalidID    = "invalid identifier"
	MsgNotFound     = "resource not found"
	MsgConflict     = "resource already exists"
	MsgInternal     = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case auth.IsUnauthorized(err):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrMissingIdentity),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a message that can be shown to clients. It
// never includes the text of an unrecognized error.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgInternal
	}

	var ve *domain.ValidationError
	switch {
	case auth.IsUnauthorized(err):
		return MsgUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		return MsgForbidden
	case errors.Is(err, auth.ErrMissingIdentity):
		return "email is required"
	case errors.Is(err, domain.ErrInvalidID):
		return MsgInvalidID
	case errors.As(err, &ve):
		if ve.Field == "" {
			return ve.Message
		}
		return fmt.Sprintf("invalid %s: %s", ve.Field, ve.Message)
	case errors.Is(err, store.ErrInvalidEntity):
		return "invalid entity data"
	case errors.Is(err, store.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, store.ErrDuplicate):
		return MsgConflict
	default:
		return MsgInternal
	}
}

// HandleAPIError renders err with its mapped status and safe message, and
// logs the redacted cause.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
