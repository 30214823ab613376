package shared

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes bounds every decoded request body.
const MaxBodyBytes = 1 << 20

// ErrEmptyBody is returned when the request carries no body.
var ErrEmptyBody = errors.New("request body is empty")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ReadBody reads at most MaxBodyBytes of the request body.
func ReadBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, ErrEmptyBody
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) > MaxBodyBytes {
		return nil, fmt.Errorf("request body exceeds %d bytes", MaxBodyBytes)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}
	return body, nil
}

// ValidateRequest validates v with its validate struct tags.
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}
