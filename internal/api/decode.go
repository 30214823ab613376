package api

import (
	"encoding/json"
	"errors"

	"github.com/kraftfix/kraftfix-api/internal/domain"
)

// decodeBody unmarshals a JSON request body into v. Every failure is a
// domain.ErrValidation so it renders as 400.
func decodeBody(body []byte, v any) error {
	if len(body) == 0 {
		return domain.NewValidationError("body", "is required", nil)
	}
	if err := json.Unmarshal(body, v); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return err
		}
		return domain.NewValidationError("", "body must be a JSON object", err)
	}
	return nil
}
