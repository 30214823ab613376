package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ParseID parses a record identifier. Anything that is not a UUID fails with
// ErrInvalidID so callers can tell a malformed id from a missing record.
func ParseID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: empty identifier", ErrInvalidID)
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}
