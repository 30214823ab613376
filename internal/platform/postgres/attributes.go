package postgres

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// encodeAttributes renders an attribute map for a JSONB parameter.
func encodeAttributes(attributes map[string]any) (string, error) {
	if attributes == nil {
		return "{}", nil
	}
	data, err := json.Marshal(attributes)
	if err != nil {
		return "", fmt.Errorf("failed to encode attributes: %w", err)
	}
	return string(data), nil
}

// decodeAttributes reads a JSONB column, keeping numbers as json.Number.
func decodeAttributes(data []byte) (map[string]any, error) {
	attributes := map[string]any{}
	if len(data) == 0 {
		return attributes, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&attributes); err != nil {
		return nil, fmt.Errorf("failed to decode attributes: %w", err)
	}
	return attributes, nil
}
