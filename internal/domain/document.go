package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/google/uuid"
)

// IDField is the JSON key carrying a record identifier.
const IDField = "_id"

// decodeDocument reads a JSON object into a generic map. Numbers are kept as
// json.Number so attributes survive a round trip without float conversion.
func decodeDocument(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, NewValidationError("", "body must be a JSON object", err)
	}
	if doc == nil {
		return nil, NewValidationError("", "body must be a JSON object", nil)
	}
	return doc, nil
}

// takeString removes key from doc and returns its string value.
// A JSON null counts as present and empty.
func takeString(doc map[string]any, key string) (value string, present bool, err error) {
	raw, ok := doc[key]
	if !ok {
		return "", false, nil
	}
	delete(doc, key)

	switch v := raw.(type) {
	case nil:
		return "", true, nil
	case string:
		return v, true, nil
	default:
		return "", true, NewValidationError(key, fmt.Sprintf("must be a string, got %T", raw), nil)
	}
}

// encodeDocument flattens core fields over a copy of the attributes.
func encodeDocument(id uuid.UUID, attributes map[string]any, core map[string]string) ([]byte, error) {
	doc := make(map[string]any, len(attributes)+len(core)+1)
	maps.Copy(doc, attributes)
	for k, v := range core {
		doc[k] = v
	}
	doc[IDField] = id.String()
	return json.Marshal(doc)
}

// attributesOrEmpty never returns nil so stores can always serialise it.
func attributesOrEmpty(attributes map[string]any) map[string]any {
	if attributes == nil {
		return map[string]any{}
	}
	return attributes
}
