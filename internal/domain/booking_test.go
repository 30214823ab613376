package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_JSONShape(t *testing.T) {
	t.Parallel()
	id := uuid.New()
	b := domain.Booking{
		ID:            id,
		UserEmail:     "c@x.com",
		ProviderEmail: "p@x.com",
		Status:        "pending",
		Attributes:    map[string]any{"date": "2026-10-20"},
	}

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, map[string]any{
		"_id":           id.String(),
		"userEmail":     "c@x.com",
		"providerEmail": "p@x.com",
		"status":        "pending",
		"date":          "2026-10-20",
	}, doc)
}

func TestBooking_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var b domain.Booking
	err := json.Unmarshal([]byte(`{"_id":"abc","userEmail":"c@x.com","providerEmail":"p@x.com","status":"pending","note":"gate code 12"}`), &b)

	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, b.ID)
	assert.Equal(t, "c@x.com", b.UserEmail)
	assert.Equal(t, "p@x.com", b.ProviderEmail)
	assert.Equal(t, "pending", b.Status)
	assert.Equal(t, map[string]any{"note": "gate code 12"}, b.Attributes)
}

func TestBooking_UnmarshalJSON_RejectsNonStringStatus(t *testing.T) {
	t.Parallel()

	var b domain.Booking
	err := json.Unmarshal([]byte(`{"status":true}`), &b)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "status", vErr.Field)
}
