package domain

import (
	"github.com/google/uuid"
)

// JSON keys of the statically known booking fields. The provider key is
// shared with Listing.
const (
	FieldUserEmail = "userEmail"
	FieldStatus    = "status"
)

// Booking links a customer to a provider. Status is free text; no set of
// transitions is enforced.
type Booking struct {
	ID            uuid.UUID
	UserEmail     string
	ProviderEmail string
	Status        string
	Attributes    map[string]any
}

// MarshalJSON renders the booking as one flat object.
func (b Booking) MarshalJSON() ([]byte, error) {
	return encodeDocument(b.ID, b.Attributes, map[string]string{
		FieldUserEmail:     b.UserEmail,
		FieldProviderEmail: b.ProviderEmail,
		FieldStatus:        b.Status,
	})
}

// UnmarshalJSON accepts the flat document form and ignores any "_id".
func (b *Booking) UnmarshalJSON(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	delete(doc, IDField)

	var out Booking
	for key, dst := range map[string]*string{
		FieldUserEmail:     &out.UserEmail,
		FieldProviderEmail: &out.ProviderEmail,
		FieldStatus:        &out.Status,
	} {
		value, _, err := takeString(doc, key)
		if err != nil {
			return err
		}
		*dst = value
	}
	out.Attributes = doc

	*b = out
	return nil
}

// AttributesOrEmpty returns the attribute map, never nil.
func (b *Booking) AttributesOrEmpty() map[string]any {
	return attributesOrEmpty(b.Attributes)
}
