package domain

import (
	"github.com/google/uuid"
)

// JSON keys of the statically known listing fields.
const (
	FieldProviderEmail = "providerEmail"
	FieldServiceName   = "serviceName"
)

// Listing is a service offering published by a provider. Only the owner and
// the searchable name are typed; everything else a client sends is kept in
// Attributes and returned unchanged.
type Listing struct {
	ID            uuid.UUID
	ProviderEmail string
	ServiceName   string
	Attributes    map[string]any
}

// MarshalJSON renders the listing as one flat object:
// {"_id": ..., "providerEmail": ..., "serviceName": ..., <attributes>}.
func (l Listing) MarshalJSON() ([]byte, error) {
	return encodeDocument(l.ID, l.Attributes, map[string]string{
		FieldProviderEmail: l.ProviderEmail,
		FieldServiceName:   l.ServiceName,
	})
}

// UnmarshalJSON accepts the flat document form. A client supplied "_id" is
// ignored; identifiers are always assigned by the store.
func (l *Listing) UnmarshalJSON(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	delete(doc, IDField)

	provider, _, err := takeString(doc, FieldProviderEmail)
	if err != nil {
		return err
	}
	name, _, err := takeString(doc, FieldServiceName)
	if err != nil {
		return err
	}

	*l = Listing{
		ProviderEmail: provider,
		ServiceName:   name,
		Attributes:    doc,
	}
	return nil
}

// AttributesOrEmpty returns the attribute map, never nil.
func (l *Listing) AttributesOrEmpty() map[string]any {
	return attributesOrEmpty(l.Attributes)
}

// ListingPatch is a field-level update. Nil core fields are left untouched;
// Attributes are merged key by key over the stored ones.
type ListingPatch struct {
	ProviderEmail *string
	ServiceName   *string
	Attributes    map[string]any
}

// IsEmpty reports whether applying the patch would change nothing.
func (p ListingPatch) IsEmpty() bool {
	return p.ProviderEmail == nil && p.ServiceName == nil && len(p.Attributes) == 0
}

// AttributesOrEmpty returns the attribute map, never nil.
func (p ListingPatch) AttributesOrEmpty() map[string]any {
	return attributesOrEmpty(p.Attributes)
}

// Apply merges the patch into l.
func (p ListingPatch) Apply(l *Listing) {
	if p.ProviderEmail != nil {
		l.ProviderEmail = *p.ProviderEmail
	}
	if p.ServiceName != nil {
		l.ServiceName = *p.ServiceName
	}
	if len(p.Attributes) == 0 {
		return
	}
	if l.Attributes == nil {
		l.Attributes = make(map[string]any, len(p.Attributes))
	}
	for k, v := range p.Attributes {
		l.Attributes[k] = v
	}
}

// UnmarshalJSON decodes an update body. "_id" cannot be changed and is dropped.
func (p *ListingPatch) UnmarshalJSON(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	delete(doc, IDField)

	var patch ListingPatch
	provider, ok, err := takeString(doc, FieldProviderEmail)
	if err != nil {
		return err
	}
	if ok {
		patch.ProviderEmail = &provider
	}
	name, ok, err := takeString(doc, FieldServiceName)
	if err != nil {
		return err
	}
	if ok {
		patch.ServiceName = &name
	}
	if len(doc) > 0 {
		patch.Attributes = doc
	}

	*p = patch
	return nil
}
