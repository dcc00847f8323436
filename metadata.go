package vault

import "github.com/iov-one/vault/errors"

// Metadata is carried by every persisted entity and message. The schema
// version allows the stored format to evolve.
type Metadata struct {
	Schema uint32 `json:"schema"`
}

// Validate returns an error if the schema version is not set.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be set")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when implementing
// orm.CloneableData interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
