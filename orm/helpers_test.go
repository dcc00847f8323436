package orm

import (
	"github.com/iov-one/vault/errors"
)

// counter is a minimal model used to exercise buckets in tests.
type counter struct {
	Owner []byte
	Count int64
}

var _ Model = (*counter)(nil)

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func (c *counter) Copy() Model {
	cpy := *c
	return &cpy
}

func (c *counter) Marshal() ([]byte, error) {
	return MarshalModel(c)
}

func (c *counter) Unmarshal(raw []byte) error {
	return UnmarshalModel(raw, c)
}

func counterOwner(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return c.Owner, nil
}
