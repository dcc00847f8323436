package orm

import (
	"bytes"
	"sort"

	"github.com/iov-one/vault/errors"
)

// MultiRef is the value of a non unique index entry: the primary keys of
// every object sharing that index value, kept sorted. The owner index of
// savings accounts stores one per owner.
type MultiRef struct {
	Refs [][]byte
}

var _ Model = (*MultiRef)(nil)

func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	m := &MultiRef{}
	for _, r := range refs {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// search returns the position of ref, or where it belongs.
func (m *MultiRef) search(ref []byte) (int, bool) {
	i := sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(m.Refs[i], ref) >= 0
	})
	return i, i < len(m.Refs) && bytes.Equal(m.Refs[i], ref)
}

// Add fails with ErrDuplicate when ref is already present.
func (m *MultiRef) Add(ref []byte) error {
	i, ok := m.search(ref)
	if ok {
		return errors.Wrap(errors.ErrDuplicate, "ref already in set")
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove fails with ErrNotFound when ref is missing.
func (m *MultiRef) Remove(ref []byte) error {
	i, ok := m.search(ref)
	if !ok {
		return errors.Wrap(errors.ErrNotFound, "ref not in set")
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// Copy shares the reference bytes, which are never modified in place.
func (m *MultiRef) Copy() Model {
	return &MultiRef{Refs: append([][]byte(nil), m.Refs...)}
}

// Validate rejects an empty set. Empty index entries are deleted
// instead of stored.
func (m *MultiRef) Validate() error {
	if len(m.Refs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no references")
	}
	return nil
}

func (m *MultiRef) Marshal() ([]byte, error) {
	return MarshalModel(m)
}

func (m *MultiRef) Unmarshal(raw []byte) error {
	return UnmarshalModel(raw, m)
}
