package orm

import (
	"bytes"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

const indexPrefix = "_i."

// Indexer derives the index value of an object. A nil value keeps the
// object out of the index.
type Indexer func(Object) ([]byte, error)

// Index maps an index value to the primary key of one object when
// unique, or to a MultiRef of primary keys otherwise.
type Index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	// refKey turns a primary key into the key the object is stored at.
	refKey func([]byte) []byte
}

var _ vault.QueryHandler = Index{}

func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return Index{
		name:   name,
		id:     []byte(indexPrefix + name + ":"),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

// IndexKey returns the store key of an index value.
func (i Index) IndexKey(value []byte) []byte {
	out := make([]byte, 0, len(i.id)+len(value))
	out = append(out, i.id...)
	return append(out, value...)
}

// Update moves the entry of an object from its previous index value to
// its next one. A nil prev is an insert, a nil next a delete. Both
// objects must share their primary key.
func (i Index) Update(db vault.KVStore, prev, next Object) error {
	if prev == nil && next == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	}
	if prev != nil && next != nil && !bytes.Equal(prev.Key(), next.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}

	var from, to []byte
	var err error
	if prev != nil {
		if from, err = i.index(prev); err != nil {
			return err
		}
	}
	if next != nil {
		if to, err = i.index(next); err != nil {
			return err
		}
	}
	if prev != nil && next != nil && bytes.Equal(from, to) {
		return nil
	}
	if prev != nil {
		if err := i.remove(db, from, prev.Key()); err != nil {
			return err
		}
	}
	if next != nil {
		return i.insert(db, to, next.Key())
	}
	return nil
}

// GetAt returns the primary keys stored under value, none when the value
// is not indexed.
func (i Index) GetAt(db vault.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(i.IndexKey(value))
	if err != nil || raw == nil {
		return nil, err
	}
	if i.unique {
		return [][]byte{raw}, nil
	}
	var refs MultiRef
	if err := refs.Unmarshal(raw); err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// Query resolves the index value in data to the stored objects. Only
// exact lookups are supported.
func (i Index) Query(db vault.ReadOnlyKVStore, mod string, data []byte) ([]vault.Model, error) {
	if mod != vault.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported index query mod: %q", mod)
	}
	refs, err := i.GetAt(db, data)
	if err != nil {
		return nil, err
	}
	models := make([]vault.Model, len(refs))
	for n, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		models[n] = vault.Pair(key, value)
	}
	return models, nil
}

func (i Index) insert(db vault.KVStore, value, pk []byte) error {
	if value == nil {
		return nil
	}
	key := i.IndexKey(value)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
		return db.Set(key, pk)
	}
	refs, err := loadRefs(cur)
	if err != nil {
		return err
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	return storeRefs(db, key, refs)
}

func (i Index) remove(db vault.KVStore, value, pk []byte) error {
	if value == nil {
		return nil
	}
	key := i.IndexKey(value)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
	}
	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrState, "index %s references another object", i.name)
		}
		return db.Delete(key)
	}
	refs, err := loadRefs(cur)
	if err != nil {
		return err
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	return storeRefs(db, key, refs)
}

func loadRefs(raw []byte) (*MultiRef, error) {
	refs := &MultiRef{}
	if raw == nil {
		return refs, nil
	}
	if err := refs.Unmarshal(raw); err != nil {
		return nil, err
	}
	return refs, nil
}

// storeRefs deletes the entry once the last reference is gone.
func storeRefs(db vault.KVStore, key []byte, refs *MultiRef) error {
	if len(refs.Refs) == 0 {
		return db.Delete(key)
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}
