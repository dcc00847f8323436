package orm

import (
	"reflect"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// ModelBucket stores a single Model type and hides the Object wrapper
// from its callers. Savings accounts and ledger wallets live in one.
type ModelBucket interface {
	// One loads the model under key into dest. It fails with ErrNotFound
	// for a missing key and with ErrType when dest has the wrong type.
	One(db vault.ReadOnlyKVStore, key []byte, dest Model) error

	// ByIndex returns every model listed under key in the named index.
	ByIndex(db vault.ReadOnlyKVStore, indexName string, key []byte) ([]Model, error)

	// Has returns ErrNotFound unless a model is stored under key.
	Has(db vault.KVStore, key []byte) error

	// Put validates and stores m. A nil key is replaced by the next
	// value of the bucket id sequence. The key used is returned.
	Put(db vault.KVStore, key []byte, m Model) ([]byte, error)

	// Delete returns ErrNotFound when nothing is stored under key.
	Delete(db vault.KVStore, key []byte) error

	Register(name string, r vault.QueryRouter)
}

type ModelBucketOption func(mb *modelBucket)

// WithIndex maintains a secondary index named name over the bucket.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithIndex(name, indexer, unique)
	}
}

// NewModelBucket only accepts models of the dynamic type of m.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	b := NewBucket(name, NewSimpleObj(nil, m))
	mb := &modelBucket{
		b:     b,
		idSeq: b.Sequence(SeqID),
		model: reflect.TypeOf(m),
	}
	for _, opt := range opts {
		opt(mb)
	}
	return mb
}

type modelBucket struct {
	b     Bucket
	idSeq Sequence
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) Register(name string, r vault.QueryRouter) {
	mb.b.Register(name, r)
}

func (mb *modelBucket) One(db vault.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	found := reflect.ValueOf(obj.Value())
	target := reflect.ValueOf(dest)
	if !found.Type().AssignableTo(target.Type()) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", obj.Value(), dest)
	}
	target.Elem().Set(found.Elem())
	return nil
}

func (mb *modelBucket) ByIndex(db vault.ReadOnlyKVStore, indexName string, key []byte) ([]Model, error) {
	objs, err := mb.b.GetIndexed(db, indexName, key)
	if err != nil {
		return nil, err
	}
	models := make([]Model, 0, len(objs))
	for _, obj := range objs {
		if obj != nil {
			models = append(models, obj.Value())
		}
	}
	return models, nil
}

func (mb *modelBucket) Has(db vault.KVStore, key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrNotFound, "nil key")
	}
	switch ok, err := db.Has(mb.b.DBKey(key)); {
	case err != nil:
		return err
	case !ok:
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) Put(db vault.KVStore, key []byte, m Model) ([]byte, error) {
	if reflect.TypeOf(m) != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T type in this bucket", m)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}
	if len(key) == 0 {
		id, err := mb.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
		key = id
	}
	if err := mb.b.Save(db, NewSimpleObj(key, m)); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db vault.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}
