package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket stores objects of one type under <name>:<key> and keeps its
// secondary indexes up to date. Extensions wrap it in a type safe
// bucket of their own.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]Index
}

var _ vault.QueryHandler = Bucket{}

// NewBucket panics on a name that is not 3 to 10 lower case letters or
// underscores. proto is cloned for every decoded object.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
		proto:  proto,
	}
}

// WithIndex returns a copy of the bucket that also maintains the named
// index. Registering a name twice panics.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("Index %s registered twice", name))
	}
	indexes := make(map[string]Index, len(b.indexes)+1)
	for n, idx := range b.indexes {
		indexes[n] = idx
	}
	indexes[name] = NewIndex(b.name+"_"+name, indexer, unique, b.DBKey)
	b.indexes = indexes
	return b
}

// Register exposes the bucket under /<name> and each index under
// /<name>/<index>. An empty name falls back to the bucket name.
func (b Bucket) Register(name string, r vault.QueryRouter) {
	if name == "" {
		name = b.name
	}
	path := "/" + name
	r.Register(path, b)
	for idxName, idx := range b.indexes {
		r.Register(path+"/"+idxName, idx)
	}
}

// Query returns nothing, and no error, for a missing key.
func (b Bucket) Query(db vault.ReadOnlyKVStore, mod string, data []byte) ([]vault.Model, error) {
	switch mod {
	case vault.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil || value == nil {
			return nil, err
		}
		return []vault.Model{vault.Pair(key, value)}, nil
	case vault.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %q", mod)
}

// DBKey returns a freshly allocated prefixed key.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	out = append(out, b.prefix...)
	return append(out, key...)
}

// Get returns nil, nil when nothing is stored under key.
func (b Bucket) Get(db vault.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(raw); err != nil {
		return nil, err
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates obj, updates the indexes and writes it.
func (b Bucket) Save(db vault.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return err
	}
	if err := b.reindex(db, obj.Key(), obj); err != nil {
		return err
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

func (b Bucket) Delete(db vault.KVStore, key []byte) error {
	if err := b.reindex(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

// reindex moves the index entries of key from the stored object to
// next. A nil next removes them.
func (b Bucket) reindex(db vault.KVStore, key []byte, next Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	if prev == nil && next == nil {
		return nil
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, prev, next); err != nil {
			return err
		}
	}
	return nil
}

func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// GetIndexed loads every object the named index lists under key.
func (b Bucket) GetIndexed(db vault.ReadOnlyKVStore, name string, key []byte) ([]Object, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "unknown index %q", name)
	}
	refs, err := idx.GetAt(db, key)
	if err != nil {
		return nil, err
	}
	objs := make([]Object, 0, len(refs))
	for _, ref := range refs {
		obj, err := b.Get(db, ref)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}
