package store

import (
	"github.com/iov-one/vault/errors"
)

// SliceIterator walks an in-memory list of pairs in order.
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Next() (key, value []byte, err error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.ErrIteratorDone
	}
	m := s.data[s.idx]
	s.idx++
	return m.Key, m.Value, nil
}

// Release drops the backing slice. Any following Next call reports
// ErrIteratorDone.
func (s *SliceIterator) Release() {
	s.data = nil
	s.idx = 0
}

// ReadAll drains it into a slice and releases it.
func ReadAll(it Iterator) ([]Model, error) {
	defer it.Release()

	var all []Model
	for {
		key, value, err := it.Next()
		switch {
		case errors.ErrIteratorDone.Is(err):
			return all, nil
		case err != nil:
			return nil, err
		}
		all = append(all, Model{Key: key, Value: value})
	}
}

// EmptyKVStore holds nothing and ignores writes. MemStore layers a cache
// on top of it.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error) { return false, nil }
func (EmptyKVStore) Set(_, _ []byte) error { return nil }
func (EmptyKVStore) Delete([]byte) error { return nil }
func (e EmptyKVStore) NewBatch() Batch { return NewNonAtomicBatch(e) }
func (EmptyKVStore) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}
func (EmptyKVStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// Op is a single pending write, created with SetOp or DelOp.
type Op struct {
	del   bool
	key   []byte
	value []byte
}

func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

func DelOp(key []byte) Op {
	return Op{del: true, key: key}
}

// Apply replays the write on out.
func (o Op) Apply(out SetDeleter) error {
	if o.del {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch queues writes and replays them one by one on Write. A
// failure midway leaves the target partially written, so only in-memory
// stores should sit behind it.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write flushes the queue into the target store and empties it.
func (b *NonAtomicBatch) Write() error {
	for i, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			b.ops = b.ops[i:]
			return err
		}
	}
	b.ops = nil
	return nil
}

// ShowOps lists the writes still queued.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
