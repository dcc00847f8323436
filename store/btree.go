package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/vault/errors"
)

// DefaultFreeListSize is the number of btree nodes kept for reuse.
const DefaultFreeListSize = btree.DefaultFreeListSize

// BTreeCacheable gives any KVStore a btree backed CacheWrap.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore is a throwaway in-memory store for tests and simulations.
func MemStore() CacheableKVStore {
	var base EmptyKVStore
	return NewBTreeCacheWrap(base, base.NewBatch(), nil)
}

// BTreeCacheWrap keeps pending writes in a btree in front of a read only
// parent. Writes are mirrored into batch, which reaches the parent on
// Write.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap wraps kv. A nil free list allocates a fresh one,
// nested caches pass their parent's list.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes the batch into the parent and clears the cache.
func (b BTreeCacheWrap) Write() error {
	defer b.Discard()
	return b.batch.Write()
}

// Discard drops every cached entry, returning nodes to the free list.
func (b BTreeCacheWrap) Discard() {
	for b.bt.Len() > 0 {
		b.bt.DeleteMin()
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(setItem{bkey{key}, value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(deletedItem{bkey{key}})
	return b.batch.Delete(key)
}

// lookup reports the cached state of key. found is false when the cache
// has no opinion and the parent must be asked.
func (b BTreeCacheWrap) lookup(key []byte) (value []byte, found bool, err error) {
	switch it := b.bt.Get(bkey{key}).(type) {
	case nil:
		return nil, false, nil
	case setItem:
		return it.value, true, nil
	case deletedItem:
		return nil, true, nil
	default:
		return nil, false, errors.Wrapf(errors.ErrDatabase, "unexpected btree item %T", it)
	}
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	value, found, err := b.lookup(key)
	if err != nil || found {
		return value, err
	}
	return b.back.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	switch b.bt.Get(bkey{key}).(type) {
	case nil:
		return b.back.Has(key)
	case deletedItem:
		return false, nil
	default:
		return true, nil
	}
}

// Iterator over a domain of keys in ascending order.
// Combines results from btree and backing store
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	below, err := ReadAll(parent)
	if err != nil {
		return nil, err
	}
	ours := b.itemsInRange(start, end)
	return NewSliceIterator(mergeItems(below, ours, ascending)), nil
}

// ReverseIterator over a domain of keys in descending order.
// Combines results from btree and backing store
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	below, err := ReadAll(parent)
	if err != nil {
		return nil, err
	}
	ours := b.itemsInRange(start, end)
	for i, j := 0, len(ours)-1; i < j; i, j = i+1, j-1 {
		ours[i], ours[j] = ours[j], ours[i]
	}
	return NewSliceIterator(mergeItems(below, ours, descending)), nil
}

// itemsInRange returns all btree entries, including deletion markers,
// within [start, end) in ascending order. nil bounds are open.
func (b BTreeCacheWrap) itemsInRange(start, end []byte) []keyer {
	var res []keyer
	collect := func(item btree.Item) bool {
		res = append(res, item.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(collect)
	case start == nil:
		b.bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		b.bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		b.bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return res
}

func ascending(a, b []byte) int  { return bytes.Compare(a, b) }
func descending(a, b []byte) int { return bytes.Compare(b, a) }

// mergeItems joins the results of the parent with our own writes. Both
// collections must be sorted using the same order. Our entries shadow the
// parent ones with the same key and deletion markers are dropped.
func mergeItems(parent []Model, ours []keyer, cmp func(a, b []byte) int) []Model {
	res := make([]Model, 0, len(parent)+len(ours))
	take := func(item keyer) {
		if set, ok := item.(setItem); ok {
			res = append(res, Model{Key: set.key, Value: set.value})
		}
	}

	var i, j int
	for i < len(parent) || j < len(ours) {
		switch {
		case j >= len(ours):
			res = append(res, parent[i])
			i++
		case i >= len(parent):
			take(ours[j])
			j++
		default:
			switch c := cmp(parent[i].Key, ours[j].Key()); {
			case c < 0:
				res = append(res, parent[i])
				i++
			case c > 0:
				take(ours[j])
				j++
			default:
				take(ours[j])
				i++
				j++
			}
		}
	}
	return res
}

// keyer is implemented by everything stored in the btree.
type keyer interface {
	Key() []byte
}

// bkey orders btree items by key. A bare bkey is used for lookups.
type bkey struct {
	key []byte
}

func (k bkey) Key() []byte { return k.key }

func (k bkey) Less(other btree.Item) bool {
	return bytes.Compare(k.key, other.(keyer).Key()) < 0
}

// deletedItem shadows a parent key that was removed in this cache.
type deletedItem struct {
	bkey
}

type setItem struct {
	bkey
	value []byte
}
