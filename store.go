package vault

// ReadOnlyKVStore is what queries and read only views see.
type ReadOnlyKVStore interface {
	// Get returns nil for a missing key.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending key order. A nil bound is
	// open. The range must not be written to while the iterator is in
	// use.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator walks [start, end) in descending key order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is shared by stores and batches. Implementations must not
// keep references to the key and value slices.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store every handler writes to.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch applies all its writes at once on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator returns entries until it reports ErrIteratorDone:
//
//   defer itr.Release()
//   for {
//     key, value, err := itr.Next()
//     if errors.ErrIteratorDone.Is(err) {
//       break
//     }
//     if err != nil {
//       return err
//     }
//     ...
//   }
type Iterator interface {
	Next() (key, value []byte, err error)
	Release()
}

// CacheableKVStore can stage writes in a cache that is later written
// back or dropped, much like a database savepoint. Caches nest.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap reads through to its parent and sees its own staged
// writes. Write pushes them to the parent, Discard drops them.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root store of a node. All changes go
// through a CacheWrap that is written back before Commit.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap

	// Commit persists a new version and returns its id.
	Commit() (CommitID, error)

	// LoadLatestVersion restores the newest complete version, which can
	// be older than the last commit attempt after a crash.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID names a committed version by height and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
