package store

import "github.com/iov-one/vault"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = vault.ReadOnlyKVStore
	SetDeleter       = vault.SetDeleter
	KVStore          = vault.KVStore
	Batch            = vault.Batch
	Iterator         = vault.Iterator
	CacheableKVStore = vault.CacheableKVStore
	KVCacheWrap      = vault.KVCacheWrap
	CommitKVStore    = vault.CommitKVStore
	CommitID         = vault.CommitID
	Model            = vault.Model
)

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return vault.Pair(key, value)
}
