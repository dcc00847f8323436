package orm

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/store"
)

// prefixRangeEnd returns the smallest key greater than all keys starting
// with given prefix. nil means there is no such key.
func prefixRangeEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

func queryPrefix(db vault.ReadOnlyKVStore, prefix []byte) ([]vault.Model, error) {
	itr, err := db.Iterator(prefix, prefixRangeEnd(prefix))
	if err != nil {
		return nil, err
	}
	return store.ReadAll(itr)
}
