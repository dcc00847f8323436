package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
)

// RegisterQuery registers the raw store access under "/". It supports key
// lookups and prefix listings of any data in the store.
func RegisterQuery(qr vault.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

var _ vault.QueryHandler = rawQuery{}

func (rawQuery) Query(db vault.ReadOnlyKVStore, mod string, data []byte) ([]vault.Model, error) {
	switch mod {
	case vault.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []vault.Model{vault.Pair(data, value)}, nil
	case vault.PrefixQueryMod:
		it, err := db.Iterator(data, prefixEnd(data))
		if err != nil {
			return nil, err
		}
		return store.ReadAll(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %q", mod)
	}
}

// prefixEnd returns the first key after all keys with given prefix, or nil
// if there is none.
func prefixEnd(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
