package utils

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Savepoint runs the rest of the chain against a cache of the store and
// writes the cache back only when the call succeeds. A failed spend
// therefore leaves neither a ledger transfer nor an account update
// behind. It does nothing until enabled with OnCheck or OnDeliver.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ vault.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	cache, ok := s.cache(db, s.onCheck)
	if !ok {
		return next.Check(ctx, db, tx)
	}
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}

// Deliver logs every rollback caused by a fatal error, since those mean
// the ledger refused a transition the handler had already accepted.
func (s Savepoint) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	cache, ok := s.cache(db, s.onDeliver)
	if !ok {
		return next.Deliver(ctx, db, tx)
	}
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		if errors.IsFatal(err) {
			vault.GetLogger(ctx).Error("transaction rolled back", "path", vault.GetPath(tx), "err", err)
		}
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}

func (Savepoint) cache(db vault.KVStore, enabled bool) (vault.KVCacheWrap, bool) {
	if !enabled {
		return nil, false
	}
	c, ok := db.(vault.CacheableKVStore)
	if !ok {
		return nil, false
	}
	return c.CacheWrap(), true
}
