package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// CommitStore wraps the persistent store of the node. Transactions of
// the current block are delivered into one cache and checked against a
// second one. Commit persists the first and drops the second.
type CommitStore struct {
	committed vault.CommitKVStore
	deliver   vault.KVCacheWrap
	check     vault.KVCacheWrap
}

// NewCommitStore panics when the latest version cannot be loaded. A node
// that cannot read its own state must not start.
func NewCommitStore(db vault.CommitKVStore) *CommitStore {
	if err := db.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: db}
	cs.reset()
	return cs
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the height and app hash of the last commit.
func (cs *CommitStore) CommitInfo() (vault.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit writes all delivered changes and starts a new block.
func (cs *CommitStore) Commit() (vault.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return vault.CommitID{}, err
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, err
	}
	cs.reset()
	return id, nil
}

func (cs *CommitStore) CheckStore() vault.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() vault.CacheableKVStore {
	return cs.deliver
}

// Keys prefixed with _vt: hold node internal data.
var chainIDKey = []byte("_vt:chainID")

// mustLoadChainID returns an empty string before genesis.
func mustLoadChainID(db vault.ReadOnlyKVStore) string {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// saveChainID is only called once, from InitChain.
func saveChainID(db vault.KVStore, chainID string) error {
	if !vault.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	switch exists, err := db.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case exists:
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	return errors.Wrap(db.Set(chainIDKey, []byte(chainID)), "save chain id")
}
