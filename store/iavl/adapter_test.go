package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

func makeCommitStore(t testing.TB) (CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		t.Fatalf("cannot create temporary directory: %s", err)
	}
	commit := NewCommitStore(tmpDir, "base")
	cleanup := func() {
		commit.Close()
		os.RemoveAll(tmpDir)
	}
	return commit, cleanup
}

func newSuite(t *testing.T) *store.TestSuite {
	return store.NewTestSuite(func() (store.CacheableKVStore, func()) {
		commit, cleanup := makeCommitStore(t)
		return commit.Adapter(), cleanup
	})
}

func TestAdapterGetSet(t *testing.T) {
	newSuite(t).GetSet(t)
}

func TestAdapterCacheConflicts(t *testing.T) {
	newSuite(t).CacheConflicts(t)
}

func TestAdapterIteration(t *testing.T) {
	newSuite(t).Iteration(t)
}

func TestCommitOverwrite(t *testing.T) {
	commit, cleanup := makeCommitStore(t)
	defer cleanup()

	id, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)
	if len(id.Hash) != 0 {
		t.Fatal("hash is not empty")
	}

	k1, k2, k3 := []byte("wallet:1"), []byte("wallet:2"), []byte("wallet:3")
	parent := commit.CacheWrap()
	assert.Nil(t, parent.Set(k1, []byte("one")))
	assert.Nil(t, parent.Set(k2, []byte("two")))
	assert.Nil(t, parent.Write())

	// not yet committed
	got, err := commit.Get(k1)
	assert.Nil(t, err)
	assert.Equal(t, []byte(nil), got)

	id, err = commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("hash is empty")
	}
	got, err = commit.Get(k1)
	assert.Nil(t, err)
	assert.Equal(t, []byte("one"), got)

	child := commit.CacheWrap()
	assert.Nil(t, child.Set(k1, []byte("uno")))
	assert.Nil(t, child.Set(k3, []byte("three")))
	assert.Nil(t, child.Delete(k2))

	// a parallel cache sees only the state before the child writes
	side := commit.CacheWrap()
	suite := newSuite(t)
	suite.AssertGetHas(t, side, k1, []byte("one"), true)
	suite.AssertGetHas(t, side, k2, []byte("two"), true)
	suite.AssertGetHas(t, side, k3, nil, false)

	assert.Nil(t, child.Write())
	suite.AssertGetHas(t, side, k1, []byte("uno"), true)
	suite.AssertGetHas(t, side, k2, nil, false)
	suite.AssertGetHas(t, side, k3, []byte("three"), true)

	id2, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id2.Version)
	if string(id2.Hash) == string(id.Hash) {
		t.Fatal("hash must change with the content")
	}
}

func TestCommitStoreReload(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-reload-")
	assert.Nil(t, err)
	defer os.RemoveAll(tmpDir)

	commit := NewCommitStore(tmpDir, "reload")
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("savings:1"), []byte("60000")))
	assert.Nil(t, cache.Write())
	first, err := commit.Commit()
	assert.Nil(t, err)
	commit.Close()

	reopened := NewCommitStore(tmpDir, "reload")
	defer reopened.Close()
	assert.Nil(t, reopened.LoadLatestVersion())

	latest, err := reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, first, latest)

	got, err := reopened.Get([]byte("savings:1"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("60000"), got)
}

func TestMemCommitStore(t *testing.T) {
	commit := NewMemCommitStore()
	defer commit.Close()

	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("k"), []byte("v")))
	assert.Nil(t, cache.Write())
	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
}
