package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest/assert"
)

// TestSuite runs the same set of checks against any CacheableKVStore
// implementation. Only the constructor of the base store differs between
// the in-memory and the iavl backed store.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a function that releases
// all resources held by it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet checks that writes are visible in the layer they were made in and
// only reach the parent when the cache is written.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	owner, balance := []byte("wallet:owner"), []byte("100000000")
	s.AssertGetHas(t, base, owner, nil, false)
	assert.Nil(t, base.Set(owner, balance))
	s.AssertGetHas(t, base, owner, balance, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, owner, balance, true)

	account, saved := []byte("savings:1"), []byte("60000")
	assert.Nil(t, cache.Set(account, saved))
	s.AssertGetHas(t, cache, account, saved, true)
	s.AssertGetHas(t, base, account, nil, false)

	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, owner, balance, true)
	s.AssertGetHas(t, base, account, saved, true)

	// a discarded cache leaves no trace
	dropped := base.CacheWrap()
	assert.Nil(t, dropped.Set([]byte("savings:2"), []byte("1")))
	assert.Nil(t, dropped.Delete(owner))
	dropped.Discard()
	s.AssertGetHas(t, base, owner, balance, true)
	s.AssertGetHas(t, base, []byte("savings:2"), nil, false)

	// deleting through a cache reaches the parent on write
	del := base.CacheWrap()
	assert.Nil(t, del.Delete(owner))
	s.AssertGetHas(t, del, owner, nil, false)
	s.AssertGetHas(t, base, owner, balance, true)
	assert.Nil(t, del.Write())
	s.AssertGetHas(t, base, owner, nil, false)
}

// CacheConflicts checks that a child layer can overwrite and delete values
// of the parent without modifying it until written.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := randKeys(4, 16)
	vs := randKeys(4, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model
		childQueries  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[3]), SetOp(ks[3], vs[0]), DelOp(ks[2])},
			parentQueries: []Model{Pair(ks[1], vs[1]), Pair(ks[2], vs[2]), Pair(ks[3], nil)},
			childQueries:  []Model{Pair(ks[1], vs[3]), Pair(ks[2], nil), Pair(ks[3], vs[0])},
		},
		"delete and set again": {
			parentOps:     []Op{SetOp(ks[0], vs[0])},
			childOps:      []Op{DelOp(ks[0]), SetOp(ks[0], vs[1])},
			parentQueries: []Model{Pair(ks[0], vs[0])},
			childQueries:  []Model{Pair(ks[0], vs[1])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				assert.Nil(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				assert.Nil(t, op.Apply(child))
			}

			for _, q := range tc.parentQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			assert.Nil(t, child.Write())
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// Iteration checks that iterating over a cache merges its own writes with
// the content of the parent, in both directions and with range limits.
func (s *TestSuite) Iteration(t *testing.T) {
	ms := randModels(6, 20, 60)
	a, a2, b, b2, c, d := ms[0], ms[1], ms[2], ms[3], ms[4], ms[5]
	a2.Key = a.Key
	b2.Key = b.Key

	abc := sortModels([]Model{a, b, c})
	overwritten := sortModels([]Model{a2, b2, c, d})

	cases := map[string]struct {
		parent  []Op
		child   []Op
		queries []rangeQuery
	}{
		"child only": {
			child: makeSetOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, abc},
				{abc[1].Key, abc[2].Key, false, abc[1:2]},
				{nil, nil, true, reverse(abc)},
				{abc[1].Key, nil, true, reverse(abc[1:])},
			},
		},
		"parent only": {
			parent: makeSetOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, abc},
				{nil, abc[2].Key, false, abc[:2]},
				{nil, nil, true, reverse(abc)},
			},
		},
		"combination": {
			parent: makeSetOps(a, b),
			child:  makeSetOps(c),
			queries: []rangeQuery{
				{nil, nil, false, abc},
				{abc[0].Key, abc[2].Key, false, abc[:2]},
				{nil, nil, true, reverse(abc)},
			},
		},
		"child overwrites parent": {
			parent: makeSetOps(a, b, c),
			child:  makeSetOps(a2, b2, d),
			queries: []rangeQuery{
				{nil, nil, false, overwritten},
				{overwritten[1].Key, overwritten[3].Key, false, overwritten[1:3]},
				{nil, nil, true, reverse(overwritten)},
			},
		},
		"child deletes are skipped": {
			parent: makeSetOps(a, c, d),
			child:  makeDelOps(a, b, d),
			queries: []rangeQuery{
				{nil, nil, false, []Model{c}},
				{nil, c.Key, false, nil},
				{nil, nil, true, []Model{c}},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parent {
				assert.Nil(t, op.Apply(base))
			}
			child := base.CacheWrap()
			for _, op := range tc.child {
				assert.Nil(t, op.Apply(child))
			}
			for _, q := range tc.queries {
				q.verify(t, child)
			}
		})
	}
}

// AssertGetHas ensures that both Get and Has return the expected result
// for given key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

// rangeQuery checks the results of iteration
type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

func (q rangeQuery) verify(t testing.TB, kv ReadOnlyKVStore) {
	t.Helper()

	var (
		iter Iterator
		err  error
	)
	if q.reverse {
		iter, err = kv.ReverseIterator(q.start, q.end)
	} else {
		iter, err = kv.Iterator(q.start, q.end)
	}
	assert.Nil(t, err)
	defer iter.Release()

	for i, want := range q.expected {
		key, value, err := iter.Next()
		assert.Nil(t, err)
		if !bytes.Equal(want.Key, key) {
			t.Fatalf("want key %d to be %X, got %X", i, want.Key, key)
		}
		assert.Equal(t, want.Value, value)
	}
	if _, _, err := iter.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want iterator to be done, got %+v", err)
	}
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = randBytes(size)
	}
	return res
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = Pair(randBytes(keySize), randBytes(valueSize))
	}
	return models
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func makeDelOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}
