package orm

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestModelBucketPutOneDelete(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	key, err := b.Put(db, nil, &counter{Owner: []byte("alice"), Count: 3})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), key)

	var c counter
	assert.Nil(t, b.One(db, key, &c))
	assert.Equal(t, counter{Owner: []byte("alice"), Count: 3}, c)

	// explicit key
	_, err = b.Put(db, []byte("fixed"), &counter{Count: 1})
	assert.Nil(t, err)
	assert.Nil(t, b.Has(db, []byte("fixed")))

	assert.Nil(t, b.Delete(db, key))
	if err := b.One(db, key, &c); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
	if err := b.Delete(db, key); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestModelBucketRejectsInvalid(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	if _, err := b.Put(db, nil, &counter{Count: -1}); !errors.ErrModel.Is(err) {
		t.Fatalf("want invalid model, got %+v", err)
	}
	if _, err := b.Put(db, nil, &MultiRef{Refs: [][]byte{{1}}}); !errors.ErrType.Is(err) {
		t.Fatalf("want invalid type, got %+v", err)
	}
}

func TestModelBucketIndex(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{}, WithIndex("owner", counterOwner, false))

	k1, err := b.Put(db, nil, &counter{Owner: []byte("alice"), Count: 1})
	assert.Nil(t, err)
	k2, err := b.Put(db, nil, &counter{Owner: []byte("alice"), Count: 2})
	assert.Nil(t, err)
	_, err = b.Put(db, nil, &counter{Owner: []byte("bob"), Count: 3})
	assert.Nil(t, err)

	found, err := b.ByIndex(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(found))

	// moving an entity between owners updates the index
	_, err = b.Put(db, k2, &counter{Owner: []byte("bob"), Count: 2})
	assert.Nil(t, err)
	found, err = b.ByIndex(db, "owner", []byte("bob"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(found))

	assert.Nil(t, b.Delete(db, k1))
	found, err = b.ByIndex(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(found))

	if _, err := b.ByIndex(db, "unknown", []byte("alice")); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{}, WithIndex("owner", counterOwner, false))
	qr := vault.NewQueryRouter()
	b.Register("counters", qr)

	for i := int64(0); i < 3; i++ {
		_, err := b.Put(db, nil, &counter{Owner: []byte("carol"), Count: i})
		assert.Nil(t, err)
	}

	h := qr.Handler("/counters")
	if h == nil {
		t.Fatal("bucket query handler not registered")
	}
	res, err := h.Query(db, vault.KeyQueryMod, EncodeSequence(2))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))

	res, err = h.Query(db, vault.PrefixQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(res))

	res, err = qr.Handler("/counters/owner").Query(db, vault.KeyQueryMod, []byte("carol"))
	assert.Nil(t, err)
	assert.Equal(t, 3, len(res))

	var c counter
	assert.Nil(t, c.Unmarshal(res[0].Value))
	assert.Equal(t, int64(0), c.Count)
}
