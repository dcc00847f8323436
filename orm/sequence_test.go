package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	s := NewSequence("savings", SeqID)
	other := NewSequence("savings", "other")

	latest, raw, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), latest)
	assert.Equal(t, []byte(nil), raw)

	first, err := s.NextVal(db)
	assert.Nil(t, err)
	second, err := s.NextVal(db)
	assert.Nil(t, err)
	if bytes.Compare(first, second) >= 0 {
		t.Fatalf("sequence values must grow: %X >= %X", first, second)
	}
	assert.Equal(t, int64(2), DecodeSequence(second))

	n, err := other.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), n)

	latest, raw, err = s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), latest)
	assert.Equal(t, second, raw)
}

func TestValidateSequence(t *testing.T) {
	assert.Nil(t, ValidateSequence(EncodeSequence(7)))
	if err := ValidateSequence(nil); !errors.ErrEmpty.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateSequence([]byte{1, 2}); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}
