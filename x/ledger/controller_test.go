package ledger

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
)

// newStore returns a store with the ledger configured to use given reserve.
func newStore(t testing.TB, reserve coin.Balance) vault.CacheableKVStore {
	t.Helper()
	db := store.MemStore()
	conf := Configuration{
		Metadata:       &vault.Metadata{Schema: 1},
		MinimumReserve: reserve,
	}
	if err := gconf.Save(db, confPkg, &conf); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}
	return db
}

func TestTransfer(t *testing.T) {
	alice := vaulttest.NewCondition().Address()
	bob := vaulttest.NewCondition().Address()

	cases := map[string]struct {
		alice     coin.Balance
		bob       coin.Balance
		amount    coin.Balance
		wantErr   *errors.Error
		wantAlice coin.Balance
		wantBob   coin.Balance
	}{
		"move funds to a new wallet": {
			alice:     100,
			amount:    40,
			wantAlice: 60,
			wantBob:   40,
		},
		"move everything": {
			alice:     100,
			bob:       10,
			amount:    100,
			wantAlice: 0,
			wantBob:   110,
		},
		"not enough funds": {
			alice:     100,
			amount:    101,
			wantErr:   ErrInsufficientBalance,
			wantAlice: 100,
		},
		"source left below reserve": {
			alice:     100,
			amount:    95,
			wantErr:   ErrReserveViolation,
			wantAlice: 100,
		},
		"destination below reserve": {
			alice:     100,
			amount:    5,
			wantErr:   ErrReserveViolation,
			wantAlice: 100,
		},
		"small amount to an existing wallet": {
			alice:     100,
			bob:       50,
			amount:    5,
			wantAlice: 95,
			wantBob:   55,
		},
		"zero amount": {
			alice:     100,
			amount:    0,
			wantErr:   errors.ErrAmount,
			wantAlice: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newStore(t, 10)
			c := NewController()
			assert.Nil(t, c.Issue(db, alice, tc.alice))
			assert.Nil(t, c.Issue(db, bob, tc.bob))

			if err := c.Transfer(db, alice, bob, tc.amount); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			got, err := c.Balance(db, alice)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantAlice, got)
			got, err = c.Balance(db, bob)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestTransferToSelf(t *testing.T) {
	db := newStore(t, 0)
	c := NewController()
	alice := vaulttest.NewCondition().Address()
	assert.Nil(t, c.Issue(db, alice, 10))
	if err := c.Transfer(db, alice, alice, 1); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestTransferWithoutConfiguration(t *testing.T) {
	db := store.MemStore()
	c := NewController()
	alice := vaulttest.NewCondition().Address()
	bob := vaulttest.NewCondition().Address()
	assert.Nil(t, c.Issue(db, alice, 10))
	if err := c.Transfer(db, alice, bob, 1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestFlush(t *testing.T) {
	db := newStore(t, 10)
	c := NewController()
	alice := vaulttest.NewCondition().Address()
	bob := vaulttest.NewCondition().Address()

	assert.Nil(t, c.Issue(db, alice, 15))
	assert.Nil(t, c.Issue(db, bob, 3))

	// flush ignores the reserve of the source
	moved, err := c.Flush(db, alice, bob)
	assert.Nil(t, err)
	assert.Equal(t, coin.Balance(15), moved)

	got, err := c.Balance(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, coin.Balance(18), got)

	if err := NewWalletBucket().Has(db, alice); !errors.ErrNotFound.Is(err) {
		t.Fatalf("wallet not deleted: %+v", err)
	}

	// flushing an empty wallet is a no-op
	moved, err = c.Flush(db, alice, bob)
	assert.Nil(t, err)
	assert.Equal(t, coin.Balance(0), moved)
}

func TestIssueOverflow(t *testing.T) {
	db := newStore(t, 0)
	c := NewController()
	alice := vaulttest.NewCondition().Address()
	assert.Nil(t, c.Issue(db, alice, coin.MaxBalance))
	if err := c.Issue(db, alice, 1); !errors.ErrOverflow.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}
