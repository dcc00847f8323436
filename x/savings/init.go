package savings

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/ledger"
)

const optKey = "savings"

// GenesisAccount is an account created at chain start. The balance is
// issued to the account address.
type GenesisAccount struct {
	Owner       vault.Address  `json:"owner"`
	Expiration  vault.UnixTime `json:"expiration"`
	SavedAmount coin.Balance   `json:"saved_amount"`
	Balance     coin.Balance   `json:"balance"`
}

// Initializer loads accounts from the genesis file. It must run after the
// ledger initializer, so the reserve is configured.
type Initializer struct{}

var _ vault.Initializer = Initializer{}

func (Initializer) FromGenesis(opts vault.Options, db vault.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	if len(accts) == 0 {
		return nil
	}

	control := ledger.NewController()
	reserve, err := control.MinimumReserve(db)
	if err != nil {
		return errors.Wrap(err, "minimum reserve")
	}
	bucket := NewAccountBucket()
	for i, a := range accts {
		if a.SavedAmount > a.Balance {
			return errors.Wrapf(errors.ErrAmount, "account %d: saved amount exceeds balance", i)
		}
		if a.Balance.IsPositive() && a.Balance < reserve {
			return errors.Wrapf(ledger.ErrReserveViolation, "account %d", i)
		}
		acc := Account{
			Metadata:    &vault.Metadata{Schema: 1},
			Owner:       a.Owner,
			Expiration:  a.Expiration,
			SavedAmount: a.SavedAmount,
		}
		id, err := bucket.Put(db, nil, &acc)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := control.Issue(db, AccountAddress(id), a.Balance); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
