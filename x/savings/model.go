package savings

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// BucketName is where the accounts are stored.
const BucketName = "savings"

// Account is the persistent state of an EscrowAccount. It is stored under
// a sequence generated id.
type Account struct {
	Metadata    *vault.Metadata `json:"metadata"`
	Owner       vault.Address   `json:"owner"`
	Expiration  vault.UnixTime  `json:"expiration"`
	SavedAmount coin.Balance    `json:"saved_amount"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Marshal() ([]byte, error) {
	return orm.MarshalModel(a)
}

func (a *Account) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, a)
}

func (a *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", a.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	errs = errors.AppendField(errs, "Expiration", a.Expiration.Validate())
	return errs
}

func (a *Account) Copy() orm.Model {
	return &Account{
		Metadata:    a.Metadata.Copy(),
		Owner:       append(vault.Address(nil), a.Owner...),
		Expiration:  a.Expiration,
		SavedAmount: a.SavedAmount,
	}
}

// AccountAddress returns the ledger address that holds the funds of the
// account with given id.
func AccountAddress(id []byte) vault.Address {
	return vault.NewCondition("savings", "seq", id).Address()
}

// NewAccountBucket returns a bucket storing accounts, indexed by owner.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Account{},
		orm.WithIndex("owner", ownerIndex, false),
	)
}

func ownerIndex(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	acc, ok := obj.Value().(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "can only take index of Account, got %T", obj.Value())
	}
	return acc.Owner, nil
}
