package ledger

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// BucketName is where we store the balances
const BucketName = "wallet"

// Wallet holds the balance of a single address. The address is the key.
type Wallet struct {
	Metadata *vault.Metadata `json:"metadata"`
	Balance  coin.Balance    `json:"balance"`
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error) {
	return orm.MarshalModel(w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, w)
}

// Validate requires metadata. Any balance is valid, the reserve is
// enforced on transfer.
func (w *Wallet) Validate() error {
	return errors.AppendField(nil, "Metadata", w.Metadata.Validate())
}

func (w *Wallet) Copy() orm.Model {
	return &Wallet{
		Metadata: w.Metadata.Copy(),
		Balance:  w.Balance,
	}
}

// NewWalletBucket returns a bucket storing wallets by address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}
