package ledger

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// Controller is the functionality other extensions need from the ledger.
type Controller interface {
	// Balance returns the value held by given address. Unknown addresses
	// hold nothing.
	Balance(db vault.ReadOnlyKVStore, addr vault.Address) (coin.Balance, error)

	// MinimumReserve returns the least balance a non empty wallet must
	// hold.
	MinimumReserve(db vault.ReadOnlyKVStore) (coin.Balance, error)

	// Transfer moves amount from src to dst. It fails if src does not
	// hold enough funds, if src would be left with a non zero balance
	// below the reserve or if dst would end with a balance below the
	// reserve.
	Transfer(db vault.KVStore, src, dst vault.Address, amount coin.Balance) error

	// Issue creates new value on given address.
	Issue(db vault.KVStore, dst vault.Address, amount coin.Balance) error

	// Flush moves the entire balance of src to dst and deletes the src
	// wallet. The reserve is not checked. The moved amount is returned.
	Flush(db vault.KVStore, src, dst vault.Address) (coin.Balance, error)
}

// BaseController is a Controller that stores wallets in a bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default wallet bucket.
func NewController() BaseController {
	return BaseController{
		bucket: NewWalletBucket(),
	}
}

func (c BaseController) Balance(db vault.ReadOnlyKVStore, addr vault.Address) (coin.Balance, error) {
	w, err := c.wallet(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

func (c BaseController) MinimumReserve(db vault.ReadOnlyKVStore) (coin.Balance, error) {
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	return conf.MinimumReserve, nil
}

func (c BaseController) Transfer(db vault.KVStore, src, dst vault.Address, amount coin.Balance) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	if src.Equals(dst) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}
	reserve, err := c.MinimumReserve(db)
	if err != nil {
		return err
	}

	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	left, err := sender.Balance.Sub(amount)
	if err != nil {
		return errors.Wrapf(ErrInsufficientBalance, "%s holds %s, wants %s", src, sender.Balance, amount)
	}
	if left.IsPositive() && left < reserve {
		return errors.Wrapf(ErrReserveViolation, "source would keep %s, reserve is %s", left, reserve)
	}

	recipient, err := c.wallet(db, dst)
	if err != nil {
		return err
	}
	total, err := recipient.Balance.Add(amount)
	if err != nil {
		return errors.Wrap(err, "destination balance")
	}
	if total < reserve {
		return errors.Wrapf(ErrReserveViolation, "destination would hold %s, reserve is %s", total, reserve)
	}

	sender.Balance = left
	recipient.Balance = total
	if err := c.save(db, src, sender); err != nil {
		return err
	}
	return c.save(db, dst, recipient)
}

func (c BaseController) Issue(db vault.KVStore, dst vault.Address, amount coin.Balance) error {
	w, err := c.wallet(db, dst)
	if err != nil {
		return err
	}
	total, err := w.Balance.Add(amount)
	if err != nil {
		return errors.Wrap(err, "issue")
	}
	w.Balance = total
	return c.save(db, dst, w)
}

func (c BaseController) Flush(db vault.KVStore, src, dst vault.Address) (coin.Balance, error) {
	if src.Equals(dst) {
		return 0, errors.Wrap(errors.ErrInput, "source and destination are the same")
	}
	sender, err := c.wallet(db, src)
	if err != nil {
		return 0, err
	}
	amount := sender.Balance
	if amount.IsPositive() {
		recipient, err := c.wallet(db, dst)
		if err != nil {
			return 0, err
		}
		if recipient.Balance, err = recipient.Balance.Add(amount); err != nil {
			return 0, errors.Wrap(err, "destination balance")
		}
		if err := c.save(db, dst, recipient); err != nil {
			return 0, err
		}
	}
	switch err := c.bucket.Delete(db, src); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return 0, errors.Wrap(err, "delete source wallet")
	}
	return amount, nil
}

// wallet returns the wallet of given address. A new, empty wallet is
// returned if none is stored yet.
func (c BaseController) wallet(db vault.ReadOnlyKVStore, addr vault.Address) (*Wallet, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "address")
	}
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Metadata: &vault.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "load wallet")
	}
}

// save stores the wallet, or removes it once it is empty.
func (c BaseController) save(db vault.KVStore, addr vault.Address, w *Wallet) error {
	if w.Balance.IsZero() {
		switch err := c.bucket.Delete(db, addr); {
		case err == nil, errors.ErrNotFound.Is(err):
			return nil
		default:
			return errors.Wrap(err, "delete wallet")
		}
	}
	if _, err := c.bucket.Put(db, addr, w); err != nil {
		return errors.Wrap(err, "save wallet")
	}
	return nil
}
