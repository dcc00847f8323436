package savings

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x"
	"github.com/iov-one/vault/x/ledger"
)

// ledgerEnv is the Environment of a stored account. Funds are held by the
// ledger under the account address.
type ledgerEnv struct {
	ctx    vault.Context
	db     vault.KVStore
	auth   x.Authenticator
	ledger ledger.Controller
	bucket orm.ModelBucket
	id     []byte
}

var _ Environment = (*ledgerEnv)(nil)

// Caller returns the address of the main signer of the transaction.
func (e *ledgerEnv) Caller() vault.Address {
	signer := x.MainSigner(e.ctx, e.auth)
	if signer == nil {
		return nil
	}
	return signer.Address()
}

func (e *ledgerEnv) Balance() (coin.Balance, error) {
	return e.ledger.Balance(e.db, AccountAddress(e.id))
}

func (e *ledgerEnv) MinimumReserve() (coin.Balance, error) {
	return e.ledger.MinimumReserve(e.db)
}

func (e *ledgerEnv) Now() (vault.UnixTime, error) {
	now, ok := vault.BlockTime(e.ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrState, "block time not set")
	}
	return vault.AsUnixTime(now), nil
}

func (e *ledgerEnv) Transfer(dst vault.Address, amount coin.Balance) error {
	return e.ledger.Transfer(e.db, AccountAddress(e.id), dst, amount)
}

func (e *ledgerEnv) TerminateAndFlush(beneficiary vault.Address) error {
	if _, err := e.ledger.Flush(e.db, AccountAddress(e.id), beneficiary); err != nil {
		return err
	}
	return e.bucket.Delete(e.db, e.id)
}
