package savings

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
)

// FeeRate is the part of every spent amount that is withheld as savings.
var FeeRate = coin.NewFraction(3, 100)

// Environment provides the facts and the ledger operations an account
// depends on. All methods refer to the account the environment was created
// for.
type Environment interface {
	// Caller returns the identity of the current call invoker.
	Caller() vault.Address
	// Balance returns the total funds held by the account.
	Balance() (coin.Balance, error)
	// MinimumReserve returns the least balance any non empty account
	// must hold.
	MinimumReserve() (coin.Balance, error)
	// Now returns the current ledger time.
	Now() (vault.UnixTime, error)
	// Transfer moves funds out of the account.
	Transfer(dst vault.Address, amount coin.Balance) error
	// TerminateAndFlush deletes the account and sends its entire balance
	// to the beneficiary.
	TerminateAndFlush(beneficiary vault.Address) error
}

// EscrowAccount is the state machine of a savings account. It is either
// active or terminated. Only an active account accepts operations.
//
// An EscrowAccount must not be used concurrently. Calls are expected to be
// serialized by the dispatcher.
type EscrowAccount struct {
	env        Environment
	acc        Account
	terminated bool
}

// Construct creates a new active account owned by the caller. No savings
// are stored. The expiration is not validated, it may be in the past.
//
// An initial deposit, if any, must be transferred by the caller to the
// account address within the same transaction.
func Construct(env Environment, expiration vault.UnixTime) *EscrowAccount {
	return &EscrowAccount{
		env: env,
		acc: Account{
			Metadata:   &vault.Metadata{Schema: 1},
			Owner:      env.Caller(),
			Expiration: expiration,
		},
	}
}

// Load returns an active account using the persisted state.
func Load(env Environment, acc *Account) *EscrowAccount {
	return &EscrowAccount{
		env: env,
		acc: *acc.Copy().(*Account),
	}
}

// Account returns a copy of the persistent state of this account.
func (e *EscrowAccount) Account() *Account {
	return e.acc.Copy().(*Account)
}

// Terminated returns true once Terminate succeeded.
func (e *EscrowAccount) Terminated() bool {
	return e.terminated
}

// Spend pays amount to the destination and withholds a fee as savings.
//
// The payment is allowed only if what is left after subtracting the minimum
// reserve and the fee from the balance is strictly greater than the amount.
// Stored savings are not held back, a later WithdrawSavings may then fail
// with ErrWithdrawalFailed. A rejected spend returns an
// InsufficientFundsError and changes nothing.
//
// A failing ledger transfer is a fatal fault. It is returned wrapped in
// errors.ErrAborted and the transaction must be rolled back.
func (e *EscrowAccount) Spend(dst vault.Address, amount coin.Balance) error {
	if e.terminated {
		return errors.Wrap(ErrTerminated, "spend")
	}
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "spend amount must be positive")
	}
	fee, err := FeeRate.CeilMul(amount)
	if err != nil {
		return errors.Wrapf(ErrTransferAmountTooLarge, "cannot compute fee of %s", amount)
	}

	balance, err := e.env.Balance()
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	reserve, err := e.env.MinimumReserve()
	if err != nil {
		return errors.Wrap(err, "minimum reserve")
	}

	capacity := balance.SubSat(reserve).SubSat(fee)
	if capacity <= amount {
		return &InsufficientFundsError{
			TotalBalance:     balance,
			PotentialBalance: capacity,
			RequestedAmount:  amount,
			MinimumReserve:   reserve,
		}
	}

	saved, err := e.acc.SavedAmount.Add(fee)
	if err != nil {
		return errors.Wrap(ErrTransferAmountTooLarge, "savings overflow")
	}
	if err := e.env.Transfer(dst, amount); err != nil {
		return errors.Wrapf(errors.ErrAborted, "spend transfer: %s", err)
	}
	e.acc.SavedAmount = saved
	return nil
}

// WithdrawSavings sends all stored savings to the owner. Only the owner may
// withdraw and only once the account expired. The withdrawal is refused if
// the account would be left with less than the minimum reserve.
func (e *EscrowAccount) WithdrawSavings() error {
	if err := e.authorize(); err != nil {
		return err
	}
	balance, err := e.env.Balance()
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	reserve, err := e.env.MinimumReserve()
	if err != nil {
		return errors.Wrap(err, "minimum reserve")
	}
	if remainder := balance.SubSat(e.acc.SavedAmount); remainder < reserve {
		return errors.Wrapf(ErrWithdrawalFailed, "%s would be left, reserve is %s", remainder, reserve)
	}
	if e.acc.SavedAmount.IsZero() {
		return nil
	}
	if err := e.env.Transfer(e.acc.Owner, e.acc.SavedAmount); err != nil {
		return errors.Wrapf(errors.ErrAborted, "withdraw transfer: %s", err)
	}
	e.acc.SavedAmount = 0
	return nil
}

// Terminate deletes the account and sends its entire balance to the owner.
// Only the owner may terminate and only once the account expired. This is
// the only operation that ignores the minimum reserve.
func (e *EscrowAccount) Terminate() error {
	if err := e.authorize(); err != nil {
		return err
	}
	if err := e.env.TerminateAndFlush(e.acc.Owner); err != nil {
		return errors.Wrapf(errors.ErrAborted, "terminate: %s", err)
	}
	e.terminated = true
	return nil
}

// authorize ensures the account is active, the caller is the owner and the
// account expired.
func (e *EscrowAccount) authorize() error {
	if e.terminated {
		return ErrTerminated
	}
	if caller := e.env.Caller(); !e.acc.Owner.Equals(caller) {
		return errors.Wrapf(ErrCallerIsNotOwner, "caller %s", caller)
	}
	now, err := e.env.Now()
	if err != nil {
		return errors.Wrap(err, "current time")
	}
	if now < e.acc.Expiration {
		return errors.Wrapf(ErrNotYetExpired, "expires at %s", e.acc.Expiration)
	}
	return nil
}

// Free returns the amount that can be spent without touching the savings or
// the minimum reserve.
func (e *EscrowAccount) Free() (coin.Balance, error) {
	balance, err := e.env.Balance()
	if err != nil {
		return 0, errors.Wrap(err, "balance")
	}
	reserve, err := e.env.MinimumReserve()
	if err != nil {
		return 0, errors.Wrap(err, "minimum reserve")
	}
	return balance.SubSat(reserve).SubSat(e.acc.SavedAmount), nil
}

// AmountStored returns the savings withheld and not yet withdrawn.
func (e *EscrowAccount) AmountStored() coin.Balance {
	return e.acc.SavedAmount
}

// GetBalance returns the total funds held by the account.
func (e *EscrowAccount) GetBalance() (coin.Balance, error) {
	return e.env.Balance()
}

// GetExpiration returns the moment after which the owner may withdraw.
func (e *EscrowAccount) GetExpiration() vault.UnixTime {
	return e.acc.Expiration
}
