package savings

import (
	"fmt"

	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
)

// x/savings reserves 1010 ~ 1019.
var (
	// A zero amount is not too large but invalid, it fails with errors.ErrAmount.
	ErrTransferAmountTooLarge = errors.Register(1010, "transfer amount too large")
	ErrInsufficientFunds      = errors.Register(1011, "insufficient funds")
	ErrCallerIsNotOwner       = errors.Register(1012, "caller is not owner")
	ErrNotYetExpired          = errors.Register(1013, "not yet expired")
	ErrWithdrawalFailed       = errors.Register(1014, "withdrawal failed")
	ErrTerminated             = errors.Register(1015, "account terminated")
)

// InsufficientFundsError is returned when a spend cannot be covered. It
// carries the values the decision was made on.
type InsufficientFundsError struct {
	TotalBalance     coin.Balance
	PotentialBalance coin.Balance
	RequestedAmount  coin.Balance
	MinimumReserve   coin.Balance
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: total balance %s, potential balance %s, requested amount %s, minimum reserve %s",
		ErrInsufficientFunds.Error(), e.TotalBalance, e.PotentialBalance, e.RequestedAmount, e.MinimumReserve)
}

// Cause returns the root error, so that ErrInsufficientFunds.Is matches.
func (e *InsufficientFundsError) Cause() error {
	return ErrInsufficientFunds
}

// ABCICode returns the code of ErrInsufficientFunds.
func (e *InsufficientFundsError) ABCICode() uint32 {
	return ErrInsufficientFunds.ABCICode()
}
