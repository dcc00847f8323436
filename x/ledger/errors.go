package ledger

import (
	"github.com/iov-one/vault/errors"
)

// x/ledger reserves 100 ~ 109.
var (
	ErrInsufficientBalance = errors.Register(100, "insufficient balance")
	ErrReserveViolation    = errors.Register(101, "minimum reserve violation")
)
