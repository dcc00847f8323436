package sigs

import (
	"github.com/iov-one/vault/errors"
)

// Codes 120 to 129 belong to this package.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
