package coin

import (
	"encoding/json"
	"math"
	"math/bits"
	"strconv"

	"github.com/iov-one/vault/errors"
)

// MaxBalance is the largest representable balance.
const MaxBalance Balance = math.MaxUint64

// Balance is an unsigned amount of ledger value.
type Balance uint64

// Add returns the sum of both balances. It fails if the result cannot be
// represented.
func (b Balance) Add(o Balance) (Balance, error) {
	sum, carry := bits.Add64(uint64(b), uint64(o), 0)
	if carry != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", b, o)
	}
	return Balance(sum), nil
}

// Sub returns the difference of both balances. It fails if the result would
// be negative.
func (b Balance) Sub(o Balance) (Balance, error) {
	if o > b {
		return 0, errors.Wrapf(errors.ErrInsufficientAmount, "%d - %d", b, o)
	}
	return b - o, nil
}

// SubSat returns the difference of both balances, floored at zero.
func (b Balance) SubSat(o Balance) Balance {
	if o > b {
		return 0
	}
	return b - o
}

// Mul returns the product of a balance and a factor. It fails if the result
// cannot be represented.
func (b Balance) Mul(factor uint64) (Balance, error) {
	hi, lo := bits.Mul64(uint64(b), factor)
	if hi != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %d", b, factor)
	}
	return Balance(lo), nil
}

// IsZero returns true if this balance holds no value.
func (b Balance) IsZero() bool {
	return b == 0
}

// IsPositive returns true if this balance holds any value.
func (b Balance) IsPositive() bool {
	return b > 0
}

// String returns the decimal representation of the balance.
func (b Balance) String() string {
	return strconv.FormatUint(uint64(b), 10)
}

// MarshalJSON encodes a balance as a JSON number.
func (b Balance) MarshalJSON() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalJSON supports both a JSON number and a decimal string
// representation. A string is convenient in configuration files because
// JSON numbers above 2^53 cannot be represented precisely by many clients.
func (b *Balance) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		return b.parse(human)
	}
	return b.parse(string(raw))
}

func (b *Balance) parse(s string) error {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return errors.Wrapf(errors.ErrAmount, "cannot parse %q", s)
	}
	*b = Balance(n)
	return nil
}

// ParseBalance parses a decimal representation of a balance.
func ParseBalance(s string) (Balance, error) {
	var b Balance
	err := b.parse(s)
	return b, err
}
