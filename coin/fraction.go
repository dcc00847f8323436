package coin

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iov-one/vault/errors"
)

// Fraction is a non negative rational number, used for fee rates.
// In JSON it is written as "n/d", or as a plain "n" when d is one.
type Fraction struct {
	Numerator   uint32 `json:"numerator"`
	Denominator uint32 `json:"denominator"`
}

func NewFraction(numerator, denominator uint32) Fraction {
	return Fraction{Numerator: numerator, Denominator: denominator}
}

func (f Fraction) Validate() error {
	if f.Denominator == 0 {
		return errors.Wrap(errors.ErrState, "zero denominator")
	}
	return nil
}

// CeilMul computes b*f rounding up, so a positive rate of a positive
// amount is at least one unit. ErrOverflow is returned when b*Numerator
// does not fit.
func (f Fraction) CeilMul(b Balance) (Balance, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	if f.Numerator == 0 || b == 0 {
		return 0, nil
	}
	product, err := b.Mul(uint64(f.Numerator))
	if err != nil {
		return 0, err
	}
	den := Balance(f.Denominator)
	q, r := product/den, product%den
	if r > 0 {
		q++
	}
	return q, nil
}

// Normalize divides both terms by their greatest common divisor.
func (f Fraction) Normalize() Fraction {
	a, b := f.Numerator, f.Denominator
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return f
	}
	return Fraction{Numerator: f.Numerator / a, Denominator: f.Denominator / a}
}

func (f Fraction) String() string {
	switch {
	case f.Numerator == 0:
		return "0"
	case f.Denominator == 1:
		return strconv.FormatUint(uint64(f.Numerator), 10)
	default:
		return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
	}
}

// UnmarshalJSON accepts both the "n/d" string and the object form.
func (f *Fraction) UnmarshalJSON(raw []byte) error {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		parsed, err := parseFraction(s)
		if err != nil {
			return err
		}
		*f = parsed
		return nil
	}

	type plain Fraction
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*f = Fraction(p)
	return nil
}

// parseFraction reads "n" or "n/d". The denominator is not checked here,
// "1/0" parses and fails Validate.
func parseFraction(s string) (Fraction, error) {
	num, den := s, "1"
	if i := strings.IndexByte(s, '/'); i >= 0 {
		num, den = s[:i], s[i+1:]
	}
	n, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return Fraction{}, errors.Wrapf(errors.ErrInput, "fraction numerator %q", num)
	}
	d, err := strconv.ParseUint(den, 10, 32)
	if err != nil {
		return Fraction{}, errors.Wrapf(errors.ErrInput, "fraction denominator %q", den)
	}
	return Fraction{Numerator: uint32(n), Denominator: uint32(d)}, nil
}
