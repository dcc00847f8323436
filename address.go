package vault

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/vault/errors"
)

// AddressHRP is the human readable part of a bech32 encoded address.
const AddressHRP = "vault"

// AddressLength must not change once a store holds addresses.
var AddressLength = 20

// Address is the truncated sha256 digest of a Condition. Wallets and
// accounts are keyed by it.
type Address []byte

// NewAddress hashes data and truncates the digest to AddressLength.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return Address(sum[:AddressLength])
}

func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address: %v", a)
	}
	return nil
}

func (a Address) Equals(o Address) bool {
	return bytes.Equal(a, o)
}

func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 encodes the address with AddressHRP.
func (a Address) Bech32() (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "convert bits")
	}
	enc, err := bech32.Encode(AddressHRP, data)
	if err != nil {
		return "", errors.Wrap(err, "bech32 encode")
	}
	return enc, nil
}

// MarshalJSON writes upper case hex instead of the default base64.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes hex by default. A prefix selects another form:
//
//   bech32:vault1...
//   cond:sigs/ed25519/<hex pubkey>
//
// An empty value decodes to a nil address.
func ParseAddress(enc string) (Address, error) {
	format, value := "hex", enc
	if i := strings.Index(enc, ":"); i >= 0 {
		format, value = enc[:i], enc[i+1:]
	}
	if value == "" {
		return nil, nil
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(value)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot decode hex: %s", err)
		}
		addr = raw
	case "cond":
		c, err := parseCondition(value)
		if err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c.Address(), nil
	case "bech32":
		raw, err := decodeBech32(value)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "deserialize bech32: %s", err)
		}
		addr = raw
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

func decodeBech32(enc string) ([]byte, error) {
	hrp, data, err := bech32.Decode(enc)
	if err != nil {
		return nil, err
	}
	if hrp != AddressHRP {
		return nil, errors.Wrapf(errors.ErrInput, "unexpected prefix %q", hrp)
	}
	return bech32.ConvertBits(data, 5, 8, false)
}
