package vaulttest

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
)

// NewKey returns a new, random private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a new, random key.
func NewCondition() vault.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceID returns the 8 bytes representation of a sequence value. Entities
// created from a sequence use this as their key.
func SequenceID(n uint64) []byte {
	return []byte{
		byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n),
	}
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) vault.Address {
	t.Helper()

	addr, err := vault.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
