package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
)

// keyFromSeed decodes a hex encoded 32 bytes seed into a private key.
func keyFromSeed(seed string) (*crypto.PrivateKey, error) {
	raw, err := hex.DecodeString(seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "seed is not hex: %s", err)
	}
	if len(raw) != 32 {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be 32 bytes, got %d", len(raw))
	}
	return crypto.PrivKeyEd25519FromSeed(raw), nil
}

// keysCmd prints the address of the key created from the hex encoded seed.
func keysCmd(w io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.Wrap(errors.ErrInput, "usage: keys <hex seed>")
	}
	key, err := keyFromSeed(args[0])
	if err != nil {
		return err
	}
	addr := key.PublicKey().Address()
	b32, err := addr.Bech32()
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	_, err = fmt.Fprintf(w, "address: %s\nbech32:  %s\n", addr, b32)
	return err
}
