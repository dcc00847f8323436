package sigs

import (
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
)

// SignedTx is a transaction the Decorator can authenticate.
type SignedTx interface {
	// GetSignBytes returns the bytes every signature covers, usually the
	// serialized message.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

// StdSignature is one signature over BuildSignBytes together with the
// key and the sequence used to produce it.
type StdSignature struct {
	Pubkey    *crypto.PublicKey `json:"pubkey"`
	Signature *crypto.Signature `json:"signature"`
	Sequence  int64             `json:"sequence"`
}

func (s *StdSignature) Validate() error {
	switch {
	case s.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case s.Pubkey == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	case s.Pubkey.Validate() != nil:
		return errors.Wrap(errors.ErrUnauthorized, "invalid public key")
	case s.Signature == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}
