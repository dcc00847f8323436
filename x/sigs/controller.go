package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
)

// SignCodeV1 prefixes every signed payload and versions the layout
// produced by BuildSignBytes.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures verifies every signature of tx and bumps the
// sequence of each signer. It returns the signer conditions in the order
// of the signatures. A single bad signature fails the whole transaction.
func VerifyTxSignatures(db vault.KVStore, tx SignedTx, chainID string) ([]vault.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]vault.Condition, len(sigs))
	for i, sig := range sigs {
		if signers[i], err = VerifySignature(db, sig, payload, chainID); err != nil {
			return nil, err
		}
	}
	return signers, nil
}

// VerifySignature verifies one signature over payload and stores the
// incremented sequence of its signer. A signer seen for the first time
// is created with sequence zero.
func VerifySignature(db vault.KVStore, sig *StdSignature, payload []byte, chainID string) (vault.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}

	bucket := NewBucket()
	obj, err := bucket.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	user := AsUser(obj)
	if !user.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Save(db, obj); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}

// NextNonce returns the sequence the signer must use for its next
// transaction. Unknown signers start at zero.
func NextNonce(db vault.ReadOnlyKVStore, signer vault.Address) (int64, error) {
	obj, err := NewBucket().Get(db, signer)
	if err != nil {
		return 0, errors.Wrap(err, "bucket get")
	}
	if u := AsUser(obj); u != nil {
		return u.Sequence, nil
	}
	return 0, nil
}

// BuildSignBytes returns the sha512 digest of
//
//   SignCodeV1 | len(chainID) as uint8 | chainID | seq as big endian int64 | payload
//
// Binding the chain id and the sequence prevents a signed transaction
// from being replayed on another chain or a second time.
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !vault.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	buf := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+8+len(payload))
	buf = append(buf, SignCodeV1...)
	buf = append(buf, byte(len(chainID)))
	buf = append(buf, chainID...)
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	buf = append(buf, nonce[:]...)
	buf = append(buf, payload...)

	digest := sha512.Sum512(buf)
	return digest[:], nil
}

// BuildSignBytesTx is BuildSignBytes over the sign bytes of tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(payload, chainID, seq)
}

// SignTx signs tx with the given sequence.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	digest, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}
