package crypto

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	amino "github.com/tendermint/go-amino"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

var cdc = amino.NewCodec()

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() vault.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

var _ PubKey = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil {
		return false
	}
	if len(p.Ed25519) != ed25519.PublicKeySize || len(sig.Ed25519) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a vault condition
func (p *PublicKey) Condition() vault.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return vault.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address is the address of the condition fulfilled by signatures of this
// key.
func (p *PublicKey) Address() vault.Address {
	return p.Condition().Address()
}

// Validate returns an error if the key has an invalid length.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 public key")
	}
	return nil
}

func (p *PublicKey) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid ed25519 private key")
	}
	bz := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil
	}
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

func (p *PrivateKey) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *PrivateKey) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

func (s *Signature) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *Signature) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Ed25519: priv}
}
