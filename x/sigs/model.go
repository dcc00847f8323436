package sigs

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

const BucketName = "sigs"

// maxSequence is the largest integer a JavaScript client can hold
// without losing precision.
const maxSequence = 1<<53 - 1

// UserData is stored per signer address. Sequence is the value the next
// signature of that key must carry.
type UserData struct {
	Metadata *vault.Metadata   `json:"metadata"`
	Pubkey   *crypto.PublicKey `json:"pubkey"`
	Sequence int64             `json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Marshal() ([]byte, error) {
	return orm.MarshalModel(u)
}

func (u *UserData) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, u)
}

func (u *UserData) Validate() error {
	errs := errors.AppendField(nil, "Metadata", u.Metadata.Validate())
	switch {
	case u.Sequence < 0:
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	case u.Sequence > 0 && u.Pubkey == nil:
		errs = errors.Append(errs, errors.Field("Sequence", ErrInvalidSequence, "needs Pubkey"))
	}
	return errs
}

func (u *UserData) Copy() orm.Model {
	cp := *u
	cp.Metadata = u.Metadata.Copy()
	return &cp
}

// CheckAndIncrementSequence consumes expected, which must equal the
// stored sequence.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	if u.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence++
	return nil
}

// AsUser returns nil for a missing object.
func AsUser(obj orm.Object) *UserData {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*UserData)
}

// NewUser returns a fresh signer keyed by the address of pubkey. A nil
// pubkey gives the template object of the bucket.
func NewUser(pubkey *crypto.PublicKey) orm.Object {
	var key vault.Address
	if pubkey != nil {
		key = pubkey.Address()
	}
	return orm.NewSimpleObj(key, &UserData{
		Metadata: &vault.Metadata{Schema: 1},
		Pubkey:   pubkey,
	})
}

// Bucket holds one UserData per signer address.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, NewUser(nil))}
}

// GetOrCreate returns an unsaved new user when pubkey was never seen.
func (b Bucket) GetOrCreate(db vault.KVStore, pubkey *crypto.PublicKey) (orm.Object, error) {
	obj, err := b.Get(db, pubkey.Address())
	if err != nil {
		return nil, err
	}
	if obj == nil {
		obj = NewUser(pubkey)
	}
	return obj, nil
}
