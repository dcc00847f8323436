package orm

import (
	"encoding/binary"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// SeqID names the sequence a ModelBucket draws its keys from.
const SeqID = "id"

// Sequence is a persistent counter stored under _s.<bucket>:<name>. The
// first value it hands out is 1, so a zero id never refers to a model.
type Sequence struct {
	id []byte
}

func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal advances the counter and returns the new value encoded with
// EncodeSequence.
func (s *Sequence) NextVal(db vault.KVStore) ([]byte, error) {
	_, raw, err := s.next(db)
	return raw, err
}

func (s *Sequence) NextInt(db vault.KVStore) (int64, error) {
	n, _, err := s.next(db)
	return n, err
}

// Latest returns the last value handed out, zero and nil before the
// first call to NextVal or NextInt.
func (s *Sequence) Latest(db vault.KVStore) (int64, []byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, nil, errors.Wrap(err, "cannot load sequence")
	}
	return DecodeSequence(raw), raw, nil
}

func (s *Sequence) next(db vault.KVStore) (int64, []byte, error) {
	n, _, err := s.Latest(db)
	if err != nil {
		return 0, nil, err
	}
	n++
	raw := EncodeSequence(n)
	if err := db.Set(s.id, raw); err != nil {
		return 0, nil, errors.Wrap(err, "cannot store sequence")
	}
	return n, raw, nil
}

// EncodeSequence writes n as 8 bytes big endian, so that byte order and
// numeric order agree.
func EncodeSequence(n int64) []byte {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(n))
	return raw[:]
}

// DecodeSequence reverses EncodeSequence. nil decodes to zero.
func DecodeSequence(raw []byte) int64 {
	if raw == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

// ValidateSequence checks that id looks like an EncodeSequence result.
func ValidateSequence(id []byte) error {
	switch len(id) {
	case 0:
		return errors.Wrap(errors.ErrEmpty, "sequence missing")
	case 8:
		return nil
	default:
		return errors.Wrap(errors.ErrInput, "sequence is invalid length (expect 8 bytes)")
	}
}
