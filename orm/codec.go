package orm

import (
	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/vault/errors"
)

// Codec is shared by all models of the application. Each entity is stored
// using amino binary bare encoding.
var Codec = amino.NewCodec()

// MarshalModel serializes given value using the shared codec.
func MarshalModel(m interface{}) ([]byte, error) {
	bz, err := Codec.MarshalBinaryBare(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", m, err)
	}
	return bz, nil
}

// UnmarshalModel deserializes raw data into given destination, which must
// be a pointer.
func UnmarshalModel(raw []byte, dest interface{}) error {
	// zero value of a model is serialized to no bytes at all
	if len(raw) == 0 {
		return nil
	}
	if err := Codec.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}
