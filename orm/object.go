package orm

import (
	"reflect"

	"github.com/iov-one/vault/errors"
)

// SimpleObj is the Object used by every bucket in this module: a key
// and the model stored under it.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte {
	return o.key
}

func (o SimpleObj) Value() Model {
	return o.value
}

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

// Validate requires both a key and a value before the value validates
// itself.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Field("Key", errors.ErrEmpty, "missing key")
	case o.value == nil:
		return errors.Field("Value", errors.ErrEmpty, "missing value")
	}
	return o.value.Validate()
}

// Clone returns an object with a copy of the key and a zero value of
// the same model type. Buckets use it as the target for decoding.
func (o *SimpleObj) Clone() Object {
	zero := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	c := &SimpleObj{value: zero}
	if len(o.key) > 0 {
		c.key = append([]byte(nil), o.key...)
	}
	return c
}
