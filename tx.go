package vault

import (
	"reflect"

	"github.com/iov-one/vault/errors"
)

// Marshaller is split from Persistent so that values, not only pointers,
// can be serialized.
type Marshaller interface {
	Marshal() ([]byte, error)
}

type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a request for a single state transition, such as a spend from
// a savings account. It carries no authentication, that lives in the
// enclosing Tx.
type Msg interface {
	Persistent

	// Path selects the handler. It is written as <extension>/<action>,
	// for example savings/spend.
	Path() string

	// Validate checks everything that can be checked without reading
	// the store.
	Validate() error
}

// Tx is a message together with the signatures authorizing it.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

type TxDecoder func(raw []byte) (Tx, error)

// GetPath returns "(missing)" when tx has no readable message. It is
// used for logging only.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into dest, which must be a pointer
// to the concrete message type, and validates it.
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "transaction carries no message")
	}

	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}
	value := reflect.ValueOf(msg)
	// Messages travel as pointers while handlers usually declare a value
	// of the message type.
	if k := target.Elem().Kind(); value.Kind() == reflect.Ptr && k != reflect.Ptr && k != reflect.Interface {
		value = value.Elem()
	}
	if !value.Type().AssignableTo(target.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "message %T cannot be loaded into %T", msg, dest)
	}
	target.Elem().Set(value)

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
