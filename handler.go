package vault

import (
	"encoding/json"

	"github.com/iov-one/vault/errors"
)

// Handler executes one kind of message, for example a savings spend or
// a ledger transfer. Check runs in the mempool and must not have lasting
// effects beyond the check state. Deliver runs in a block.
type Handler interface {
	Checker
	Deliverer
}

type Checker interface {
	Check(ctx Context, db KVStore, tx Tx) (*CheckResult, error)
}

type Deliverer interface {
	Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around a Handler and may stop the call, alter the
// context or the store, or post process the result. Signature checks
// and savepoints are decorators.
type Decorator interface {
	Check(ctx Context, db KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, db KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the app_state section of the genesis file, one JSON
// document per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section under key into obj. A missing section
// leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse %q options: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
