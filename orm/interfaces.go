package orm

import (
	"github.com/iov-one/vault"
)

// Model is a value a bucket can persist. Copy must return a deep copy,
// because handlers mutate loaded models before saving them.
type Model interface {
	vault.Persistent
	Validate() error
	Copy() Model
}

// Object pairs a Model with the key it lives under, without the bucket
// prefix.
type Object interface {
	Keyed
	Cloneable
	// Validate is called before every save.
	Validate() error
	Value() Model
}

type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable returns an empty Object of the same type, ready to be
// decoded into.
type Cloneable interface {
	Clone() Object
}
