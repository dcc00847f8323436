package vaulttest

import "github.com/iov-one/vault"

// Tx carries Msg. When Err is set GetMsg fails with it, which simulates
// a transaction whose message cannot be decoded.
type Tx struct {
	Msg vault.Msg
	Err error
}

var _ vault.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (vault.Msg, error) {
	return tx.Msg, tx.Err
}

// Marshal and Unmarshal are never needed by handler tests.
func (tx *Tx) Marshal() ([]byte, error) {
	panic("vaulttest: Tx cannot be serialized")
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("vaulttest: Tx cannot be serialized")
}

// Msg routes to RoutePath. Serialized is what Marshal returns and what
// Unmarshal stores. Err fails every method but Path.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ vault.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
