package sigs

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/vaulttest"
)

// StdTx wraps a mock message with a list of signatures.
type StdTx struct {
	*vaulttest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ vault.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &vaulttest.Msg{RoutePath: "test/mock", Serialized: payload}
	return &StdTx{Tx: &vaulttest.Tx{Msg: msg}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

// GetSignBytes signs over the raw message payload.
func (tx *StdTx) GetSignBytes() ([]byte, error) {
	return tx.Tx.Msg.Marshal()
}

// SigCheckHandler records the conditions the decorator put into the
// context.
type SigCheckHandler struct {
	Signers []vault.Condition
}

var _ vault.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx vault.Context, _ vault.KVStore, _ vault.Tx) (*vault.CheckResult, error) {
	s.record(ctx)
	return &vault.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx vault.Context, _ vault.KVStore, _ vault.Tx) (*vault.DeliverResult, error) {
	s.record(ctx)
	return &vault.DeliverResult{}, nil
}

func (s *SigCheckHandler) record(ctx vault.Context) {
	s.Signers = Authenticate{}.GetConditions(ctx)
}
