package app

import (
	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/ledger"
	"github.com/iov-one/vault/x/savings"
	"github.com/iov-one/vault/x/sigs"
)

// cdc knows every message this application can carry.
var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*vault.Msg)(nil), nil)
	ledger.RegisterCodec(cdc)
	savings.RegisterCodec(cdc)
}

// Tx is the transaction format of the vault application. It carries a
// single message and the signatures of everybody that authorized it.
type Tx struct {
	Msg        vault.Msg            `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

var (
	_ vault.Tx      = (*Tx)(nil)
	_ sigs.SignedTx = (*Tx)(nil)
)

// TxDecoder is the vault.TxDecoder of the application.
func TxDecoder(raw []byte) (vault.Tx, error) {
	var tx Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, err
	}
	return &tx, nil
}

func NewTx(msg vault.Msg) *Tx {
	return &Tx{Msg: msg}
}

func (tx *Tx) GetMsg() (vault.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInput, "transaction without message")
	}
	return tx.Msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes serializes the transaction with the signature list left
// out, so adding a signature never changes what the others signed.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "encode tx: %s", err)
	}
	return raw, nil
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrInput, "empty tx")
	}
	if err := cdc.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrapf(errors.ErrInput, "decode tx: %s", err)
	}
	return nil
}
