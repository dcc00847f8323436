package ledger

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x"
)

// RegisterRoutes binds the ledger messages to their handlers.
func RegisterRoutes(r vault.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
	r.Handle(pathUpdateConfigurationMsg, NewConfigHandler(auth))
}

// RegisterQuery exposes wallets under /wallets, keyed by address.
func RegisterQuery(qr vault.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
}

// SendHandler moves funds between two wallets. The source must sign, and
// both wallets must respect the reserve once the transfer is done.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ vault.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{auth: auth, control: control}
}

// Check does not look at balances. A transfer that is valid in the
// mempool may still fail in a block.
func (h SendHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, err := h.load(ctx, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h SendHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, err := h.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &vault.DeliverResult{}, nil
}

func (h SendHandler) load(ctx vault.Context, tx vault.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}
