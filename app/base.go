package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp runs transactions through a handler on top of the block and
// query logic of StoreApp.
type BaseApp struct {
	*StoreApp
	decoder vault.TxDecoder
	handler vault.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application that decodes every transaction with
// decoder and hands it to handler. With debug set, error responses carry
// stack traces.
func NewBaseApp(store *StoreApp, decoder vault.TxDecoder, handler vault.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.decode(raw)
	if err != nil {
		return vault.CheckTxError(err, b.debug)
	}
	ctx := b.txContext("check_tx", tx)
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return vault.CheckOrError(res, err, b.debug)
}

// DeliverTx logs fatal errors at error level. Their writes were already
// discarded by the savepoint.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.decode(raw)
	if err != nil {
		return vault.DeliverTxError(err, b.debug)
	}
	ctx := b.txContext("deliver_tx", tx)
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	if errors.IsFatal(err) {
		vault.GetLogger(ctx).Error("transaction aborted", "err", err)
	}
	return vault.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) txContext(call string, tx vault.Tx) vault.Context {
	return vault.WithLogInfo(b.BlockContext(), "call", call, "path", vault.GetPath(tx))
}

// decode never panics, whatever bytes a client sends.
func (b BaseApp) decode(raw []byte) (tx vault.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(raw)
	return tx, err
}
