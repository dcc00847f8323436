/*
Package app wires the vault extensions into an abci application.

It defines the transaction format, the handler stack guarding every
message and the query router exposing accounts and wallets.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store/iavl"
	"github.com/iov-one/vault/x"
	"github.com/iov-one/vault/x/ledger"
	"github.com/iov-one/vault/x/savings"
	"github.com/iov-one/vault/x/sigs"
	"github.com/iov-one/vault/x/utils"
)

// Authenticator accepts ed25519 signatures only.
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

func LedgerControl() ledger.Controller {
	return ledger.NewController()
}

// Chain is the decorator stack in front of every handler. A message runs
// inside a savepoint, an aborted transfer leaves no trace in the state.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// Below the signature check, so a failed message still
		// consumes its sequence number.
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router dispatches wallet and savings messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	ledger.RegisterRoutes(r, authFn, LedgerControl())
	savings.RegisterRoutes(r, authFn, LedgerControl())
	return r
}

// QueryRouter serves "/", "/auth", "/wallets" and "/savings" with their
// index paths.
func QueryRouter() vault.QueryRouter {
	r := vault.NewQueryRouter()
	r.RegisterAll(
		app.RegisterQuery,
		sigs.RegisterQuery,
		ledger.RegisterQuery,
		savings.RegisterQuery,
	)
	return r
}

// Stack is the full handler passed to BaseApp.
func Stack() vault.Handler {
	return Chain().WithHandler(Router(Authenticator()))
}

// Initializers returns the genesis loaders of all extensions. The ledger
// must be initialized first, as accounts are checked against its reserve.
func Initializers() vault.Initializer {
	return app.ChainInitializers(
		ledger.Initializer{},
		savings.Initializer{},
	)
}

// Application constructs the vault abci application backed by the
// database at dbPath. An empty path keeps everything in memory.
func Application(name string, dbPath string, logger log.Logger, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background()).
		WithInit(Initializers()).
		WithLogger(logger)
	return app.NewBaseApp(store, TxDecoder, Stack(), debug), nil
}

// CommitKVStore opens the iavl database at dbPath. A trailing file
// extension is ignored, both "data/vault" and "data/vault.db" name the
// same database. An empty path opens an in-memory store.
func CommitKVStore(dbPath string) (vault.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q", dbPath)
	}
	abs = strings.TrimSuffix(abs, filepath.Ext(abs))
	return iavl.NewCommitStore(filepath.Dir(abs), filepath.Base(abs)), nil
}
