package server

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
)

// ValidateGenesis dry runs each genesis file against an in-memory store
// and reports the first one that the initializer rejects.
func ValidateGenesis(ini vault.Initializer, paths []string) error {
	for _, p := range paths {
		g, err := app.LoadGenesis(p)
		if err != nil {
			return errors.Wrapf(err, "load %s", p)
		}
		if !vault.IsValidChainID(g.ChainID) {
			return errors.Wrapf(errors.ErrInput, "%s: chain id %q", p, g.ChainID)
		}
		if err := ini.FromGenesis(g.AppState, store.MemStore()); err != nil {
			return errors.Wrapf(err, "%s: app state", p)
		}
	}
	return nil
}
