package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
)

// GenesisFile is the name of the genesis file within the home directory.
const GenesisFile = "genesis.json"

// GenOptions can parse command-line and flag to
// generate default app_options for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd writes a genesis file with the application state produced by gen
// into the home directory. An existing file is never overwritten.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	chainID := initFlags.String("chain-id", "vault-dev", "chain id written to the genesis")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if !vault.IsValidChainID(*chainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", *chainID)
	}

	genFile := filepath.Join(home, GenesisFile)
	if _, err := os.Stat(genFile); err == nil {
		logger.Info("Found genesis file", "path", genFile)
		return nil
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return err
	}
	var state vault.Options
	if err := json.Unmarshal(options, &state); err != nil {
		return errors.Wrapf(errors.ErrInput, "application state: %s", err)
	}
	out, err := json.MarshalIndent(app.Genesis{ChainID: *chainID, AppState: state}, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := os.MkdirAll(home, 0755); err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	if err := ioutil.WriteFile(genFile, out, 0644); err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	logger.Info("Generated genesis file", "path", genFile)
	return nil
}
