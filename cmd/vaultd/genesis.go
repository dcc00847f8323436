package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/cmd/vaultd/app"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
)

const (
	defaultBalance coin.Balance = 1000000000000
	defaultReserve coin.Balance = 1000000
)

// genInitOptions accepts the optional owner address, balance and minimum
// reserve. Without an owner a new key is generated and its seed printed.
func genInitOptions(args []string) (json.RawMessage, error) {
	var owner vault.Address
	if len(args) > 0 {
		addr, err := vault.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "owner")
		}
		owner = addr
	} else {
		// ed25519 private keys are prefixed with their seed
		key := crypto.GenPrivKeyEd25519()
		owner = key.PublicKey().Address()
		fmt.Printf("owner seed: %s\n", hex.EncodeToString(key.Ed25519[:32]))
	}

	balance, reserve := defaultBalance, defaultReserve
	if len(args) > 1 {
		n, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "balance: %s", err)
		}
		balance = coin.Balance(n)
	}
	if len(args) > 2 {
		n, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "reserve: %s", err)
		}
		reserve = coin.Balance(n)
	}
	return app.GenInitOptions(owner, balance, reserve)
}

// generateApp is used by the start command.
func generateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "abci.db")
	}
	return app.Application("vaultd", dbPath, logger, debug)
}
