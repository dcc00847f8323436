package ledger

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

const optKey = "wallets"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address vault.Address `json:"address"`
	Balance coin.Balance  `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ vault.Initializer = Initializer{}

// FromGenesis will parse the configuration and initial wallets from
// genesis and save them to the database
func (Initializer) FromGenesis(opts vault.Options, kv vault.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(kv, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	control := NewController()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "wallet %d", i)
		}
		if acct.Balance.IsPositive() && acct.Balance < conf.MinimumReserve {
			return errors.Wrapf(ErrReserveViolation, "wallet %s", acct.Address)
		}
		if err := control.Issue(kv, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "wallet %s", acct.Address)
		}
	}
	return nil
}
