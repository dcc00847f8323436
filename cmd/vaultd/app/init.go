package app

import (
	"encoding/json"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/ledger"
)

// GenInitOptions produces the application state of a development chain. A
// single rich wallet is funded and the ledger configuration is owned by the
// same address.
func GenInitOptions(owner vault.Address, balance, reserve coin.Balance) (json.RawMessage, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	type (
		dict  map[string]interface{}
		array []interface{}
	)
	return json.Marshal(dict{
		"conf": dict{
			"ledger": ledger.Configuration{
				Metadata:       &vault.Metadata{Schema: 1},
				Owner:          owner,
				MinimumReserve: reserve,
			},
		},
		"wallets": array{
			ledger.GenesisAccount{
				Address: owner,
				Balance: balance,
			},
		},
		"savings": array{},
	})
}
