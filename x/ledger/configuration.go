package ledger

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x"
)

const confPkg = "ledger"

// Configuration is the ledger wide configuration, loaded from genesis.
type Configuration struct {
	Metadata *vault.Metadata `json:"metadata"`
	// Owner is allowed to update the configuration. Empty means the
	// configuration is immutable.
	Owner vault.Address `json:"owner"`
	// MinimumReserve is the least balance every non empty wallet must hold.
	MinimumReserve coin.Balance `json:"minimum_reserve"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) GetOwner() vault.Address {
	return c.Owner
}

func (c *Configuration) Marshal() ([]byte, error) {
	return orm.MarshalModel(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, c)
}

func (c *Configuration) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	// owner field is optional
	if len(c.Owner) != 0 {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner address")
		}
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// NewConfigHandler returns a handler of UpdateConfigurationMsg.
func NewConfigHandler(auth x.Authenticator) vault.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(confPkg, &conf, auth)
}
