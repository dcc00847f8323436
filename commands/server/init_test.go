package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
)

// counterInit requires the "counter" option to be a positive number.
type counterInit struct{}

func (counterInit) FromGenesis(opts vault.Options, db vault.KVStore) error {
	var n int
	if err := opts.ReadOptions("counter", &n); err != nil {
		return err
	}
	if n <= 0 {
		return errors.Wrap(errors.ErrInput, "counter must be positive")
	}
	return db.Set([]byte("counter"), []byte{byte(n)})
}

func TestInitAndValidate(t *testing.T) {
	home, err := ioutil.TempDir("", "vault-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	counter := 3
	gen := func(args []string) (json.RawMessage, error) {
		return json.Marshal(map[string]int{"counter": counter})
	}
	logger := log.NewNopLogger()

	require.NoError(t, InitCmd(gen, logger, home, []string{"-chain-id", "my-test-chain"}))
	genFile := filepath.Join(home, GenesisFile)
	genesis, err := app.LoadGenesis(genFile)
	require.NoError(t, err)
	assert.Equal(t, "my-test-chain", genesis.ChainID)
	require.NoError(t, ValidateGenesis(counterInit{}, []string{genFile}))

	// An existing genesis is kept.
	counter = -1
	require.NoError(t, InitCmd(gen, logger, home, nil))
	require.NoError(t, ValidateGenesis(counterInit{}, []string{genFile}))

	other := filepath.Join(home, "other")
	require.NoError(t, InitCmd(gen, logger, other, nil))
	err = ValidateGenesis(counterInit{}, []string{filepath.Join(other, GenesisFile)})
	assert.True(t, errors.ErrInput.Is(err), "got %+v", err)

	err = InitCmd(gen, logger, home, []string{"-chain-id", "x"})
	assert.True(t, errors.ErrInput.Is(err))

	err = ValidateGenesis(counterInit{}, []string{filepath.Join(home, "missing.json")})
	assert.True(t, errors.ErrInput.Is(err))
}
