package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	vaultapp "github.com/iov-one/vault/cmd/vaultd/app"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
)

const (
	ownerSeed = "0101010101010101010101010101010101010101010101010101010101010101"
	otherSeed = "0202020202020202020202020202020202020202020202020202020202020202"
)

func TestKeys(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, keysCmd(&out, []string{ownerSeed}))

	key, err := keyFromSeed(ownerSeed)
	require.NoError(t, err)
	assert.Contains(t, out.String(), key.PublicKey().Address().String())
	assert.Contains(t, out.String(), "bech32:")

	assert.True(t, errors.ErrInput.Is(keysCmd(&out, nil)))
	assert.True(t, errors.ErrInput.Is(keysCmd(&out, []string{"zz"})))
	assert.True(t, errors.ErrInput.Is(keysCmd(&out, []string{"0102"})))
}

func TestGenInitOptions(t *testing.T) {
	key, err := keyFromSeed(ownerSeed)
	require.NoError(t, err)
	owner := key.PublicKey().Address()

	raw, err := genInitOptions([]string{owner.String(), "5000", "10"})
	require.NoError(t, err)
	var state vault.Options
	require.NoError(t, json.Unmarshal(raw, &state))
	require.NoError(t, vaultapp.Initializers().FromGenesis(state, store.MemStore()))

	_, err = genInitOptions([]string{owner.String(), "lots"})
	assert.True(t, errors.ErrInput.Is(err))
}

func TestReplay(t *testing.T) {
	owner, err := keyFromSeed(ownerSeed)
	require.NoError(t, err)
	other, err := keyFromSeed(otherSeed)
	require.NoError(t, err)

	state, err := vaultapp.GenInitOptions(owner.PublicKey().Address(), 200000000, 1000000)
	require.NoError(t, err)
	var opts vault.Options
	require.NoError(t, json.Unmarshal(state, &opts))
	genesis := app.Genesis{ChainID: "replay-chain", AppState: opts}

	rawScript := `{
		"keys": {"owner": "` + ownerSeed + `", "other": "` + otherSeed + `"},
		"blocks": [
			{"time": 100, "txs": [
				{"signer": "owner", "create": {"expiration": 1000, "deposit": 100000000}}
			]},
			{"time": 200, "txs": [
				{"signer": "owner", "account": 1, "spend": {"destination": "` + other.PublicKey().Address().String() + `", "amount": 2000000}},
				{"signer": "owner", "account": 1, "spend": {"destination": "` + other.PublicKey().Address().String() + `", "amount": 98000000}},
				{"signer": "other", "account": 1, "withdraw": {}}
			]}
		],
		"accounts": [1, 2]
	}`
	var script Script
	require.NoError(t, json.Unmarshal([]byte(rawScript), &script))

	var out bytes.Buffer
	require.NoError(t, replay(&out, log.NewNopLogger(), genesis, script, false))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6, out.String())
	assert.True(t, strings.HasPrefix(lines[0], "1/0 code=0 data=0000000000000001"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2/0 code=0 "), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "2/1 code=1011 "), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "2/2 code=1012 "), lines[3])
	assert.Contains(t, lines[4], `"saved_amount":60000`)
	assert.Contains(t, lines[4], `"balance":98000000`)
	assert.Equal(t, "account 2: not found", lines[5])
}

func TestScriptTxNeedsOneMessage(t *testing.T) {
	_, err := ScriptTx{Signer: "owner"}.Msg()
	assert.True(t, errors.ErrInput.Is(err))
}
