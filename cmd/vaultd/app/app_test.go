package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/ledger"
	"github.com/iov-one/vault/x/savings"
	"github.com/iov-one/vault/x/sigs"
	"github.com/iov-one/vault/x/utils"
)

const chainID = "test-chain"

// signer keeps track of the sequence of a private key.
type signer struct {
	key *crypto.PrivateKey
	seq int64
}

func (s *signer) Address() vault.Address {
	return s.key.PublicKey().Address()
}

func (s *signer) sign(t *testing.T, msg vault.Msg) []byte {
	t.Helper()
	tx := NewTx(msg)
	sig, err := sigs.SignTx(s.key, tx, chainID, s.seq)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	s.seq++
	raw, err := tx.Marshal()
	require.NoError(t, err)
	return raw
}

func newApp(t *testing.T, owner vault.Address) app.BaseApp {
	t.Helper()
	base, err := Application("vaultd", "", log.NewNopLogger(), true)
	require.NoError(t, err)
	genesis, err := GenInitOptions(owner, 200000000, 1000000)
	require.NoError(t, err)
	base.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: genesis})
	return base
}

// block delivers all transactions in a new block at given time and commits
// it.
func block(t *testing.T, base app.BaseApp, height int64, now int64, txs ...[]byte) []abci.ResponseDeliverTx {
	t.Helper()
	base.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{Height: height, Time: time.Unix(now, 0)},
	})
	res := make([]abci.ResponseDeliverTx, len(txs))
	for i, tx := range txs {
		res[i] = base.DeliverTx(tx)
	}
	base.EndBlock(abci.RequestEndBlock{Height: height})
	base.Commit()
	return res
}

func query(t *testing.T, base app.BaseApp, path string, data []byte, dest vault.Persistent) {
	t.Helper()
	res := base.Query(abci.RequestQuery{Path: path, Data: data})
	require.Equal(t, uint32(0), res.Code, res.Log)
	require.NoError(t, app.UnmarshalOneResult(res.Value, dest))
}

func TestSavingsLifecycle(t *testing.T) {
	owner := &signer{key: crypto.GenPrivKeyEd25519()}
	x := crypto.GenPrivKeyEd25519().PublicKey().Address()
	y := crypto.GenPrivKeyEd25519().PublicKey().Address()
	base := newApp(t, owner.Address())

	res := block(t, base, 1, 100, owner.sign(t, &savings.CreateMsg{
		Metadata:   &vault.Metadata{Schema: 1},
		Expiration: 1000,
		Deposit:    100000000,
	}))
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	id := res[0].Data
	require.Len(t, id, 8)
	require.Len(t, res[0].Tags, 1)
	assert.Equal(t, []byte(utils.ActionKey), res[0].Tags[0].Key)
	assert.Equal(t, []byte("savings/create"), res[0].Tags[0].Value)

	spend := func(dst vault.Address, amount coin.Balance) []byte {
		return owner.sign(t, &savings.SpendMsg{
			Metadata:    &vault.Metadata{Schema: 1},
			AccountID:   id,
			Destination: dst,
			Amount:      amount,
		})
	}

	res = block(t, base, 2, 200,
		spend(x, 98000000),
		spend(x, 2000000),
		spend(y, 90000000),
		// The destination would end below the reserve.
		spend(crypto.GenPrivKeyEd25519().PublicKey().Address(), 10),
	)
	assert.Equal(t, savings.ErrInsufficientFunds.ABCICode(), res[0].Code, res[0].Log)
	assert.Equal(t, uint32(0), res[1].Code, res[1].Log)
	assert.Equal(t, uint32(0), res[2].Code, res[2].Log)
	assert.Equal(t, errors.ErrAborted.ABCICode(), res[3].Code, res[3].Log)

	var view savings.AccountView
	query(t, base, "/savings/view", id, &view)
	assert.Equal(t, owner.Address(), view.Owner)
	assert.Equal(t, coin.Balance(2760000), view.SavedAmount)
	assert.Equal(t, coin.Balance(8000000), view.Balance)
	assert.Equal(t, coin.Balance(4240000), view.Free)

	var wallet ledger.Wallet
	query(t, base, "/wallets", y, &wallet)
	assert.Equal(t, coin.Balance(90000000), wallet.Balance)

	withdraw := &savings.WithdrawSavingsMsg{Metadata: &vault.Metadata{Schema: 1}, AccountID: id}
	terminate := &savings.TerminateMsg{Metadata: &vault.Metadata{Schema: 1}, AccountID: id}

	// Checking a message does not move funds, but it already verifies the
	// time gate.
	chk := base.CheckTx(owner.sign(t, withdraw))
	assert.Equal(t, savings.ErrNotYetExpired.ABCICode(), chk.Code, chk.Log)
	owner.seq--

	res = block(t, base, 3, 999, owner.sign(t, terminate))
	assert.Equal(t, savings.ErrNotYetExpired.ABCICode(), res[0].Code, res[0].Log)

	res = block(t, base, 4, 1000, owner.sign(t, withdraw), owner.sign(t, terminate))
	assert.Equal(t, uint32(0), res[0].Code, res[0].Log)
	assert.Equal(t, uint32(0), res[1].Code, res[1].Log)

	query(t, base, "/wallets", owner.Address(), &wallet)
	assert.Equal(t, coin.Balance(108000000), wallet.Balance)

	q := base.Query(abci.RequestQuery{Path: "/savings", Data: id})
	require.Equal(t, uint32(0), q.Code, q.Log)
	var empty app.ResultSet
	require.NoError(t, empty.Unmarshal(q.Value))
	assert.Empty(t, empty.Results)

	res = block(t, base, 5, 1001, owner.sign(t, terminate))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res[0].Code, res[0].Log)
}

func TestTxCodec(t *testing.T) {
	msg := &ledger.SendMsg{
		Metadata:    &vault.Metadata{Schema: 1},
		Source:      crypto.GenPrivKeyEd25519().PublicKey().Address(),
		Destination: crypto.GenPrivKeyEd25519().PublicKey().Address(),
		Amount:      1234,
		Memo:        "rent",
	}
	raw, err := NewTx(msg).Marshal()
	require.NoError(t, err)

	tx, err := TxDecoder(raw)
	require.NoError(t, err)
	got, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	_, err = TxDecoder(nil)
	assert.True(t, errors.ErrInput.Is(err))
	_, err = TxDecoder([]byte("not a transaction"))
	assert.True(t, errors.ErrInput.Is(err))
}
