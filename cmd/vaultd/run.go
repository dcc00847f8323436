package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	vaultapp "github.com/iov-one/vault/cmd/vaultd/app"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x/ledger"
	"github.com/iov-one/vault/x/savings"
	"github.com/iov-one/vault/x/sigs"
)

// Script is a list of blocks replayed on top of a genesis file. Keys are
// referenced by name and hold a hex encoded seed.
type Script struct {
	Keys   map[string]string `json:"keys"`
	Blocks []ScriptBlock     `json:"blocks"`
	// Accounts lists account sequence numbers to print once all blocks
	// are processed.
	Accounts []int64 `json:"accounts"`
}

// ScriptBlock is processed at the given unix time.
type ScriptBlock struct {
	Time int64      `json:"time"`
	Txs  []ScriptTx `json:"txs"`
}

// ScriptTx holds exactly one message, signed by the named key. Account ids
// are given as sequence numbers.
type ScriptTx struct {
	Signer    string                      `json:"signer"`
	Account   int64                       `json:"account"`
	Send      *ledger.SendMsg             `json:"send"`
	Create    *savings.CreateMsg          `json:"create"`
	Spend     *savings.SpendMsg           `json:"spend"`
	Withdraw  *savings.WithdrawSavingsMsg `json:"withdraw"`
	Terminate *savings.TerminateMsg       `json:"terminate"`
}

// Msg returns the message of this transaction, completed with the default
// metadata and the account id.
func (s ScriptTx) Msg() (vault.Msg, error) {
	var (
		msgs []vault.Msg
		id   = orm.EncodeSequence(s.Account)
		meta = &vault.Metadata{Schema: 1}
	)
	if m := s.Send; m != nil {
		if m.Metadata == nil {
			m.Metadata = meta
		}
		msgs = append(msgs, m)
	}
	if m := s.Create; m != nil {
		if m.Metadata == nil {
			m.Metadata = meta
		}
		msgs = append(msgs, m)
	}
	if m := s.Spend; m != nil {
		if m.Metadata == nil {
			m.Metadata = meta
		}
		m.AccountID = id
		msgs = append(msgs, m)
	}
	if m := s.Withdraw; m != nil {
		if m.Metadata == nil {
			m.Metadata = meta
		}
		m.AccountID = id
		msgs = append(msgs, m)
	}
	if m := s.Terminate; m != nil {
		if m.Metadata == nil {
			m.Metadata = meta
		}
		m.AccountID = id
		msgs = append(msgs, m)
	}
	if len(msgs) != 1 {
		return nil, errors.Wrapf(errors.ErrInput, "transaction must hold one message, got %d", len(msgs))
	}
	return msgs[0], nil
}

// scriptSigner signs with a key and tracks its sequence.
type scriptSigner struct {
	key *crypto.PrivateKey
	seq int64
}

func runCmd(w io.Writer, logger log.Logger, args []string) error {
	runFlags := flag.NewFlagSet("run", flag.ContinueOnError)
	genesisPath := runFlags.String("genesis", "genesis.json", "genesis file to start from")
	scriptPath := runFlags.String("script", "script.json", "blocks to replay")
	debug := runFlags.Bool("debug", false, "call stack returned on error")
	if err := runFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	genesis, err := app.LoadGenesis(*genesisPath)
	if err != nil {
		return errors.Wrap(err, "genesis")
	}
	raw, err := ioutil.ReadFile(*scriptPath)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	var script Script
	if err := json.Unmarshal(raw, &script); err != nil {
		return errors.Wrapf(errors.ErrInput, "script: %s", err)
	}
	return replay(w, logger, genesis, script, *debug)
}

// replay executes the script on a fresh in memory application and writes
// the result of every transaction followed by the requested accounts.
func replay(w io.Writer, logger log.Logger, genesis app.Genesis, script Script, debug bool) error {
	signers := make(map[string]*scriptSigner, len(script.Keys))
	for name, seed := range script.Keys {
		key, err := keyFromSeed(seed)
		if err != nil {
			return errors.Wrapf(err, "key %q", name)
		}
		signers[name] = &scriptSigner{key: key}
	}

	base, err := vaultapp.Application("vaultd", "", logger, debug)
	if err != nil {
		return err
	}
	state, err := json.Marshal(genesis.AppState)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := initChain(base, genesis.ChainID, state); err != nil {
		return err
	}

	for i, block := range script.Blocks {
		height := int64(i + 1)
		base.BeginBlock(abci.RequestBeginBlock{
			Header: abci.Header{Height: height, Time: time.Unix(block.Time, 0).UTC()},
		})
		for j, stx := range block.Txs {
			bz, err := signTx(stx, signers, genesis.ChainID)
			if err != nil {
				return errors.Wrapf(err, "block %d transaction %d", height, j)
			}
			res := base.DeliverTx(bz)
			fmt.Fprintf(w, "%d/%d code=%d data=%X log=%q\n", height, j, res.Code, res.Data, res.Log)
		}
		base.EndBlock(abci.RequestEndBlock{Height: height})
		base.Commit()
	}

	for _, seq := range script.Accounts {
		res := base.Query(abci.RequestQuery{Path: "/savings/view", Data: orm.EncodeSequence(seq)})
		if res.Code != 0 {
			return errors.Wrapf(errors.ErrState, "query account %d: %s", seq, res.Log)
		}
		var view savings.AccountView
		if err := app.UnmarshalOneResult(res.Value, &view); err != nil {
			return errors.Wrapf(err, "account %d", seq)
		}
		if view.Owner == nil {
			fmt.Fprintf(w, "account %d: not found\n", seq)
			continue
		}
		out, err := json.Marshal(view)
		if err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		fmt.Fprintf(w, "account %d: %s\n", seq, out)
	}
	return nil
}

// initChain turns the panic of a broken genesis into an error.
func initChain(base app.BaseApp, chainID string, state []byte) (err error) {
	defer errors.Recover(&err)
	base.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: state})
	return nil
}

func signTx(stx ScriptTx, signers map[string]*scriptSigner, chainID string) ([]byte, error) {
	msg, err := stx.Msg()
	if err != nil {
		return nil, err
	}
	tx := vaultapp.NewTx(msg)
	if stx.Signer != "" {
		s, ok := signers[stx.Signer]
		if !ok {
			return nil, errors.Wrapf(errors.ErrNotFound, "key %q", stx.Signer)
		}
		sig, err := sigs.SignTx(s.key, tx, chainID, s.seq)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		s.seq++
		tx.Signatures = []*sigs.StdSignature{sig}
	}
	return tx.Marshal()
}
