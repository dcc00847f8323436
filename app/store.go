package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp owns the application state and answers every abci call that
// does not execute a transaction. BaseApp embeds it and adds CheckTx and
// DeliverTx.
//
// Info, InitChain, BeginBlock, EndBlock and Commit have no error channel
// back to tendermint. A failure there means the node state is broken and
// the call panics.
type StoreApp struct {
	// mu serialises all abci calls.
	mu sync.Mutex

	logger log.Logger
	// name is reported by Info.
	name  string
	debug bool

	store       *CommitStore
	initializer vault.Initializer
	queryRouter vault.QueryRouter

	chainID string
	// baseContext lives as long as the app, blockContext is replaced on
	// every BeginBlock.
	baseContext  vault.Context
	blockContext vault.Context
}

// NewStoreApp loads the committed state from kv. It panics when the
// stored chain id or commit info cannot be read.
func NewStoreApp(name string, kv vault.CommitKVStore, queryRouter vault.QueryRouter, baseContext vault.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(kv),
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	if s.chainID = mustLoadChainID(s.DeliverStore()); s.chainID != "" {
		s.baseContext = vault.WithChainID(s.baseContext, s.chainID)
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = vault.WithHeight(s.baseContext, info.Version)
	return s
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets the genesis loader called from InitChain.
func (s *StoreApp) WithInit(init vault.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug exposes internal error messages in abci responses.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// WithLogger replaces the logger of the app and of both contexts.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = vault.WithLogger(s.baseContext, logger)
	if s.blockContext != nil {
		s.blockContext = vault.WithLogger(s.blockContext, logger)
	}
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext carries the height and time of the block being processed.
func (s *StoreApp) BlockContext() vault.Context {
	return s.blockContext
}

func (s *StoreApp) DeliverStore() vault.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() vault.CacheableKVStore {
	return s.store.CheckStore()
}

// loadGenesis runs once per chain, from the first InitChain. Restarts
// find the chain id in the store and refuse to load again.
func (s *StoreApp) loadGenesis(raw []byte, chainID string) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %q", s.chainID)
	}
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrEmpty, "genesis app_state")
	}
	var opts vault.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = vault.WithChainID(s.baseContext, chainID)

	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, s.DeliverStore())
}

func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// Query reads from the last committed state. The path selects a
// registered query handler and may end with "?prefix" to switch to a
// prefix scan, for example "/accounts?prefix". Key and Value of the
// response each hold a serialised ResultSet of equal length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, mod := splitPath(req.Path)
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		return s.queryError(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path))
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return s.queryError(err)
	}
	db := s.store.committed.CacheWrap()
	defer db.Discard()

	models, err := qh.Query(db, mod, req.Data)
	if err != nil {
		return s.queryError(err)
	}
	keys, err := ResultsFromKeys(models).Marshal()
	if err != nil {
		return s.queryError(err)
	}
	values, err := ResultsFromValues(models).Marshal()
	if err != nil {
		return s.queryError(err)
	}
	return abci.ResponseQuery{Height: info.Version, Key: keys, Value: values}
}

// splitPath separates the query modifier following "?".
func splitPath(full string) (path, mod string) {
	if i := strings.IndexByte(full, '?'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}

func (s *StoreApp) queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, s.debug)
	return abci.ResponseQuery{Code: code, Log: log}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadGenesis(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	s.logger.Info("Chain initialized", "chain_id", req.ChainId)
	return abci.ResponseInitChain{}
}

// BeginBlock resets the block context to the new height and time.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := vault.WithHeight(s.baseContext, req.Header.GetHeight())
	s.blockContext = vault.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
