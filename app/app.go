/*
Package app assembles the pieces into a runnable application: a router
dispatching messages to handlers, a decorator chain around them, and the
two-phase store handling (check state vs. deliver state) on top of a
committing key value store.
*/
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
)

// TandemApp ties together a committed store, a handler stack and a query
// router. Check and Deliver each run against their own cache wrap of the
// last committed state. Commit flushes the deliver state and persists it.
type TandemApp struct {
	store   tandem.CommitKVStore
	handler tandem.Handler
	decoder tandem.TxDecoder
	queries tandem.QueryRouter
	logger  *zap.Logger

	chainID string
	height  int64

	checkState   tandem.KVCacheWrap
	deliverState tandem.KVCacheWrap
}

// New constructs an application around a loaded store.
func New(store tandem.CommitKVStore, handler tandem.Handler, decoder tandem.TxDecoder, queries tandem.QueryRouter, logger *zap.Logger) *TandemApp {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TandemApp{
		store:        store,
		handler:      handler,
		decoder:      decoder,
		queries:      queries,
		logger:       logger,
		checkState:   store.CacheWrap(),
		deliverState: store.CacheWrap(),
	}
}

// ChainID returns the chain this application runs on. Empty before
// InitChain.
func (a *TandemApp) ChainID() string {
	return a.chainID
}

// Height returns the current block height.
func (a *TandemApp) Height() int64 {
	return a.height
}

// InitChain initializes the application state from genesis options and
// commits the result as the first version. It must be called once, on a
// fresh store.
func (a *TandemApp) InitChain(chainID string, opts tandem.Options, inits ...tandem.Initializer) error {
	if !tandem.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", chainID)
	}
	if a.store.LatestVersion().Version != 0 {
		return errors.Wrap(errors.ErrState, "chain already initialized")
	}
	a.chainID = chainID

	cache := a.store.CacheWrap()
	for _, ini := range inits {
		if err := ini.FromGenesis(opts, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis state")
	}
	if _, err := a.store.Commit(); err != nil {
		return errors.Wrap(err, "commit genesis state")
	}
	a.resetStates()
	return nil
}

// WithChainID sets the chain id without running genesis, for applications
// resuming from an existing store.
func (a *TandemApp) WithChainID(chainID string) error {
	if !tandem.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", chainID)
	}
	a.chainID = chainID
	return nil
}

// BeginBlock starts a new block at the given height. Heights must strictly
// increase.
func (a *TandemApp) BeginBlock(height int64) error {
	if height <= a.height {
		return errors.Wrapf(errors.ErrState, "height %d not after %d", height, a.height)
	}
	a.height = height
	return nil
}

// CheckTx runs the handler stack against the check state. The state is
// kept between calls and thrown away on Commit.
func (a *TandemApp) CheckTx(raw []byte) (*tandem.CheckResult, error) {
	if a.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	tx, err := a.decoder(raw)
	if err != nil {
		return nil, errors.Wrap(err, "decode tx")
	}
	return a.handler.Check(a.blockCtx(), a.checkState, tx)
}

// DeliverTx runs the handler stack against the deliver state. Writes
// become permanent with the next Commit.
func (a *TandemApp) DeliverTx(raw []byte) (*tandem.DeliverResult, error) {
	if a.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	tx, err := a.decoder(raw)
	if err != nil {
		return nil, errors.Wrap(err, "decode tx")
	}
	return a.handler.Deliver(a.blockCtx(), a.deliverState, tx)
}

// Commit flushes the deliver state into the store, persists a new version
// and resets both working states.
func (a *TandemApp) Commit() (tandem.CommitID, error) {
	if err := a.deliverState.Write(); err != nil {
		return tandem.CommitID{}, errors.Wrap(err, "write deliver state")
	}
	id, err := a.store.Commit()
	if err != nil {
		return tandem.CommitID{}, errors.Wrap(err, "commit")
	}
	a.resetStates()
	a.logger.Debug("state committed",
		zap.Int64("version", id.Version),
		zap.Int64("height", a.height),
	)
	return id, nil
}

// Query resolves a read-only query against the last committed state.
func (a *TandemApp) Query(path string, data []byte) ([]tandem.Model, error) {
	h := a.queries.Handler(path)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for %q", path)
	}
	return h.Query(a.store, tandem.KeyQueryMod, data)
}

func (a *TandemApp) blockCtx() tandem.Context {
	ctx := context.Background()
	ctx = tandem.WithChainID(ctx, a.chainID)
	ctx = tandem.WithHeight(ctx, a.height)
	ctx = tandem.WithLogger(ctx, a.logger)
	return ctx
}

func (a *TandemApp) resetStates() {
	a.checkState.Discard()
	a.deliverState.Discard()
	a.checkState = a.store.CacheWrap()
	a.deliverState = a.store.CacheWrap()
}
