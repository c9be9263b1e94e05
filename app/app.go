package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/trace"

	"github.com/simpledex/simpledex/app/telemetry"
	"github.com/simpledex/simpledex/x/dex"
	dexkeeper "github.com/simpledex/simpledex/x/dex/keeper"
	dextypes "github.com/simpledex/simpledex/x/dex/types"
	"github.com/simpledex/simpledex/x/token"
	tokenkeeper "github.com/simpledex/simpledex/x/token/keeper"
	tokentypes "github.com/simpledex/simpledex/x/token/types"
)

const (
	Name           = "simpledex"
	DefaultChainID = "simpledex-local"
)

// DefaultNodeHome is the default home directory for the application daemon.
var DefaultNodeHome string

// ErrAlreadyInitialized is returned by InitChain on a ledger with history.
var ErrAlreadyInitialized = errors.New("ledger already initialized")

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultNodeHome = filepath.Join(userHomeDir, "."+Name)
}

// Options tune a DexApp.
type Options struct {
	ChainID string
	// CheckInvariants runs every registered invariant before each commit and
	// rejects the transition if one breaks.
	CheckInvariants bool
	Tracer          trace.Tracer
}

// Result describes a committed state transition.
type Result struct {
	Height int64
	Events sdk.Events
}

type invariantRoute struct {
	module, route string
	invariant     sdk.Invariant
}

// DexApp owns the ledger: a committed IAVL multistore holding the token and
// dex modules. State transitions are serialized through Deliver; each one
// runs in a cache and is committed as its own block, so readers only ever
// see complete versions.
type DexApp struct {
	logger  log.Logger
	chainID string
	tracer  trace.Tracer

	cms  storetypes.CommitMultiStore
	keys map[string]*storetypes.KVStoreKey

	TokenKeeper tokenkeeper.Keeper
	DexKeeper   *dexkeeper.Keeper
	msgServer   dextypes.MsgServer
	modules     []AppModule

	invariants      []invariantRoute
	checkInvariants bool

	mu             sync.RWMutex
	lastCommitTime time.Time
}

var _ sdk.InvariantRegistry = (*DexApp)(nil)

// NewDexApp mounts the module stores on db and loads the latest version.
func NewDexApp(logger log.Logger, db dbm.DB, opts Options) (*DexApp, error) {
	if opts.ChainID == "" {
		opts.ChainID = DefaultChainID
	}
	if opts.Tracer == nil {
		opts.Tracer = telemetry.GlobalTracer()
	}

	keys := storetypes.NewKVStoreKeys(tokentypes.StoreKey, dextypes.StoreKey)
	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load latest version: %w", err)
	}

	app := &DexApp{
		logger:          logger.With("module", "app"),
		chainID:         opts.ChainID,
		tracer:          opts.Tracer,
		cms:             cms,
		keys:            keys,
		checkInvariants: opts.CheckInvariants,
	}

	app.TokenKeeper = tokenkeeper.NewKeeper(keys[tokentypes.StoreKey])
	app.DexKeeper = dexkeeper.NewKeeper(keys[dextypes.StoreKey], app.TokenKeeper)
	app.msgServer = dexkeeper.NewMsgServerImpl(*app.DexKeeper)

	app.modules = []AppModule{
		token.NewAppModule(app.TokenKeeper),
		dex.NewAppModule(*app.DexKeeper),
	}
	for _, m := range app.modules {
		m.RegisterInvariants(app)
	}

	if cms.LastCommitID().Version > 0 {
		if err := app.Query(func(ctx sdk.Context) error {
			return app.DexKeeper.SyncMetrics(ctx)
		}); err != nil {
			return nil, fmt.Errorf("sync dex metrics: %w", err)
		}
	}

	return app, nil
}

// RegisterRoute implements sdk.InvariantRegistry.
func (app *DexApp) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	app.invariants = append(app.invariants, invariantRoute{module: moduleName, route: route, invariant: invar})
}

// Logger returns the application logger.
func (app *DexApp) Logger() log.Logger { return app.logger }

// ChainID returns the chain id stamped on every block header.
func (app *DexApp) ChainID() string { return app.chainID }

// LastBlockHeight returns the height of the latest committed version.
func (app *DexApp) LastBlockHeight() int64 {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cms.LastCommitID().Version
}

// LastCommitID returns the latest committed version and its app hash.
func (app *DexApp) LastCommitID() storetypes.CommitID {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cms.LastCommitID()
}

// LastCommitTime returns when the latest version was committed by this
// process. It is zero until the first commit.
func (app *DexApp) LastCommitTime() time.Time {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.lastCommitTime
}

// InitChain loads genesis into an empty ledger and commits it as height 1.
func (app *DexApp) InitChain(genesis GenesisState) error {
	if err := genesis.Validate(); err != nil {
		return err
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if app.cms.LastCommitID().Version != 0 {
		return ErrAlreadyInitialized
	}

	res, err := app.deliverLocked(context.Background(), "init_chain", func(ctx sdk.Context) error {
		for _, m := range app.modules {
			if err := m.InitGenesis(ctx, genesis[m.Name()]); err != nil {
				return fmt.Errorf("%s genesis: %w", m.Name(), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	app.logger.Info("genesis loaded", "height", res.Height, "modules", len(app.modules))
	return nil
}

// ExportGenesis dumps the committed ledger.
func (app *DexApp) ExportGenesis() (GenesisState, error) {
	genesis := make(GenesisState)
	err := app.Query(func(ctx sdk.Context) error {
		for _, m := range app.modules {
			bz, err := m.ExportGenesis(ctx)
			if err != nil {
				return fmt.Errorf("%s genesis: %w", m.Name(), err)
			}
			genesis[m.Name()] = bz
		}
		return nil
	})
	return genesis, err
}

// Deliver runs fn as one atomic state transition and commits it. Nothing fn
// wrote is kept if it returns an error.
func (app *DexApp) Deliver(ctx context.Context, op string, fn func(ctx sdk.Context) error) (Result, error) {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.deliverLocked(ctx, op, fn)
}

func (app *DexApp) deliverLocked(goCtx context.Context, op string, fn func(ctx sdk.Context) error) (Result, error) {
	// the caller may have given up while waiting for the lock
	if err := goCtx.Err(); err != nil {
		return Result{}, err
	}
	height := app.cms.LastCommitID().Version + 1

	goCtx, span := telemetry.StartTxSpan(goCtx, app.tracer, op, height)
	defer span.End()

	header := cmtproto.Header{ChainID: app.chainID, Height: height, Time: time.Now().UTC()}
	ctx := sdk.NewContext(app.cms, header, false, app.logger).
		WithContext(goCtx).
		WithEventManager(sdk.NewEventManager())

	cacheCtx, write := ctx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		telemetry.RecordError(span, err)
		app.logger.Debug("transition rejected", "op", op, "height", height, "err", err)
		return Result{}, err
	}

	if app.checkInvariants {
		if msg, broken := app.runInvariants(cacheCtx); broken {
			err := dextypes.ErrInvariantBroken.Wrap(msg)
			telemetry.RecordError(span, err)
			app.logger.Error("invariant broken, transition rejected", "op", op, "height", height, "msg", msg)
			return Result{}, err
		}
	}

	write()
	commitID := app.cms.Commit()
	app.lastCommitTime = header.Time

	app.logger.Debug("committed", "op", op, "height", commitID.Version, "hash", fmt.Sprintf("%X", commitID.Hash))
	return Result{Height: commitID.Version, Events: ctx.EventManager().Events()}, nil
}

// Query runs fn against the latest committed version. fn cannot change
// state: its writes land in a discarded cache.
func (app *DexApp) Query(fn func(ctx sdk.Context) error) error {
	app.mu.RLock()
	defer app.mu.RUnlock()

	version := app.cms.LastCommitID().Version
	var ms storetypes.CacheMultiStore = app.cms.CacheMultiStore()
	if version > 0 {
		// immutable trees at the committed version, safe for parallel readers
		versioned, err := app.cms.CacheMultiStoreWithVersion(version)
		if err != nil {
			return fmt.Errorf("load version %d: %w", version, err)
		}
		ms = versioned
	}
	header := cmtproto.Header{ChainID: app.chainID, Height: version, Time: app.lastCommitTime}
	ctx := sdk.NewContext(ms, header, true, app.logger)
	return fn(ctx)
}

// CheckInvariants runs every registered invariant against committed state.
func (app *DexApp) CheckInvariants() (string, bool) {
	var (
		msg    string
		broken bool
	)
	_ = app.Query(func(ctx sdk.Context) error {
		msg, broken = app.runInvariants(ctx)
		return nil
	})
	return msg, broken
}

func (app *DexApp) runInvariants(ctx sdk.Context) (string, bool) {
	for _, inv := range app.invariants {
		if msg, broken := inv.invariant(ctx); broken {
			return msg, true
		}
	}
	return "", false
}

// Close releases the store.
func (app *DexApp) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if closer, ok := app.cms.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
