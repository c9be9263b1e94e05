// Package network runs an in-process simpledex node behind an httptest
// server for client and command tests.
package network

import (
	"context"
	"net/http/httptest"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/simpledex/simpledex/api"
	"github.com/simpledex/simpledex/app"
	"github.com/simpledex/simpledex/app/health"
	"github.com/simpledex/simpledex/config"
	testkeeper "github.com/simpledex/simpledex/testutil/keeper"
	dextypes "github.com/simpledex/simpledex/x/dex/types"
)

// Config tunes the in-process node.
type Config struct {
	ChainID         string
	CheckInvariants bool
	SwapFee         math.LegacyDec
	// Seed runs the default development deployment with Deployer and
	// Trader.
	Seed bool
}

// DefaultConfig returns a seeded node with invariant checks on and no fee.
func DefaultConfig() Config {
	return Config{
		ChainID:         app.DefaultChainID,
		CheckInvariants: true,
		SwapFee:         math.LegacyZeroDec(),
		Seed:            true,
	}
}

// Network is a running node.
type Network struct {
	App    *app.DexApp
	Server *httptest.Server
	Client *api.Client
	URL    string

	// Seeded is nil unless Config.Seed was set.
	Seeded *app.SeedResult

	Deployer, Trader common.Address
}

// New starts a node and stops it when the test ends.
func New(t testing.TB, cfg Config) *Network {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dexApp, err := app.NewDexApp(log.NewNopLogger(), dbm.NewMemDB(), app.Options{
		ChainID:         cfg.ChainID,
		CheckInvariants: cfg.CheckInvariants,
	})
	require.NoError(t, err)

	genesis := app.NewDefaultGenesisState()
	if !cfg.SwapFee.IsNil() && !cfg.SwapFee.IsZero() {
		dexGenesis := dextypes.DefaultGenesis()
		dexGenesis.Params = dextypes.NewParams(cfg.SwapFee)
		genesis, err = genesis.WithModule(dextypes.ModuleName, dexGenesis)
		require.NoError(t, err)
	}
	require.NoError(t, dexApp.InitChain(genesis))

	checker, err := health.NewChecker(log.NewNopLogger(), dexApp, health.DefaultConfig())
	require.NoError(t, err)

	apiCfg := config.DefaultConfig().API
	apiCfg.RateLimitRPS = 0
	server, err := api.NewServer(log.NewNopLogger(), dexApp, checker, apiCfg)
	require.NoError(t, err)

	n := &Network{
		App:      dexApp,
		Server:   httptest.NewServer(server.Handler()),
		Deployer: testkeeper.Deployer,
		Trader:   testkeeper.Alice,
	}
	n.URL = n.Server.URL
	n.Client = api.NewClient(n.URL)

	t.Cleanup(func() {
		n.Server.Close()
		_ = dexApp.Close()
	})

	if cfg.Seed {
		n.Seeded, err = dexApp.Seed(context.Background(), testkeeper.Deployer, testkeeper.Alice, app.DefaultSeedPlan())
		require.NoError(t, err)
	}
	return n
}
