package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	dexkeeper "github.com/simpledex/simpledex/x/dex/keeper"
	dextypes "github.com/simpledex/simpledex/x/dex/types"
	tokenkeeper "github.com/simpledex/simpledex/x/token/keeper"
	tokentypes "github.com/simpledex/simpledex/x/token/types"
)

// Well-known development accounts used across tests.
var (
	Deployer = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	Alice    = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	Bob      = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

// Ether returns n whole tokens at 18 decimals.
func Ether(n int64) math.Int {
	return math.NewInt(n).Mul(dextypes.PriceScale)
}

// Keepers bundles the keepers of a test store.
type Keepers struct {
	Dex   *dexkeeper.Keeper
	Token tokenkeeper.Keeper
}

// DexKeeper creates dex and token keepers over an in-memory IAVL multistore
// initialized with default genesis.
func DexKeeper(t testing.TB) (Keepers, sdk.Context) {
	dexKey := storetypes.NewKVStoreKey(dextypes.StoreKey)
	tokenKey := storetypes.NewKVStoreKey(tokentypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(dexKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(tokenKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	tk := tokenkeeper.NewKeeper(tokenKey)
	dk := dexkeeper.NewKeeper(dexKey, tk)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1}, false, log.NewNopLogger())

	require.NoError(t, tk.InitGenesis(ctx, *tokentypes.DefaultGenesis()))
	require.NoError(t, dk.InitGenesis(ctx, *dextypes.DefaultGenesis()))

	return Keepers{Dex: dk, Token: tk}, ctx
}

// DeployToken deploys an 18-decimal token owned by Deployer with the given
// initial supply in whole units.
func DeployToken(t testing.TB, k Keepers, ctx sdk.Context, symbol string, supply int64) common.Address {
	addr, err := k.Token.Deploy(ctx, Deployer, symbol+" Token", symbol, tokentypes.DefaultDecimals, Ether(supply))
	require.NoError(t, err)
	return addr
}

// Fund mints amount of token to account and approves the dex module to
// spend all of it.
func Fund(t testing.TB, k Keepers, ctx sdk.Context, token, account common.Address, amount math.Int) {
	require.NoError(t, k.Token.Mint(ctx, Deployer, token, account, amount))
	require.NoError(t, k.Token.Approve(ctx, token, account, dextypes.ModuleAddress, k.Token.BalanceOf(ctx, token, account)))
}

// SeedPool creates the pool for tokenA/tokenB and deposits the amounts
// through the msg server so custody matches reserves.
func SeedPool(t testing.TB, k Keepers, ctx sdk.Context, tokenA, tokenB common.Address, amountA, amountB math.Int) dextypes.Pool {
	srv := dexkeeper.NewMsgServerImpl(*k.Dex)

	if !k.Dex.HasPool(ctx, tokenA, tokenB) {
		_, err := srv.CreatePool(ctx, dextypes.NewMsgCreatePool(Deployer, tokenA, tokenB))
		require.NoError(t, err)
	}

	Fund(t, k, ctx, tokenA, Deployer, amountA)
	Fund(t, k, ctx, tokenB, Deployer, amountB)

	resp, err := srv.AddLiquidity(ctx, dextypes.NewMsgAddLiquidity(Deployer, tokenA, tokenB, amountA, amountB))
	require.NoError(t, err)
	return resp.Pool
}
