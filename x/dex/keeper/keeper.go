package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/simpledex/simpledex/x/dex/types"
)

// Keeper of the dex store
type Keeper struct {
	storeKey    storetypes.StoreKey
	tokenKeeper types.TokenKeeper
	metrics     *DEXMetrics
}

// NewKeeper creates a new dex Keeper instance
func NewKeeper(key storetypes.StoreKey, tokenKeeper types.TokenKeeper) *Keeper {
	return &Keeper{
		storeKey:    key,
		tokenKeeper: tokenKeeper,
		metrics:     NewDEXMetrics(),
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// GetModuleAddress returns the account holding the pools' custody.
func (k Keeper) GetModuleAddress() common.Address {
	return types.ModuleAddress
}

// getStore returns the KVStore for the dex module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
}
