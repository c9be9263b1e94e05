package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/simpledex/simpledex/x/dex/types"
)

// GetNextPoolID returns the next pool ID and increments the counter
func (k Keeper) GetNextPoolID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	poolID := uint64(1)
	if bz := store.Get(types.PoolCountKey); bz != nil {
		poolID = types.BigEndianToUint64(bz)
	}

	store.Set(types.PoolCountKey, types.Uint64ToBigEndian(poolID+1))
	return poolID
}

// PeekNextPoolID returns the id the next created pool will get.
func (k Keeper) PeekNextPoolID(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.PoolCountKey)
	if bz == nil {
		return 1
	}
	return types.BigEndianToUint64(bz)
}

// SetNextPoolID sets the next pool ID counter
func (k Keeper) SetNextPoolID(ctx context.Context, poolID uint64) {
	k.getStore(ctx).Set(types.PoolCountKey, types.Uint64ToBigEndian(poolID))
}

// CreatePool registers an empty pool for the unordered pair (tokenA, tokenB)
// and returns its id. Reserves start at zero until the first deposit.
func (k Keeper) CreatePool(ctx context.Context, tokenA, tokenB common.Address) (uint64, error) {
	if err := validatePair(tokenA, tokenB); err != nil {
		return 0, err
	}

	if existing, found := k.getPoolIDByTokens(ctx, tokenA, tokenB); found {
		return 0, types.ErrDuplicatePool.Wrapf("pool %d already exists for %s/%s", existing, tokenA.Hex(), tokenB.Hex())
	}

	poolID := k.GetNextPoolID(ctx)
	pool := types.NewPool(poolID, tokenA, tokenB)
	if err := k.SetPool(ctx, pool); err != nil {
		return 0, err
	}
	k.setPoolByTokens(ctx, pool.TokenA, pool.TokenB, poolID)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreatePool,
			sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(poolID, 10)),
			sdk.NewAttribute(types.AttributeKeyTokenA, pool.TokenA.Hex()),
			sdk.NewAttribute(types.AttributeKeyTokenB, pool.TokenB.Hex()),
		),
	)

	k.metrics.PoolsTotal.Inc()
	k.metrics.PoolCreations.Inc()
	k.Logger(ctx).Info("pool created", "pool_id", poolID, "token_a", pool.TokenA.Hex(), "token_b", pool.TokenB.Hex())

	return poolID, nil
}

// GetPool returns a snapshot of the pool for the unordered pair.
func (k Keeper) GetPool(ctx context.Context, tokenA, tokenB common.Address) (types.Pool, error) {
	if err := validatePair(tokenA, tokenB); err != nil {
		return types.Pool{}, err
	}

	poolID, found := k.getPoolIDByTokens(ctx, tokenA, tokenB)
	if !found {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("no pool for %s/%s", tokenA.Hex(), tokenB.Hex())
	}
	return k.GetPoolByID(ctx, poolID)
}

// GetReserves returns the reserves of the pair ordered like the arguments.
func (k Keeper) GetReserves(ctx context.Context, tokenA, tokenB common.Address) (math.Int, math.Int, error) {
	pool, err := k.GetPool(ctx, tokenA, tokenB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return pool.Reserves(tokenA, tokenB)
}

// GetPoolByID returns a pool by its id.
func (k Keeper) GetPoolByID(ctx context.Context, poolID uint64) (types.Pool, error) {
	bz := k.getStore(ctx).Get(types.PoolKey(poolID))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool %d not found", poolID)
	}

	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, fmt.Errorf("GetPoolByID: unmarshal: %w", err)
	}
	return pool, nil
}

// SetPool stores a pool.
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) error {
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.PoolKey(pool.Id), bz)
	return nil
}

// HasPool reports whether a pool exists for the unordered pair.
func (k Keeper) HasPool(ctx context.Context, tokenA, tokenB common.Address) bool {
	_, found := k.getPoolIDByTokens(ctx, tokenA, tokenB)
	return found
}

// IteratePools calls cb for every pool in id order until cb returns true.
func (k Keeper) IteratePools(ctx context.Context, cb func(types.Pool) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns every pool.
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	pools := []types.Pool{}
	err := k.IteratePools(ctx, func(p types.Pool) bool {
		pools = append(pools, p)
		return false
	})
	return pools, err
}

func (k Keeper) getPoolIDByTokens(ctx context.Context, tokenA, tokenB common.Address) (uint64, bool) {
	bz := k.getStore(ctx).Get(types.PoolByTokensKey(tokenA, tokenB))
	if bz == nil {
		return 0, false
	}
	return types.BigEndianToUint64(bz), true
}

func (k Keeper) setPoolByTokens(ctx context.Context, tokenA, tokenB common.Address, poolID uint64) {
	k.getStore(ctx).Set(types.PoolByTokensKey(tokenA, tokenB), types.Uint64ToBigEndian(poolID))
}

func validatePair(tokenA, tokenB common.Address) error {
	if tokenA == (common.Address{}) || tokenB == (common.Address{}) {
		return types.ErrInvalidPair.Wrap("token address cannot be the zero address")
	}
	if tokenA == tokenB {
		return types.ErrInvalidPair.Wrapf("identical tokens %s", tokenA.Hex())
	}
	return nil
}
