package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/simpledex/simpledex/x/dex/types"
)

// AddLiquidity credits amountA of tokenA and amountB of tokenB to the pair's
// reserves. Amounts follow the argument order. Custody of the tokens must
// already have moved to the module account; see msgServer.AddLiquidity.
//
// No share is minted: the pool does not track who supplied what, and the
// first deposit alone sets the price.
func (k Keeper) AddLiquidity(ctx context.Context, tokenA, tokenB common.Address, amountA, amountB math.Int) (types.Pool, error) {
	if amountA.IsNil() || amountB.IsNil() || !amountA.IsPositive() || !amountB.IsPositive() {
		return types.Pool{}, types.ErrInvalidAmount.Wrap("liquidity amounts must be positive")
	}

	pool, err := k.GetPool(ctx, tokenA, tokenB)
	if err != nil {
		return types.Pool{}, err
	}

	// map caller order onto canonical order
	depositA, depositB := amountA, amountB
	if tokenA != pool.TokenA {
		depositA, depositB = amountB, amountA
	}

	newReserveA, err := SafeAdd(pool.ReserveA, depositA)
	if err != nil {
		return types.Pool{}, err
	}
	newReserveB, err := SafeAdd(pool.ReserveB, depositB)
	if err != nil {
		return types.Pool{}, err
	}

	pool.ReserveA = newReserveA
	pool.ReserveB = newReserveB
	if err := k.SetPool(ctx, pool); err != nil {
		return types.Pool{}, err
	}

	poolIDStr := strconv.FormatUint(pool.Id, 10)
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAddLiquidity,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolIDStr),
			sdk.NewAttribute(types.AttributeKeyTokenA, pool.TokenA.Hex()),
			sdk.NewAttribute(types.AttributeKeyTokenB, pool.TokenB.Hex()),
			sdk.NewAttribute(types.AttributeKeyAmountA, depositA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, depositB.String()),
			sdk.NewAttribute(types.AttributeKeyReserveA, pool.ReserveA.String()),
			sdk.NewAttribute(types.AttributeKeyReserveB, pool.ReserveB.String()),
		),
	)

	k.metrics.LiquidityAdded.WithLabelValues(poolIDStr, pool.TokenA.Hex()).Add(toFloat(depositA))
	k.metrics.LiquidityAdded.WithLabelValues(poolIDStr, pool.TokenB.Hex()).Add(toFloat(depositB))
	k.recordReserves(pool)

	k.Logger(ctx).Debug("liquidity added", "pool_id", pool.Id, "amount_a", depositA.String(), "amount_b", depositB.String())
	return pool, nil
}
