package keeper

import (
	"context"
	"math/big"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/simpledex/simpledex/x/dex/types"
)

// feeDenominator is 10^18, the raw scale of a LegacyDec.
var feeDenominator = math.LegacyOneDec().BigInt()

// GetAmountOut returns the constant-product output for amountIn against the
// given reserves:
//
//	amountInWithFee = amountIn * (1 - fee)
//	amountOut       = floor(reserveOut * amountInWithFee / (reserveIn + amountInWithFee))
//
// The fee is applied in 10^18 fixed point so the result is the exact floor of
// the rational value. The output is always strictly below reserveOut.
func GetAmountOut(amountIn, reserveIn, reserveOut math.Int, fee math.LegacyDec) (math.Int, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.Int{}, types.ErrInvalidAmount.Wrap("swap amount must be positive")
	}
	if reserveIn.IsNil() || reserveOut.IsNil() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, types.ErrEmptyPool.Wrapf("reserves %s/%s", reserveIn, reserveOut)
	}
	if fee.IsNil() || fee.IsNegative() || fee.GTE(math.LegacyOneDec()) {
		return math.Int{}, types.ErrInvalidParams.Wrapf("swap fee %s out of range", fee)
	}

	var feeMul, num, den big.Int
	// feeMul = 10^18 - fee*10^18
	feeMul.Sub(feeDenominator, fee.BigInt())
	// num = amountIn * feeMul
	num.Mul(amountIn.BigInt(), &feeMul)
	// den = reserveIn * 10^18 + amountIn * feeMul
	den.Mul(reserveIn.BigInt(), feeDenominator)
	den.Add(&den, &num)
	// num = amountIn * feeMul * reserveOut
	num.Mul(&num, reserveOut.BigInt())
	num.Quo(&num, &den)

	return math.NewIntFromBigInt(&num), nil
}

// Swap trades amountIn of tokenIn for tokenOut against the pair's pool and
// returns the realized output. Reserves change only on success:
// reserveIn += amountIn and reserveOut -= amountOut. Token custody is the
// caller's concern; see msgServer.Swap, which also records the success
// metrics once custody has moved.
func (k Keeper) Swap(ctx context.Context, tokenIn, tokenOut common.Address, amountIn, minAmountOut math.Int) (math.Int, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrap("swap amount must be positive")
	}
	if minAmountOut.IsNil() || minAmountOut.IsNegative() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrap("min amount out cannot be negative")
	}

	pool, err := k.GetPool(ctx, tokenIn, tokenOut)
	if err != nil {
		return math.ZeroInt(), err
	}
	poolIDStr := strconv.FormatUint(pool.Id, 10)

	reserveIn, reserveOut, err := pool.Reserves(tokenIn, tokenOut)
	if err != nil {
		return math.ZeroInt(), err
	}
	if reserveIn.IsZero() || reserveOut.IsZero() {
		k.metrics.SwapsTotal.WithLabelValues(poolIDStr, "empty_pool").Inc()
		return math.ZeroInt(), types.ErrEmptyPool.Wrapf("pool %d has no liquidity", pool.Id)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return math.ZeroInt(), err
	}

	amountOut, err := GetAmountOut(amountIn, reserveIn, reserveOut, params.SwapFee)
	if err != nil {
		return math.ZeroInt(), err
	}
	if amountOut.IsZero() {
		k.metrics.SwapsTotal.WithLabelValues(poolIDStr, "failed").Inc()
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf("swap amount %s too small to produce output", amountIn)
	}

	if amountOut.LT(minAmountOut) {
		k.metrics.SwapsTotal.WithLabelValues(poolIDStr, "slippage").Inc()
		return math.ZeroInt(), types.ErrSlippageExceeded.Wrapf("expected at least %s, got %s", minAmountOut, amountOut)
	}

	newReserveIn, err := SafeAdd(reserveIn, amountIn)
	if err != nil {
		return math.ZeroInt(), err
	}
	newReserveOut, err := SafeSub(reserveOut, amountOut)
	if err != nil {
		return math.ZeroInt(), err
	}

	updated := pool
	if tokenIn == pool.TokenA {
		updated.ReserveA, updated.ReserveB = newReserveIn, newReserveOut
	} else {
		updated.ReserveA, updated.ReserveB = newReserveOut, newReserveIn
	}

	// floor rounding on the output keeps k from shrinking; anything else is a bug
	if updated.Product().Cmp(pool.Product()) < 0 {
		k.Logger(ctx).Error("constant product decreased", "pool_id", pool.Id, "amount_in", amountIn.String(), "amount_out", amountOut.String())
		return math.ZeroInt(), types.ErrInvariantBroken.Wrapf("pool %d constant product would decrease", pool.Id)
	}

	if err := k.SetPool(ctx, updated); err != nil {
		return math.ZeroInt(), err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolIDStr),
			sdk.NewAttribute(types.AttributeKeyTokenIn, tokenIn.Hex()),
			sdk.NewAttribute(types.AttributeKeyTokenOut, tokenOut.Hex()),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
			sdk.NewAttribute(types.AttributeKeyMinAmountOut, minAmountOut.String()),
		),
	)

	k.Logger(ctx).Debug("swap executed", "pool_id", pool.Id, "token_in", tokenIn.Hex(), "amount_in", amountIn.String(), "amount_out", amountOut.String())
	return amountOut, nil
}

// SimulateSwap quotes a swap against the current reserves without changing
// state. Slippage is not checked.
func (k Keeper) SimulateSwap(ctx context.Context, tokenIn, tokenOut common.Address, amountIn math.Int) (types.SwapQuote, error) {
	pool, err := k.GetPool(ctx, tokenIn, tokenOut)
	if err != nil {
		return types.SwapQuote{}, err
	}
	reserveIn, reserveOut, err := pool.Reserves(tokenIn, tokenOut)
	if err != nil {
		return types.SwapQuote{}, err
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return types.SwapQuote{}, err
	}

	amountOut, err := GetAmountOut(amountIn, reserveIn, reserveOut, params.SwapFee)
	if err != nil {
		return types.SwapQuote{}, err
	}

	spot, err := spotPriceDec(reserveIn, reserveOut)
	if err != nil {
		return types.SwapQuote{}, err
	}
	newReserveIn, err := SafeAdd(reserveIn, amountIn)
	if err != nil {
		return types.SwapQuote{}, err
	}
	after, err := spotPriceDec(newReserveIn, reserveOut.Sub(amountOut))
	if err != nil {
		return types.SwapQuote{}, err
	}

	// impact = 1 - executionPrice/spot, where executionPrice = amountOut/amountIn
	impact := math.LegacyZeroDec()
	if spot.IsPositive() {
		execution := math.LegacyNewDecFromInt(amountOut).QuoInt(amountIn)
		impact = math.LegacyOneDec().Sub(execution.Quo(spot))
		if impact.IsNegative() {
			impact = math.LegacyZeroDec()
		}
	}

	return types.SwapQuote{
		TokenIn:     tokenIn,
		TokenOut:    tokenOut,
		AmountIn:    amountIn,
		AmountOut:   amountOut,
		Fee:         math.LegacyNewDecFromInt(amountIn).Mul(params.SwapFee).TruncateInt(),
		SpotPrice:   spot,
		PriceAfter:  after,
		PriceImpact: impact,
	}, nil
}

func toFloat(i math.Int) float64 {
	f, _ := new(big.Float).SetInt(i.BigInt()).Float64()
	return f
}
