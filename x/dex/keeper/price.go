package keeper

import (
	"context"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/simpledex/simpledex/x/dex/types"
)

// GetPrice returns how much of quote one unit of base buys at the current
// reserves, scaled by 10^18 and rounded down:
//
//	price = floor(reserveQuote * 10^18 / reserveBase)
//
// It is a spot price over the latest committed state and moves with every
// trade.
func (k Keeper) GetPrice(ctx context.Context, base, quote common.Address) (math.Int, error) {
	reserveBase, reserveQuote, err := k.GetReserves(ctx, base, quote)
	if err != nil {
		return math.Int{}, err
	}
	if reserveBase.IsZero() || reserveQuote.IsZero() {
		return math.Int{}, types.ErrEmptyPool.Wrapf("pool %s/%s has no liquidity", base.Hex(), quote.Hex())
	}
	return SafeMulDiv(reserveQuote, types.PriceScale, reserveBase)
}

// GetPriceDec is GetPrice as a decimal.
func (k Keeper) GetPriceDec(ctx context.Context, base, quote common.Address) (math.LegacyDec, error) {
	price, err := k.GetPrice(ctx, base, quote)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return math.LegacyNewDecFromIntWithPrec(price, types.PriceDecimals), nil
}

func spotPriceDec(reserveIn, reserveOut math.Int) (math.LegacyDec, error) {
	if !reserveIn.IsPositive() {
		return math.LegacyZeroDec(), types.ErrEmptyPool
	}
	price, err := SafeMulDiv(reserveOut, types.PriceScale, reserveIn)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return math.LegacyNewDecFromIntWithPrec(price, types.PriceDecimals), nil
}
