package app

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	dextypes "github.com/simpledex/simpledex/x/dex/types"
	tokentypes "github.com/simpledex/simpledex/x/token/types"
)

// Pool returns the committed pool for an unordered pair.
func (app *DexApp) Pool(tokenA, tokenB common.Address) (pool dextypes.Pool, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		pool, err = app.DexKeeper.GetPool(ctx, tokenA, tokenB)
		return err
	})
	return pool, err
}

// PoolByID returns the committed pool with the given id.
func (app *DexApp) PoolByID(id uint64) (pool dextypes.Pool, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		pool, err = app.DexKeeper.GetPoolByID(ctx, id)
		return err
	})
	return pool, err
}

// Pools returns every committed pool in id order.
func (app *DexApp) Pools() (pools []dextypes.Pool, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		pools, err = app.DexKeeper.GetAllPools(ctx)
		return err
	})
	return pools, err
}

// Reserves returns both reserves of the pair from the same committed version,
// ordered like the arguments.
func (app *DexApp) Reserves(tokenA, tokenB common.Address) (reserveA, reserveB math.Int, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		reserveA, reserveB, err = app.DexKeeper.GetReserves(ctx, tokenA, tokenB)
		return err
	})
	return reserveA, reserveB, err
}

// Price returns the spot price of base in quote, raw and as a decimal.
func (app *DexApp) Price(base, quote common.Address) (raw math.Int, dec math.LegacyDec, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		raw, err = app.DexKeeper.GetPrice(ctx, base, quote)
		if err != nil {
			return err
		}
		dec = math.LegacyNewDecFromIntWithPrec(raw, dextypes.PriceDecimals)
		return nil
	})
	return raw, dec, err
}

// Quote simulates a swap against committed reserves.
func (app *DexApp) Quote(tokenIn, tokenOut common.Address, amountIn math.Int) (quote dextypes.SwapQuote, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		quote, err = app.DexKeeper.SimulateSwap(ctx, tokenIn, tokenOut, amountIn)
		return err
	})
	return quote, err
}

// Params returns the dex parameters.
func (app *DexApp) Params() (params dextypes.Params, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		params, err = app.DexKeeper.GetParams(ctx)
		return err
	})
	return params, err
}

// Token returns a token's metadata.
func (app *DexApp) Token(addr common.Address) (token tokentypes.Token, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		token, err = app.TokenKeeper.GetToken(ctx, addr)
		return err
	})
	return token, err
}

// Tokens returns every deployed token.
func (app *DexApp) Tokens() (tokens []tokentypes.Token, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		tokens, err = app.TokenKeeper.GetAllTokens(ctx)
		return err
	})
	return tokens, err
}

// Balance returns account's balance of token.
func (app *DexApp) Balance(token, account common.Address) (balance math.Int, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		if !app.TokenKeeper.HasToken(ctx, token) {
			return tokentypes.ErrTokenNotFound.Wrapf("no token at %s", token.Hex())
		}
		balance = app.TokenKeeper.BalanceOf(ctx, token, account)
		return nil
	})
	return balance, err
}

// Allowance returns how much of owner's token spender may move.
func (app *DexApp) Allowance(token, owner, spender common.Address) (allowance math.Int, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		if !app.TokenKeeper.HasToken(ctx, token) {
			return tokentypes.ErrTokenNotFound.Wrapf("no token at %s", token.Hex())
		}
		allowance = app.TokenKeeper.Allowance(ctx, token, owner, spender)
		return nil
	})
	return allowance, err
}
