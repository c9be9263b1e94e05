package app

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	dextypes "github.com/simpledex/simpledex/x/dex/types"
)

// DeployToken deploys a token owned by deployer and mints the initial supply
// to it.
func (app *DexApp) DeployToken(ctx context.Context, deployer common.Address, name, symbol string, decimals uint8, supply math.Int) (common.Address, Result, error) {
	var addr common.Address
	res, err := app.Deliver(ctx, "token_deploy", func(ctx sdk.Context) error {
		var err error
		addr, err = app.TokenKeeper.Deploy(ctx, deployer, name, symbol, decimals, supply)
		return err
	})
	return addr, res, err
}

// MintToken mints amount to recipient. Only the token owner may mint.
func (app *DexApp) MintToken(ctx context.Context, caller, token, to common.Address, amount math.Int) (Result, error) {
	return app.Deliver(ctx, "token_mint", func(ctx sdk.Context) error {
		return app.TokenKeeper.Mint(ctx, caller, token, to, amount)
	})
}

// TransferToken moves amount from one account to another.
func (app *DexApp) TransferToken(ctx context.Context, token, from, to common.Address, amount math.Int) (Result, error) {
	return app.Deliver(ctx, "token_transfer", func(ctx sdk.Context) error {
		return app.TokenKeeper.Transfer(ctx, token, from, to, amount)
	})
}

// ApproveToken sets spender's allowance over owner's balance.
func (app *DexApp) ApproveToken(ctx context.Context, token, owner, spender common.Address, amount math.Int) (Result, error) {
	return app.Deliver(ctx, "token_approve", func(ctx sdk.Context) error {
		return app.TokenKeeper.Approve(ctx, token, owner, spender, amount)
	})
}

// CreatePool registers a pool for a pair of deployed tokens.
func (app *DexApp) CreatePool(ctx context.Context, msg *dextypes.MsgCreatePool) (*dextypes.MsgCreatePoolResponse, Result, error) {
	var resp *dextypes.MsgCreatePoolResponse
	res, err := app.Deliver(ctx, "create_pool", func(ctx sdk.Context) error {
		var err error
		resp, err = app.msgServer.CreatePool(ctx, msg)
		return err
	})
	return resp, res, err
}

// AddLiquidity deposits both tokens of a pair from the provider.
func (app *DexApp) AddLiquidity(ctx context.Context, msg *dextypes.MsgAddLiquidity) (*dextypes.MsgAddLiquidityResponse, Result, error) {
	var resp *dextypes.MsgAddLiquidityResponse
	res, err := app.Deliver(ctx, "add_liquidity", func(ctx sdk.Context) error {
		var err error
		resp, err = app.msgServer.AddLiquidity(ctx, msg)
		return err
	})
	return resp, res, err
}

// Swap executes a trade for the trader.
func (app *DexApp) Swap(ctx context.Context, msg *dextypes.MsgSwap) (*dextypes.MsgSwapResponse, Result, error) {
	var resp *dextypes.MsgSwapResponse
	res, err := app.Deliver(ctx, "swap", func(ctx sdk.Context) error {
		var err error
		resp, err = app.msgServer.Swap(ctx, msg)
		return err
	})
	return resp, res, err
}
