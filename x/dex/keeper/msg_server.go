package keeper

import (
	"context"
	"strconv"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/simpledex/simpledex/x/dex/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the dex MsgServer interface.
// Each handler runs in a cache context and commits only if every step,
// token movements included, succeeds.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreatePool handles the creation of a new liquidity pool
func (ms msgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, errorsmod.Wrap(err, "CreatePool: validate")
	}

	if !ms.tokenKeeper.HasToken(goCtx, msg.TokenA) {
		return nil, types.ErrInvalidToken.Wrapf("token_a %s is not a deployed token", msg.TokenA.Hex())
	}
	if !ms.tokenKeeper.HasToken(goCtx, msg.TokenB) {
		return nil, types.ErrInvalidToken.Wrapf("token_b %s is not a deployed token", msg.TokenB.Hex())
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	cacheCtx, write := ctx.CacheContext()

	poolID, err := ms.Keeper.CreatePool(cacheCtx, msg.TokenA, msg.TokenB)
	if err != nil {
		return nil, errorsmod.Wrap(err, "CreatePool")
	}

	write()
	emitMessageEvent(ctx, types.AttributeKeyCreator, msg.Creator.Hex())

	return &types.MsgCreatePoolResponse{PoolId: poolID}, nil
}

// AddLiquidity pulls both amounts from the provider into the module account
// and credits them to the pool's reserves. The provider must have approved
// the module account for both tokens.
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, errorsmod.Wrap(err, "AddLiquidity: validate")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	cacheCtx, write := ctx.CacheContext()
	moduleAddr := ms.GetModuleAddress()

	if !ms.HasPool(cacheCtx, msg.TokenA, msg.TokenB) {
		return nil, types.ErrPoolNotFound.Wrapf("no pool for %s/%s", msg.TokenA.Hex(), msg.TokenB.Hex())
	}

	if err := ms.tokenKeeper.TransferFrom(cacheCtx, msg.TokenA, moduleAddr, msg.Provider, moduleAddr, msg.AmountA); err != nil {
		return nil, errorsmod.Wrap(err, "AddLiquidity: transfer token_a")
	}
	if err := ms.tokenKeeper.TransferFrom(cacheCtx, msg.TokenB, moduleAddr, msg.Provider, moduleAddr, msg.AmountB); err != nil {
		return nil, errorsmod.Wrap(err, "AddLiquidity: transfer token_b")
	}

	pool, err := ms.Keeper.AddLiquidity(cacheCtx, msg.TokenA, msg.TokenB, msg.AmountA, msg.AmountB)
	if err != nil {
		return nil, errorsmod.Wrap(err, "AddLiquidity")
	}

	write()
	emitMessageEvent(ctx, types.AttributeKeyProvider, msg.Provider.Hex())

	return &types.MsgAddLiquidityResponse{Pool: pool}, nil
}

// Swap moves amountIn from the trader into the pool, reprices and pays
// amountOut back to the trader. Swap outcome metrics are recorded here, once
// the whole transition is known to have succeeded.
func (ms msgServer) Swap(goCtx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	start := time.Now()
	defer func() {
		ms.metrics.SwapLatency.Observe(time.Since(start).Seconds())
	}()

	if err := msg.ValidateBasic(); err != nil {
		return nil, errorsmod.Wrap(err, "Swap: validate")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	cacheCtx, write := ctx.CacheContext()
	moduleAddr := ms.GetModuleAddress()

	amountOut, err := ms.Keeper.Swap(cacheCtx, msg.TokenIn, msg.TokenOut, msg.AmountIn, msg.MinAmountOut)
	if err != nil {
		return nil, errorsmod.Wrap(err, "Swap")
	}

	if err := ms.tokenKeeper.TransferFrom(cacheCtx, msg.TokenIn, moduleAddr, msg.Trader, moduleAddr, msg.AmountIn); err != nil {
		ms.recordSwapFailure(ctx, msg.TokenIn, msg.TokenOut)
		return nil, errorsmod.Wrap(err, "Swap: transfer in")
	}
	if err := ms.tokenKeeper.Transfer(cacheCtx, msg.TokenOut, moduleAddr, msg.Trader, amountOut); err != nil {
		ms.recordSwapFailure(ctx, msg.TokenIn, msg.TokenOut)
		return nil, errorsmod.Wrap(err, "Swap: transfer out")
	}

	write()
	ms.recordSwap(ctx, msg.TokenIn, msg.TokenOut, msg.AmountIn)
	emitMessageEvent(ctx, types.AttributeKeyTrader, msg.Trader.Hex())

	return &types.MsgSwapResponse{AmountOut: amountOut}, nil
}

func emitMessageEvent(ctx sdk.Context, senderKey, sender string) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
			sdk.NewAttribute(senderKey, sender),
			sdk.NewAttribute("height", strconv.FormatInt(ctx.BlockHeight(), 10)),
		),
	)
}
