package types

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// MsgCreatePool registers an empty pool for a token pair.
type MsgCreatePool struct {
	Creator common.Address `json:"creator"`
	TokenA  common.Address `json:"token_a"`
	TokenB  common.Address `json:"token_b"`
}

// MsgAddLiquidity deposits both tokens of a pair. AmountA belongs to TokenA
// as given here, whatever the pool's canonical order is.
type MsgAddLiquidity struct {
	Provider common.Address `json:"provider"`
	TokenA   common.Address `json:"token_a"`
	TokenB   common.Address `json:"token_b"`
	AmountA  math.Int       `json:"amount_a"`
	AmountB  math.Int       `json:"amount_b"`
}

// MsgSwap defines a message to swap tokens using AMM
type MsgSwap struct {
	Trader       common.Address `json:"trader"`
	TokenIn      common.Address `json:"token_in"`
	TokenOut     common.Address `json:"token_out"`
	AmountIn     math.Int       `json:"amount_in"`
	MinAmountOut math.Int       `json:"min_amount_out"`
}

// NewMsgCreatePool creates a new MsgCreatePool instance
func NewMsgCreatePool(creator, tokenA, tokenB common.Address) *MsgCreatePool {
	return &MsgCreatePool{Creator: creator, TokenA: tokenA, TokenB: tokenB}
}

// NewMsgAddLiquidity creates a new MsgAddLiquidity instance
func NewMsgAddLiquidity(provider, tokenA, tokenB common.Address, amountA, amountB math.Int) *MsgAddLiquidity {
	return &MsgAddLiquidity{
		Provider: provider,
		TokenA:   tokenA,
		TokenB:   tokenB,
		AmountA:  amountA,
		AmountB:  amountB,
	}
}

// NewMsgSwap creates a new MsgSwap instance
func NewMsgSwap(trader, tokenIn, tokenOut common.Address, amountIn, minAmountOut math.Int) *MsgSwap {
	return &MsgSwap{
		Trader:       trader,
		TokenIn:      tokenIn,
		TokenOut:     tokenOut,
		AmountIn:     amountIn,
		MinAmountOut: minAmountOut,
	}
}

// ValidateBasic performs stateless checks.
func (msg MsgCreatePool) ValidateBasic() error {
	if msg.Creator == (common.Address{}) {
		return errorsmod.Wrap(ErrInvalidAddress, "creator cannot be the zero address")
	}
	return validatePair(msg.TokenA, msg.TokenB)
}

// ValidateBasic performs stateless checks.
func (msg MsgAddLiquidity) ValidateBasic() error {
	if msg.Provider == (common.Address{}) {
		return errorsmod.Wrap(ErrInvalidAddress, "provider cannot be the zero address")
	}
	if err := validatePair(msg.TokenA, msg.TokenB); err != nil {
		return err
	}
	if !isPositive(msg.AmountA) || !isPositive(msg.AmountB) {
		return errorsmod.Wrap(ErrInvalidAmount, "liquidity amounts must be positive")
	}
	return nil
}

// ValidateBasic performs stateless checks.
func (msg MsgSwap) ValidateBasic() error {
	if msg.Trader == (common.Address{}) {
		return errorsmod.Wrap(ErrInvalidAddress, "trader cannot be the zero address")
	}
	if err := validatePair(msg.TokenIn, msg.TokenOut); err != nil {
		return err
	}
	if !isPositive(msg.AmountIn) {
		return errorsmod.Wrap(ErrInvalidAmount, "amount in must be positive")
	}
	if msg.MinAmountOut.IsNil() || msg.MinAmountOut.IsNegative() {
		return errorsmod.Wrap(ErrInvalidAmount, "min amount out cannot be negative")
	}
	return nil
}

func validatePair(tokenA, tokenB common.Address) error {
	if tokenA == (common.Address{}) || tokenB == (common.Address{}) {
		return errorsmod.Wrap(ErrInvalidPair, "token address cannot be the zero address")
	}
	if tokenA == tokenB {
		return errorsmod.Wrapf(ErrInvalidPair, "identical tokens %s", tokenA.Hex())
	}
	return nil
}

func isPositive(i math.Int) bool {
	return !i.IsNil() && i.IsPositive()
}

// MsgCreatePoolResponse is returned by a successful MsgCreatePool.
type MsgCreatePoolResponse struct {
	PoolId uint64 `json:"pool_id"`
}

// MsgAddLiquidityResponse carries the pool after the deposit.
type MsgAddLiquidityResponse struct {
	Pool Pool `json:"pool"`
}

// MsgSwapResponse carries the realized output of a swap.
type MsgSwapResponse struct {
	AmountOut math.Int `json:"amount_out"`
}

// MsgServer is the transactional surface of the dex module.
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	Swap(context.Context, *MsgSwap) (*MsgSwapResponse, error)
}
