package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/simpledex/simpledex/x/token/types"
)

// BalanceOf returns account's balance of token. Unknown tokens and accounts
// read as zero.
func (k Keeper) BalanceOf(ctx context.Context, token, account common.Address) math.Int {
	return k.getAmount(ctx, types.BalanceKey(token, account))
}

// Allowance returns what spender may still move out of owner's balance.
func (k Keeper) Allowance(ctx context.Context, token, owner, spender common.Address) math.Int {
	return k.getAmount(ctx, types.AllowanceKey(token, owner, spender))
}

// Mint creates amount new tokens for to. Only the token owner may mint.
func (k Keeper) Mint(ctx context.Context, caller, tokenAddr, to common.Address, amount math.Int) error {
	token, err := k.GetToken(ctx, tokenAddr)
	if err != nil {
		return err
	}
	if caller != token.Owner {
		return types.ErrUnauthorized.Wrapf("%s cannot mint %s", caller.Hex(), token.Symbol)
	}
	if to == (common.Address{}) {
		return types.ErrInvalidAddress.Wrap("cannot mint to the zero address")
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	return k.mint(ctx, token, to, amount)
}

func (k Keeper) mint(ctx context.Context, token types.Token, to common.Address, amount math.Int) error {
	supply, err := safeAdd(token.TotalSupply, amount)
	if err != nil {
		return err
	}
	balance, err := safeAdd(k.BalanceOf(ctx, token.Address, to), amount)
	if err != nil {
		return err
	}

	token.TotalSupply = supply
	if err := k.SetToken(ctx, token); err != nil {
		return err
	}
	if err := k.setAmount(ctx, types.BalanceKey(token.Address, to), balance); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMint,
			sdk.NewAttribute(types.AttributeKeyToken, token.Address.Hex()),
			sdk.NewAttribute(types.AttributeKeyTo, to.Hex()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Transfer moves amount of token from one account to another.
func (k Keeper) Transfer(ctx context.Context, token, from, to common.Address, amount math.Int) error {
	if !k.HasToken(ctx, token) {
		return types.ErrTokenNotFound.Wrapf("no token at %s", token.Hex())
	}
	if to == (common.Address{}) {
		return types.ErrInvalidAddress.Wrap("cannot transfer to the zero address")
	}
	if err := validateAmount(amount); err != nil {
		return err
	}

	fromBalance := k.BalanceOf(ctx, token, from)
	if fromBalance.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s has %s, needs %s", from.Hex(), fromBalance, amount)
	}
	if from != to {
		toBalance, err := safeAdd(k.BalanceOf(ctx, token, to), amount)
		if err != nil {
			return err
		}
		if err := k.setAmount(ctx, types.BalanceKey(token, from), fromBalance.Sub(amount)); err != nil {
			return err
		}
		if err := k.setAmount(ctx, types.BalanceKey(token, to), toBalance); err != nil {
			return err
		}
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyToken, token.Hex()),
			sdk.NewAttribute(types.AttributeKeyFrom, from.Hex()),
			sdk.NewAttribute(types.AttributeKeyTo, to.Hex()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Approve sets the allowance of spender over owner's tokens, replacing any
// previous value. A zero amount revokes it.
func (k Keeper) Approve(ctx context.Context, token, owner, spender common.Address, amount math.Int) error {
	if !k.HasToken(ctx, token) {
		return types.ErrTokenNotFound.Wrapf("no token at %s", token.Hex())
	}
	if spender == (common.Address{}) {
		return types.ErrInvalidAddress.Wrap("cannot approve the zero address")
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrap("allowance cannot be negative")
	}
	if err := k.setAmount(ctx, types.AllowanceKey(token, owner, spender), amount); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeApproval,
			sdk.NewAttribute(types.AttributeKeyToken, token.Hex()),
			sdk.NewAttribute(types.AttributeKeyOwner, owner.Hex()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.Hex()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// TransferFrom moves amount from one account to another using spender's
// allowance, which is reduced accordingly.
func (k Keeper) TransferFrom(ctx context.Context, token, spender, from, to common.Address, amount math.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}

	allowance := k.Allowance(ctx, token, from, spender)
	if allowance.LT(amount) {
		return types.ErrInsufficientAllowance.Wrapf("%s may spend %s of %s, needs %s",
			spender.Hex(), allowance, from.Hex(), amount)
	}
	if err := k.Transfer(ctx, token, from, to, amount); err != nil {
		return err
	}
	return k.setAmount(ctx, types.AllowanceKey(token, from, spender), allowance.Sub(amount))
}

func (k Keeper) getAmount(ctx context.Context, key []byte) math.Int {
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return math.ZeroInt()
	}

	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(err)
	}
	return amount
}

func (k Keeper) setAmount(ctx context.Context, key []byte, amount math.Int) error {
	store := k.getStore(ctx)
	if amount.IsZero() {
		store.Delete(key)
		return nil
	}

	bz, err := amount.Marshal()
	if err != nil {
		return err
	}
	store.Set(key, bz)
	return nil
}

func validateAmount(amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("amount must be positive")
	}
	return nil
}

func safeAdd(a, b math.Int) (math.Int, error) {
	sum, err := a.SafeAdd(b)
	if err != nil {
		return math.Int{}, types.ErrOverflow.Wrapf("%s + %s", a, b)
	}
	return sum, nil
}
