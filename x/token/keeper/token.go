package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/simpledex/simpledex/x/token/types"
)

// Deploy creates a new token owned by deployer and credits the initial
// supply to it. The address follows the EVM CREATE rule on the deployer's
// nonce, so repeated deployments from one account never collide.
func (k Keeper) Deploy(ctx context.Context, deployer common.Address, name, symbol string, decimals uint8, initialSupply math.Int) (common.Address, error) {
	if deployer == (common.Address{}) {
		return common.Address{}, types.ErrInvalidAddress.Wrap("deployer cannot be the zero address")
	}
	if err := types.ValidateMetadata(name, symbol, decimals); err != nil {
		return common.Address{}, err
	}
	if initialSupply.IsNil() || initialSupply.IsNegative() {
		return common.Address{}, types.ErrInvalidAmount.Wrap("initial supply cannot be negative")
	}

	nonce := k.GetNonce(ctx, deployer)
	addr := crypto.CreateAddress(deployer, nonce)
	if k.HasToken(ctx, addr) {
		return common.Address{}, types.ErrInvalidAddress.Wrapf("token already deployed at %s", addr.Hex())
	}
	k.SetNonce(ctx, deployer, nonce+1)

	token := types.Token{
		Address:     addr,
		Name:        name,
		Symbol:      symbol,
		Decimals:    decimals,
		TotalSupply: math.ZeroInt(),
		Owner:       deployer,
	}
	if err := k.SetToken(ctx, token); err != nil {
		return common.Address{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDeploy,
			sdk.NewAttribute(types.AttributeKeyToken, addr.Hex()),
			sdk.NewAttribute(types.AttributeKeySymbol, symbol),
			sdk.NewAttribute(types.AttributeKeyDeployer, deployer.Hex()),
		),
	)

	if initialSupply.IsPositive() {
		if err := k.mint(ctx, token, deployer, initialSupply); err != nil {
			return common.Address{}, err
		}
	}

	k.Logger(ctx).Info("token deployed", "token", addr.Hex(), "symbol", symbol, "supply", initialSupply.String())
	return addr, nil
}

// GetToken returns a token's metadata.
func (k Keeper) GetToken(ctx context.Context, addr common.Address) (types.Token, error) {
	bz := k.getStore(ctx).Get(types.TokenKey(addr))
	if bz == nil {
		return types.Token{}, types.ErrTokenNotFound.Wrapf("no token at %s", addr.Hex())
	}

	var token types.Token
	if err := json.Unmarshal(bz, &token); err != nil {
		return types.Token{}, fmt.Errorf("GetToken: unmarshal: %w", err)
	}
	return token, nil
}

// HasToken reports whether a token is deployed at addr.
func (k Keeper) HasToken(ctx context.Context, addr common.Address) bool {
	return k.getStore(ctx).Has(types.TokenKey(addr))
}

// SetToken stores a token's metadata.
func (k Keeper) SetToken(ctx context.Context, token types.Token) error {
	bz, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("SetToken: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.TokenKey(token.Address), bz)
	return nil
}

// IterateTokens calls cb for every token in address order until cb returns true.
func (k Keeper) IterateTokens(ctx context.Context, cb func(types.Token) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.TokenKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var token types.Token
		if err := json.Unmarshal(iterator.Value(), &token); err != nil {
			return fmt.Errorf("IterateTokens: unmarshal: %w", err)
		}
		if cb(token) {
			break
		}
	}
	return nil
}

// GetAllTokens returns every deployed token.
func (k Keeper) GetAllTokens(ctx context.Context) ([]types.Token, error) {
	tokens := []types.Token{}
	err := k.IterateTokens(ctx, func(t types.Token) bool {
		tokens = append(tokens, t)
		return false
	})
	return tokens, err
}

// GetNonce returns the deployment nonce of an account.
func (k Keeper) GetNonce(ctx context.Context, deployer common.Address) uint64 {
	bz := k.getStore(ctx).Get(types.NonceKey(deployer))
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

// SetNonce sets the deployment nonce of an account.
func (k Keeper) SetNonce(ctx context.Context, deployer common.Address, nonce uint64) {
	k.getStore(ctx).Set(types.NonceKey(deployer), sdk.Uint64ToBigEndian(nonce))
}
