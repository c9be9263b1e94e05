package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/simpledex/simpledex/x/token/types"
)

// InitGenesis loads the token ledger from a genesis state.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid token genesis: %w", err)
	}

	for _, token := range genState.Tokens {
		if err := k.SetToken(ctx, token); err != nil {
			return err
		}
	}
	for _, b := range genState.Balances {
		if err := k.setAmount(ctx, types.BalanceKey(b.Token, b.Account), b.Amount); err != nil {
			return err
		}
	}
	for _, a := range genState.Allowances {
		if err := k.setAmount(ctx, types.AllowanceKey(a.Token, a.Owner, a.Spender), a.Amount); err != nil {
			return err
		}
	}
	for _, n := range genState.Nonces {
		k.SetNonce(ctx, n.Deployer, n.Nonce)
	}
	return nil
}

// ExportGenesis returns the token ledger as a genesis state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	gs := types.DefaultGenesis()

	tokens, err := k.GetAllTokens(ctx)
	if err != nil {
		return nil, err
	}
	gs.Tokens = tokens

	err = k.iterateAmounts(ctx, types.BalanceKeyPrefix, func(key []byte, amount math.Int) {
		gs.Balances = append(gs.Balances, types.Balance{
			Token:   common.BytesToAddress(key[0:common.AddressLength]),
			Account: common.BytesToAddress(key[common.AddressLength : 2*common.AddressLength]),
			Amount:  amount,
		})
	})
	if err != nil {
		return nil, err
	}

	err = k.iterateAmounts(ctx, types.AllowanceKeyPrefix, func(key []byte, amount math.Int) {
		gs.Allowances = append(gs.Allowances, types.Allowance{
			Token:   common.BytesToAddress(key[0:common.AddressLength]),
			Owner:   common.BytesToAddress(key[common.AddressLength : 2*common.AddressLength]),
			Spender: common.BytesToAddress(key[2*common.AddressLength : 3*common.AddressLength]),
			Amount:  amount,
		})
	})
	if err != nil {
		return nil, err
	}

	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.NonceKeyPrefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		gs.Nonces = append(gs.Nonces, types.DeployerNonce{
			Deployer: common.BytesToAddress(iterator.Key()[len(types.NonceKeyPrefix):]),
			Nonce:    sdk.BigEndianToUint64(iterator.Value()),
		})
	}
	return gs, nil
}

// GetTokenBalances returns every non-zero balance of a token.
func (k Keeper) GetTokenBalances(ctx context.Context, token common.Address) ([]types.Balance, error) {
	balances := []types.Balance{}
	prefix := types.BalanceKeyByTokenPrefix(token)
	err := k.iterateAmounts(ctx, prefix, func(key []byte, amount math.Int) {
		balances = append(balances, types.Balance{
			Token:   token,
			Account: common.BytesToAddress(key),
			Amount:  amount,
		})
	})
	return balances, err
}

// iterateAmounts walks every amount stored under prefix, passing the key with
// the prefix stripped.
func (k Keeper) iterateAmounts(ctx context.Context, prefix []byte, cb func(key []byte, amount math.Int)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("decode amount at %x: %w", iterator.Key(), err)
		}
		cb(iterator.Key()[len(prefix):], amount)
	}
	return nil
}
