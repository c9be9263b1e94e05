package keeper

import (
	"bytes"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/simpledex/simpledex/x/dex/types"
)

// RegisterInvariants registers all DEX invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-reserves", PoolReservesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "positive-reserves", PositiveReservesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "canonical-order", CanonicalOrderInvariant(k))
}

// AllInvariants runs all invariants of the DEX module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PoolReservesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = PositiveReservesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return CanonicalOrderInvariant(k)(ctx)
	}
}

// PoolReservesInvariant checks that the module account holds at least the
// sum of every pool's reserve of each token. Several pools can share a token,
// and anyone may send tokens to the module directly, so the check is >=.
func PoolReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-reserves", err.Error()), true
		}

		totals := make(map[common.Address]math.Int)
		var order []common.Address
		add := func(token common.Address, amount math.Int) {
			if existing, ok := totals[token]; ok {
				totals[token] = existing.Add(amount)
				return
			}
			totals[token] = amount
			order = append(order, token)
		}
		for _, pool := range pools {
			add(pool.TokenA, pool.ReserveA)
			add(pool.TokenB, pool.ReserveB)
		}

		moduleAddr := k.GetModuleAddress()
		for _, token := range order {
			balance := k.tokenKeeper.BalanceOf(ctx, token, moduleAddr)
			if balance.LT(totals[token]) {
				count++
				msg += fmt.Sprintf("token %s: module balance (%s) < total reserves (%s)\n",
					token.Hex(), balance, totals[token])
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-reserves",
			fmt.Sprintf("found %d tokens with insufficient module balance\n%s", count, msg),
		), broken
	}
}

// PositiveReservesInvariant checks that a pool is either untouched (both
// reserves zero) or funded on both sides.
func PositiveReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "positive-reserves", err.Error()), true
		}

		for _, pool := range pools {
			if pool.ReserveA.IsNil() || pool.ReserveB.IsNil() || pool.ReserveA.IsNegative() || pool.ReserveB.IsNegative() {
				count++
				msg += fmt.Sprintf("pool %d: reserves are nil or negative (%s, %s)\n", pool.Id, pool.ReserveA, pool.ReserveB)
				continue
			}
			if pool.ReserveA.IsZero() != pool.ReserveB.IsZero() {
				count++
				msg += fmt.Sprintf("pool %d: one-sided reserves (%s, %s)\n", pool.Id, pool.ReserveA, pool.ReserveB)
			}
			if pool.Id == 0 {
				count++
				msg += "pool has zero ID\n"
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "positive-reserves",
			fmt.Sprintf("found %d pools with invalid reserves\n%s", count, msg),
		), broken
	}
}

// CanonicalOrderInvariant checks that every pool stores its tokens in
// ascending order and that the pair index points back at it.
func CanonicalOrderInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "canonical-order", err.Error()), true
		}

		for _, pool := range pools {
			if bytes.Compare(pool.TokenA.Bytes(), pool.TokenB.Bytes()) >= 0 {
				count++
				msg += fmt.Sprintf("pool %d: tokens out of order (%s, %s)\n", pool.Id, pool.TokenA.Hex(), pool.TokenB.Hex())
			}
			if id, found := k.getPoolIDByTokens(ctx, pool.TokenA, pool.TokenB); !found || id != pool.Id {
				count++
				msg += fmt.Sprintf("pool %d: pair index points to %d\n", pool.Id, id)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "canonical-order",
			fmt.Sprintf("found %d pools with broken ordering\n%s", count, msg),
		), broken
	}
}
