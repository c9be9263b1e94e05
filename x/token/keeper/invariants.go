package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/simpledex/simpledex/x/token/types"
)

// RegisterInvariants registers the token ledger invariants.
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "total-supply", TotalSupplyInvariant(k))
}

// TotalSupplyInvariant checks that every token's balances sum to its supply.
func TotalSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		tokens, err := k.GetAllTokens(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "total-supply", err.Error()), true
		}

		for _, token := range tokens {
			balances, err := k.GetTokenBalances(ctx, token.Address)
			if err != nil {
				return sdk.FormatInvariant(types.ModuleName, "total-supply", err.Error()), true
			}
			sum := math.ZeroInt()
			for _, b := range balances {
				sum = sum.Add(b.Amount)
			}
			if !sum.Equal(token.TotalSupply) {
				count++
				msg += fmt.Sprintf("token %s: supply %s, balances sum to %s\n", token.Address.Hex(), token.TotalSupply, sum)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "total-supply",
			fmt.Sprintf("found %d tokens with mismatched supply\n%s", count, msg),
		), broken
	}
}
