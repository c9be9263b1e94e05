package types

import (
	"context"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// TokenKeeper is the token transfer service the dex module moves custody
// through. Implemented by x/token/keeper.
type TokenKeeper interface {
	HasToken(ctx context.Context, token common.Address) bool
	BalanceOf(ctx context.Context, token, account common.Address) math.Int
	Transfer(ctx context.Context, token, from, to common.Address, amount math.Int) error
	TransferFrom(ctx context.Context, token, spender, from, to common.Address, amount math.Int) error
}
