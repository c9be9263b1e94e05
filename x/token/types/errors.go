package types

import (
	"cosmossdk.io/errors"
)

// Token module sentinel errors
var (
	ErrTokenNotFound         = errors.Register(ModuleName, 2, "token not found")
	ErrInsufficientBalance   = errors.Register(ModuleName, 3, "transfer amount exceeds balance")
	ErrInsufficientAllowance = errors.Register(ModuleName, 4, "insufficient allowance")
	ErrUnauthorized          = errors.Register(ModuleName, 5, "caller is not the token owner")
	ErrInvalidAmount         = errors.Register(ModuleName, 6, "invalid amount")
	ErrInvalidMetadata       = errors.Register(ModuleName, 7, "invalid token metadata")
	ErrOverflow              = errors.Register(ModuleName, 8, "arithmetic overflow")
	ErrInvalidAddress        = errors.Register(ModuleName, 9, "invalid address")
	ErrSupplyInvariantBroken = errors.Register(ModuleName, 10, "total supply does not match balances")
)
