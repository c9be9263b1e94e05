package types

import (
	"cosmossdk.io/errors"
)

// DEX module sentinel errors
var (
	ErrInvalidPair      = errors.Register(ModuleName, 2, "invalid token pair")
	ErrDuplicatePool    = errors.Register(ModuleName, 3, "pool already exists")
	ErrPoolNotFound     = errors.Register(ModuleName, 4, "pool not found")
	ErrEmptyPool        = errors.Register(ModuleName, 5, "pool has insufficient reserves")
	ErrInvalidAmount    = errors.Register(ModuleName, 6, "invalid amount")
	ErrSlippageExceeded = errors.Register(ModuleName, 7, "output amount less than minimum required")
	ErrOverflow         = errors.Register(ModuleName, 8, "arithmetic overflow")
	ErrInvalidToken     = errors.Register(ModuleName, 9, "unknown token")
	ErrInvalidParams    = errors.Register(ModuleName, 10, "invalid params")
	ErrInvariantBroken  = errors.Register(ModuleName, 11, "pool invariant broken")
	ErrInvalidAddress   = errors.Register(ModuleName, 12, "invalid address")
)
