package types

import (
	"bytes"
	"fmt"
	"math/big"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// Pool holds the reserves of one unordered token pair. TokenA always sorts
// before TokenB; use Reserves to read them in caller order.
type Pool struct {
	Id       uint64         `json:"id"`
	TokenA   common.Address `json:"token_a"`
	TokenB   common.Address `json:"token_b"`
	ReserveA math.Int       `json:"reserve_a"`
	ReserveB math.Int       `json:"reserve_b"`
}

// NewPool returns an empty pool for the pair in canonical order.
func NewPool(id uint64, tokenA, tokenB common.Address) Pool {
	lo, hi := SortTokens(tokenA, tokenB)
	return Pool{
		Id:       id,
		TokenA:   lo,
		TokenB:   hi,
		ReserveA: math.ZeroInt(),
		ReserveB: math.ZeroInt(),
	}
}

// HasToken reports whether token is one side of the pool.
func (p Pool) HasToken(token common.Address) bool {
	return token == p.TokenA || token == p.TokenB
}

// Reserves returns the reserves ordered as (tokenX, tokenY). The pair must
// match the pool in either order.
func (p Pool) Reserves(tokenX, tokenY common.Address) (math.Int, math.Int, error) {
	if tokenX == tokenY || !p.HasToken(tokenX) || !p.HasToken(tokenY) {
		return math.Int{}, math.Int{}, ErrInvalidPair.Wrapf("pool %d holds %s/%s, got %s/%s",
			p.Id, p.TokenA.Hex(), p.TokenB.Hex(), tokenX.Hex(), tokenY.Hex())
	}
	if tokenX == p.TokenA {
		return p.ReserveA, p.ReserveB, nil
	}
	return p.ReserveB, p.ReserveA, nil
}

// IsEmpty reports whether either reserve is zero.
func (p Pool) IsEmpty() bool {
	return p.ReserveA.IsZero() || p.ReserveB.IsZero()
}

// Product returns reserveA * reserveB. It can exceed 256 bits and is
// therefore kept as a big.Int.
func (p Pool) Product() *big.Int {
	return new(big.Int).Mul(p.ReserveA.BigInt(), p.ReserveB.BigInt())
}

// Validate checks the stored invariants of a pool.
func (p Pool) Validate() error {
	if p.Id == 0 {
		return fmt.Errorf("pool id cannot be zero")
	}
	if p.TokenA == (common.Address{}) || p.TokenB == (common.Address{}) {
		return ErrInvalidPair.Wrapf("pool %d has a zero token address", p.Id)
	}
	if p.TokenA == p.TokenB {
		return ErrInvalidPair.Wrapf("pool %d has identical tokens", p.Id)
	}
	if bytes.Compare(p.TokenA.Bytes(), p.TokenB.Bytes()) > 0 {
		return ErrInvalidPair.Wrapf("pool %d tokens are not in canonical order", p.Id)
	}
	if p.ReserveA.IsNil() || p.ReserveB.IsNil() {
		return ErrInvalidAmount.Wrapf("pool %d has nil reserves", p.Id)
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() {
		return ErrInvalidAmount.Wrapf("pool %d has negative reserves", p.Id)
	}
	if p.ReserveA.IsZero() != p.ReserveB.IsZero() {
		return ErrEmptyPool.Wrapf("pool %d has exactly one zero reserve", p.Id)
	}
	return nil
}

// String implements fmt.Stringer.
func (p Pool) String() string {
	return fmt.Sprintf("pool %d: %s %s / %s %s", p.Id, p.ReserveA, p.TokenA.Hex(), p.ReserveB, p.TokenB.Hex())
}
