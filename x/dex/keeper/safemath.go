package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/simpledex/simpledex/x/dex/types"
)

// SafeMath provides overflow-checked arithmetic for reserve bookkeeping.
// Amounts are bounded to 256 bits like the uint256 balances of the token
// contracts; intermediate products are computed on unbounded big.Ints.

var maxUint256 = types.MaxUint256()

// SafeAdd adds two math.Int values with overflow checking
func SafeAdd(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	return fromBig(result, "addition")
}

// SafeSub subtracts two math.Int values with underflow checking
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, types.ErrOverflow.Wrapf("underflow: cannot subtract %s from %s", b, a)
	}
	return math.NewIntFromBigInt(new(big.Int).Sub(a.BigInt(), b.BigInt())), nil
}

// SafeMulDiv computes floor(a * b / c). The product may use more than 256
// bits; only the quotient has to fit.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrEmptyPool.Wrap("division by zero")
	}
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	result.Quo(result, c.BigInt())
	return fromBig(result, "multiplication")
}

func fromBig(v *big.Int, op string) (math.Int, error) {
	if v.Sign() < 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("%s result is negative", op)
	}
	if v.Cmp(maxUint256) > 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("%s result exceeds 256 bits", op)
	}
	return math.NewIntFromBigInt(v), nil
}
