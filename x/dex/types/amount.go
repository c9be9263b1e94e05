package types

import "math/big"

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// MaxUint256 returns 2^256-1, the largest amount a reserve may hold.
func MaxUint256() *big.Int {
	return new(big.Int).Set(maxUint256)
}
