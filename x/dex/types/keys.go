package types

import (
	"bytes"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// ModuleName defines the module name
	ModuleName = "dex"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// ModuleAddress is the custody account holding every pool's reserves.
var ModuleAddress = common.BytesToAddress(crypto.Keccak256([]byte(ModuleName)))

// Store key prefixes
var (
	PoolKeyPrefix         = []byte{0x01} // pool id -> Pool
	PoolCountKey          = []byte{0x02} // next pool id
	PoolByTokensKeyPrefix = []byte{0x03} // canonical pair -> pool id
	ParamsKey             = []byte{0x04}
)

// SortTokens returns the pair in canonical (byte-lexicographic) order.
func SortTokens(tokenA, tokenB common.Address) (common.Address, common.Address) {
	if bytes.Compare(tokenA.Bytes(), tokenB.Bytes()) > 0 {
		return tokenB, tokenA
	}
	return tokenA, tokenB
}

// PairKey returns the order independent identifier of an unordered pair.
// PairKey(a, b) == PairKey(b, a) for all a, b.
func PairKey(tokenA, tokenB common.Address) []byte {
	lo, hi := SortTokens(tokenA, tokenB)
	key := make([]byte, 0, 2*common.AddressLength)
	key = append(key, lo.Bytes()...)
	return append(key, hi.Bytes()...)
}

// PoolKey returns the store key for a pool by ID
func PoolKey(poolID uint64) []byte {
	return append(append([]byte{}, PoolKeyPrefix...), Uint64ToBigEndian(poolID)...)
}

// PoolByTokensKey returns the store key indexing a pool by its token pair
func PoolByTokensKey(tokenA, tokenB common.Address) []byte {
	return append(append([]byte{}, PoolByTokensKeyPrefix...), PairKey(tokenA, tokenB)...)
}

// Uint64ToBigEndian encodes i as 8 big-endian bytes.
func Uint64ToBigEndian(i uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, i)
	return b
}

// BigEndianToUint64 decodes an 8 byte big-endian value. Short input yields 0.
func BigEndianToUint64(bz []byte) uint64 {
	if len(bz) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}
