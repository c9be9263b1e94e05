package types

import (
	"github.com/ethereum/go-ethereum/common"
)

const (
	// ModuleName defines the module name
	ModuleName = "token"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes
var (
	TokenKeyPrefix     = []byte{0x01} // token -> Token
	BalanceKeyPrefix   = []byte{0x02} // token | account -> amount
	AllowanceKeyPrefix = []byte{0x03} // token | owner | spender -> amount
	NonceKeyPrefix     = []byte{0x04} // deployer -> deployment nonce
)

// TokenKey returns the store key for a token's metadata
func TokenKey(token common.Address) []byte {
	return concat(TokenKeyPrefix, token.Bytes())
}

// BalanceKey returns the store key for an account balance of a token
func BalanceKey(token, account common.Address) []byte {
	return concat(BalanceKeyPrefix, token.Bytes(), account.Bytes())
}

// BalanceKeyByTokenPrefix returns the prefix of every balance of a token
func BalanceKeyByTokenPrefix(token common.Address) []byte {
	return concat(BalanceKeyPrefix, token.Bytes())
}

// AllowanceKey returns the store key for the amount spender may move on
// behalf of owner.
func AllowanceKey(token, owner, spender common.Address) []byte {
	return concat(AllowanceKeyPrefix, token.Bytes(), owner.Bytes(), spender.Bytes())
}

// NonceKey returns the store key for a deployer's deployment nonce
func NonceKey(deployer common.Address) []byte {
	return concat(NonceKeyPrefix, deployer.Bytes())
}

func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}
