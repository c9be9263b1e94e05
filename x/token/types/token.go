package types

import (
	"strings"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// DefaultDecimals matches the 18 decimal places of the ERC20 test tokens.
const DefaultDecimals = 18

const (
	maxNameLength   = 64
	maxSymbolLength = 16
)

// Token is the metadata of a deployed fungible token.
type Token struct {
	Address     common.Address `json:"address"`
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	Decimals    uint8          `json:"decimals"`
	TotalSupply math.Int       `json:"total_supply"`
	Owner       common.Address `json:"owner"`
}

// ValidateMetadata checks name, symbol and decimals.
func ValidateMetadata(name, symbol string, decimals uint8) error {
	name = strings.TrimSpace(name)
	symbol = strings.TrimSpace(symbol)
	if name == "" || len(name) > maxNameLength {
		return ErrInvalidMetadata.Wrapf("name must be 1-%d characters", maxNameLength)
	}
	if symbol == "" || len(symbol) > maxSymbolLength {
		return ErrInvalidMetadata.Wrapf("symbol must be 1-%d characters", maxSymbolLength)
	}
	if decimals > 36 {
		return ErrInvalidMetadata.Wrapf("decimals %d out of range", decimals)
	}
	return nil
}

// Validate checks a stored token.
func (t Token) Validate() error {
	if t.Address == (common.Address{}) {
		return ErrInvalidAddress.Wrap("token address cannot be zero")
	}
	if t.Owner == (common.Address{}) {
		return ErrInvalidAddress.Wrapf("token %s has no owner", t.Address.Hex())
	}
	if t.TotalSupply.IsNil() || t.TotalSupply.IsNegative() {
		return ErrInvalidAmount.Wrapf("token %s has invalid supply", t.Address.Hex())
	}
	return ValidateMetadata(t.Name, t.Symbol, t.Decimals)
}
