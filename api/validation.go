package api

import (
	"strings"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	dextypes "github.com/simpledex/simpledex/x/dex/types"
)

// MaxAmountLength bounds decimal amount strings; 2^256 has 78 digits.
const MaxAmountLength = 78

// ParseAddress parses a 0x-prefixed hex address.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return common.Address{}, dextypes.ErrInvalidAddress.Wrapf("%q: missing 0x prefix", s)
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, dextypes.ErrInvalidAddress.Wrapf("%q is not a hex address", s)
	}
	return common.HexToAddress(s), nil
}

// ParseAmount parses a non-negative base-10 integer amount.
func ParseAmount(s string) (math.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > MaxAmountLength {
		return math.Int{}, dextypes.ErrInvalidAmount.Wrapf("invalid amount %q", s)
	}
	amount, ok := math.NewIntFromString(s)
	if !ok || amount.IsNegative() {
		return math.Int{}, dextypes.ErrInvalidAmount.Wrapf("invalid amount %q", s)
	}
	return amount, nil
}

// pathAddresses parses the named path params, replying 400 on the first bad
// one.
func pathAddresses(c *gin.Context, names ...string) ([]common.Address, bool) {
	out := make([]common.Address, len(names))
	for i, name := range names {
		addr, err := ParseAddress(c.Param(name))
		if err != nil {
			writeError(c, err)
			return nil, false
		}
		out[i] = addr
	}
	return out, true
}
