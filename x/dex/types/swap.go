package types

import (
	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// SwapQuote describes the outcome of a swap against the current reserves
// without executing it.
type SwapQuote struct {
	TokenIn     common.Address `json:"token_in"`
	TokenOut    common.Address `json:"token_out"`
	AmountIn    math.Int       `json:"amount_in"`
	AmountOut   math.Int       `json:"amount_out"`
	Fee         math.Int       `json:"fee"`
	SpotPrice   math.LegacyDec `json:"spot_price"`
	PriceAfter  math.LegacyDec `json:"price_after"`
	PriceImpact math.LegacyDec `json:"price_impact"`
}
