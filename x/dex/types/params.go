package types

import (
	"encoding/json"

	"cosmossdk.io/math"
)

// PriceDecimals is the fixed-point precision of prices and of the tokens the
// engine is designed around.
const PriceDecimals = 18

// PriceScale is 10^PriceDecimals, the value of one whole unit.
var PriceScale = math.NewIntWithDecimal(1, PriceDecimals)

// Params defines the tunable parameters of the dex module.
type Params struct {
	// SwapFee is the fraction of amountIn withheld from pricing and left in
	// the pool. Zero reproduces the plain constant-product curve.
	SwapFee math.LegacyDec `json:"swap_fee"`
}

// NewParams creates a Params instance
func NewParams(swapFee math.LegacyDec) Params {
	return Params{SwapFee: swapFee}
}

// DefaultParams returns default parameters for the dex module
func DefaultParams() Params {
	return Params{
		SwapFee: math.LegacyZeroDec(),
	}
}

// Validate validates the params
func (p Params) Validate() error {
	if p.SwapFee.IsNil() {
		return ErrInvalidParams.Wrap("swap fee cannot be nil")
	}
	if p.SwapFee.IsNegative() || p.SwapFee.GTE(math.LegacyOneDec()) {
		return ErrInvalidParams.Wrapf("swap fee must be in [0,1), got %s", p.SwapFee)
	}
	return nil
}

// String implements fmt.Stringer.
func (p Params) String() string {
	bz, _ := json.Marshal(p)
	return string(bz)
}
