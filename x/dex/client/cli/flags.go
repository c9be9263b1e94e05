package cli

// Flag constants for dex CLI commands
const (
	FlagMinAmountOut = "min-amount-out"
	FlagSlippage     = "slippage"

	// DefaultSlippage is the tolerance applied to a quote when no minimum
	// output is given, as a fraction of the quoted amount.
	DefaultSlippage = "0.005"
)
