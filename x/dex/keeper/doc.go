// Package keeper implements the DEX module keeper.
//
// The DEX module is a constant-product automated market maker over ERC20-style
// tokens held by the token module. Every unordered token pair has at most one
// pool; the pool stores its two reserves in canonical order (the numerically
// smaller token address first) and all public operations accept tokens in
// either order.
//
// # Core Functionality
//
// Pool Registry: CreatePool assigns sequential ids starting at 1 and indexes
// pools by id and by pair. GetPool, GetReserves and GetPoolByID look them up.
//
// Liquidity: AddLiquidity credits both reserves. No LP shares are minted and
// deposits are not ratio checked.
//
// Swaps: Swap and SimulateSwap price a trade with the floor of
// amountIn*(1-fee)*reserveOut / (reserveIn + amountIn*(1-fee)). A swap whose
// output rounds to zero, or falls below the caller's minimum, is rejected
// without touching state.
//
// Prices: GetPrice returns reserveQuote*10^18/reserveBase, floored.
//
// # Custody
//
// The keeper only moves reserve numbers. The msg server moves tokens between
// users and the module account (types.ModuleAddress) through the token keeper,
// pulling deposits with TransferFrom so users must approve the module first.
//
// # Metrics
//
// The keeper exposes Prometheus metrics for swaps, pools and liquidity changes
// via DEXMetrics.
package keeper
