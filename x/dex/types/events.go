package types

// Event types for the DEX module
const (
	EventTypeCreatePool   = "create_pool"
	EventTypeAddLiquidity = "add_liquidity"
	EventTypeSwap         = "swap"

	AttributeKeyPoolID       = "pool_id"
	AttributeKeyTokenA       = "token_a"
	AttributeKeyTokenB       = "token_b"
	AttributeKeyAmountA      = "amount_a"
	AttributeKeyAmountB      = "amount_b"
	AttributeKeyReserveA     = "reserve_a"
	AttributeKeyReserveB     = "reserve_b"
	AttributeKeyTokenIn      = "token_in"
	AttributeKeyTokenOut     = "token_out"
	AttributeKeyAmountIn     = "amount_in"
	AttributeKeyAmountOut    = "amount_out"
	AttributeKeyMinAmountOut = "min_amount_out"
	AttributeKeyCreator      = "creator"
	AttributeKeyProvider     = "provider"
	AttributeKeyTrader       = "trader"
)
