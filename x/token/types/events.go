package types

// Event types for the token module
const (
	EventTypeDeploy   = "token_deploy"
	EventTypeMint     = "token_mint"
	EventTypeTransfer = "token_transfer"
	EventTypeApproval = "token_approval"

	AttributeKeyToken    = "token"
	AttributeKeySymbol   = "symbol"
	AttributeKeyOwner    = "owner"
	AttributeKeySpender  = "spender"
	AttributeKeyFrom     = "from"
	AttributeKeyTo       = "to"
	AttributeKeyAmount   = "amount"
	AttributeKeyDeployer = "deployer"
)
