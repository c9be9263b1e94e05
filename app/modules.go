package app

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/simpledex/simpledex/x/dex"
	"github.com/simpledex/simpledex/x/token"
)

// AppModuleBasic is the genesis surface every module exposes without a
// keeper.
type AppModuleBasic interface {
	Name() string
	DefaultGenesis() json.RawMessage
	ValidateGenesis(json.RawMessage) error
}

// AppModule is a module bound to its keeper.
type AppModule interface {
	AppModuleBasic

	InitGenesis(ctx sdk.Context, bz json.RawMessage) error
	ExportGenesis(ctx sdk.Context) (json.RawMessage, error)
	RegisterInvariants(ir sdk.InvariantRegistry)
}

// ModuleBasics lists the modules in genesis order. Tokens load first since
// pool reserves are held as token balances of the dex module account.
var ModuleBasics = []AppModuleBasic{
	token.AppModuleBasic{},
	dex.AppModuleBasic{},
}

var (
	_ AppModule = token.AppModule{}
	_ AppModule = dex.AppModule{}
)
