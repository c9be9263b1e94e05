package token

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/simpledex/simpledex/x/token/keeper"
	"github.com/simpledex/simpledex/x/token/types"
)

// AppModuleBasic is the token ledger's genesis handling.
type AppModuleBasic struct{}

func (AppModuleBasic) Name() string {
	return types.ModuleName
}

func (AppModuleBasic) DefaultGenesis() json.RawMessage {
	bz, err := json.Marshal(types.DefaultGenesis())
	if err != nil {
		panic(err)
	}
	return bz
}

func (AppModuleBasic) ValidateGenesis(bz json.RawMessage) error {
	genState, err := decodeGenesis(bz)
	if err != nil {
		return err
	}
	return genState.Validate()
}

// AppModule wires the token keeper into the app.
type AppModule struct {
	AppModuleBasic

	keeper keeper.Keeper
}

func NewAppModule(keeper keeper.Keeper) AppModule {
	return AppModule{keeper: keeper}
}

func (am AppModule) RegisterInvariants(ir sdk.InvariantRegistry) {
	keeper.RegisterInvariants(ir, am.keeper)
}

// InitGenesis loads tokens, balances, allowances and deployer nonces.
func (am AppModule) InitGenesis(ctx sdk.Context, bz json.RawMessage) error {
	genState, err := decodeGenesis(bz)
	if err != nil {
		return err
	}
	return am.keeper.InitGenesis(ctx, *genState)
}

func (am AppModule) ExportGenesis(ctx sdk.Context) (json.RawMessage, error) {
	genState, err := am.keeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(genState)
}

func decodeGenesis(bz json.RawMessage) (*types.GenesisState, error) {
	genState := types.DefaultGenesis()
	if len(bz) == 0 {
		return genState, nil
	}
	if err := json.Unmarshal(bz, genState); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
	}
	return genState, nil
}
