package app

import (
	"encoding/json"
	"fmt"
	"os"

	dextypes "github.com/simpledex/simpledex/x/dex/types"
	tokentypes "github.com/simpledex/simpledex/x/token/types"
)

// GenesisState represents the genesis state of the simpledex ledger, keyed by
// module name.
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState returns an empty ledger with default dex params.
func NewDefaultGenesisState() GenesisState {
	genesis := make(GenesisState, len(ModuleBasics))
	for _, b := range ModuleBasics {
		genesis[b.Name()] = b.DefaultGenesis()
	}
	return genesis
}

// TokenGenesis decodes the token module's section. A missing section is the
// default genesis.
func (gs GenesisState) TokenGenesis() (*tokentypes.GenesisState, error) {
	state := tokentypes.DefaultGenesis()
	if raw, ok := gs[tokentypes.ModuleName]; ok {
		if err := json.Unmarshal(raw, state); err != nil {
			return nil, fmt.Errorf("decode %s genesis: %w", tokentypes.ModuleName, err)
		}
	}
	return state, nil
}

// DexGenesis decodes the dex module's section. A missing section is the
// default genesis.
func (gs GenesisState) DexGenesis() (*dextypes.GenesisState, error) {
	state := dextypes.DefaultGenesis()
	if raw, ok := gs[dextypes.ModuleName]; ok {
		if err := json.Unmarshal(raw, state); err != nil {
			return nil, fmt.Errorf("decode %s genesis: %w", dextypes.ModuleName, err)
		}
	}
	return state, nil
}

// WithModule returns a copy of gs with module's section replaced by state.
func (gs GenesisState) WithModule(module string, state interface{}) (GenesisState, error) {
	bz, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode %s genesis: %w", module, err)
	}
	out := make(GenesisState, len(gs)+1)
	for k, v := range gs {
		out[k] = v
	}
	out[module] = bz
	return out, nil
}

// Validate decodes and validates every module section.
func (gs GenesisState) Validate() error {
	for _, b := range ModuleBasics {
		if err := b.ValidateGenesis(gs[b.Name()]); err != nil {
			return fmt.Errorf("%s genesis: %w", b.Name(), err)
		}
	}
	return nil
}

// GenesisFile is the on-disk genesis document.
type GenesisFile struct {
	ChainID  string       `json:"chain_id"`
	AppState GenesisState `json:"app_state"`
}

// ReadGenesisFile loads a genesis document.
func ReadGenesisFile(path string) (*GenesisFile, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genesis: %w", err)
	}
	var doc GenesisFile
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, fmt.Errorf("decode genesis: %w", err)
	}
	if doc.AppState == nil {
		doc.AppState = NewDefaultGenesisState()
	}
	return &doc, nil
}

// WriteGenesisFile stores a genesis document with 0600 permissions.
func WriteGenesisFile(path string, doc *GenesisFile) error {
	bz, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode genesis: %w", err)
	}
	return os.WriteFile(path, bz, 0o600)
}
