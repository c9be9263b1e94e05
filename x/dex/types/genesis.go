package types

import (
	"fmt"
)

// GenesisState defines the dex module's genesis state.
type GenesisState struct {
	Params     Params `json:"params"`
	Pools      []Pool `json:"pools"`
	NextPoolId uint64 `json:"next_pool_id"`
}

// DefaultGenesis returns the default genesis state for the DEX module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		Pools:      []Pool{},
		NextPoolId: 1,
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	seenIDs := make(map[uint64]struct{}, len(gs.Pools))
	seenPairs := make(map[string]uint64, len(gs.Pools))
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return err
		}
		if _, ok := seenIDs[pool.Id]; ok {
			return fmt.Errorf("duplicate pool id %d", pool.Id)
		}
		seenIDs[pool.Id] = struct{}{}

		pair := string(PairKey(pool.TokenA, pool.TokenB))
		if other, ok := seenPairs[pair]; ok {
			return ErrDuplicatePool.Wrapf("pools %d and %d share the pair %s/%s",
				other, pool.Id, pool.TokenA.Hex(), pool.TokenB.Hex())
		}
		seenPairs[pair] = pool.Id

		if pool.Id >= gs.NextPoolId {
			return fmt.Errorf("pool id %d must be below next pool id %d", pool.Id, gs.NextPoolId)
		}
	}

	if gs.NextPoolId == 0 {
		return fmt.Errorf("next pool id must be positive")
	}
	return nil
}
