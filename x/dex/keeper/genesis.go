package keeper

import (
	"context"
	"fmt"

	"github.com/simpledex/simpledex/x/dex/types"
)

// InitGenesis initializes the dex module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid dex genesis: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	k.SetNextPoolID(ctx, genState.NextPoolId)

	for _, pool := range genState.Pools {
		if err := k.SetPool(ctx, pool); err != nil {
			return fmt.Errorf("failed to set pool %d: %w", pool.Id, err)
		}
		k.setPoolByTokens(ctx, pool.TokenA, pool.TokenB, pool.Id)
		k.recordReserves(pool)
	}
	k.metrics.PoolsTotal.Set(float64(len(genState.Pools)))

	return nil
}

// ExportGenesis exports the dex module's state to a genesis state
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get params: %w", err)
	}

	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pools: %w", err)
	}

	return &types.GenesisState{
		Params:     params,
		Pools:      pools,
		NextPoolId: k.PeekNextPoolID(ctx),
	}, nil
}
