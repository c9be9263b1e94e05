package simulation_test

import (
	"context"
	"math/rand"
	"testing"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"
	"github.com/stretchr/testify/require"

	"github.com/simpledex/simpledex/app"
	"github.com/simpledex/simpledex/x/dex/simulation"
)

func newSimApp(t *testing.T) *app.DexApp {
	t.Helper()
	dexApp, err := app.NewDexApp(log.NewNopLogger(), dbm.NewMemDB(), app.Options{CheckInvariants: true})
	require.NoError(t, err)
	require.NoError(t, dexApp.InitChain(app.NewDefaultGenesisState()))
	t.Cleanup(func() { _ = dexApp.Close() })
	return dexApp
}

func runSimulation(t *testing.T, seed int64, numOps int) (*app.DexApp, []simulation.OperationMsg) {
	t.Helper()
	ctx := context.Background()
	r := rand.New(rand.NewSource(seed))
	dexApp := newSimApp(t)

	state, err := simulation.Setup(ctx, r, dexApp, 5, 4)
	require.NoError(t, err)

	ops := simulation.WeightedOperations(simtypes.AppParams{})
	msgs, err := simulation.SimulateFromSeed(ctx, r, dexApp, state, ops, numOps)
	require.NoError(t, err)
	return dexApp, msgs
}

func TestWeightedOperationsDefaults(t *testing.T) {
	ops := simulation.WeightedOperations(simtypes.AppParams{})
	require.Len(t, ops, 3)
	require.Equal(t, simulation.DefaultWeightMsgCreatePool, ops[0].Weight)
	require.Equal(t, simulation.DefaultWeightMsgAddLiquidity, ops[1].Weight)
	require.Equal(t, simulation.DefaultWeightMsgSwap, ops[2].Weight)

	params := simtypes.AppParams{simulation.OpWeightMsgSwap: []byte("7")}
	ops = simulation.WeightedOperations(params)
	require.Equal(t, 7, ops[2].Weight)
}

func TestSimulationKeepsInvariants(t *testing.T) {
	dexApp, msgs := runSimulation(t, 42, 300)
	require.Len(t, msgs, 300)

	executed := make(map[string]int)
	for _, msg := range msgs {
		if msg.OK {
			executed[msg.Name]++
		}
	}
	require.Positive(t, executed[simulation.TypeMsgCreatePool])
	require.Positive(t, executed[simulation.TypeMsgAddLiquidity])
	require.Positive(t, executed[simulation.TypeMsgSwap])

	msg, broken := dexApp.CheckInvariants()
	require.False(t, broken, msg)

	pools, err := dexApp.Pools()
	require.NoError(t, err)
	// four tokens allow at most six pairs
	require.LessOrEqual(t, len(pools), 6)
}

func TestSimulationIsDeterministic(t *testing.T) {
	first, _ := runSimulation(t, 7, 120)
	second, _ := runSimulation(t, 7, 120)

	require.Equal(t, first.LastBlockHeight(), second.LastBlockHeight())
	require.Equal(t, first.LastCommitID().Hash, second.LastCommitID().Hash)
}

func TestSetupRejectsTinyPopulation(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	_, err := simulation.Setup(context.Background(), r, newSimApp(t), 1, 1)
	require.Error(t, err)
}
