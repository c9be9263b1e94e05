package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"
	"github.com/ethereum/go-ethereum/common"

	"github.com/simpledex/simpledex/app"
	"github.com/simpledex/simpledex/x/dex/types"
)

// Simulation operation weights constants
const (
	OpWeightMsgCreatePool   = "op_weight_msg_create_pool"
	OpWeightMsgAddLiquidity = "op_weight_msg_add_liquidity"
	OpWeightMsgSwap         = "op_weight_msg_swap"

	DefaultWeightMsgCreatePool   = 15
	DefaultWeightMsgAddLiquidity = 30
	DefaultWeightMsgSwap         = 50
)

const (
	TypeMsgCreatePool   = "create_pool"
	TypeMsgAddLiquidity = "add_liquidity"
	TypeMsgSwap         = "swap"
)

// OperationMsg records the outcome of one simulated operation. Skipped
// operations have OK false and a comment saying why.
type OperationMsg struct {
	Name    string
	OK      bool
	Comment string
	Height  int64
}

func noOpMsg(name, comment string) OperationMsg {
	return OperationMsg{Name: name, Comment: comment}
}

// Operation performs one random state transition against the ledger. A
// returned error means the ledger misbehaved; an expected rejection is
// reported as a no-op.
type Operation func(ctx context.Context, r *rand.Rand, dexApp *app.DexApp, state *State) (OperationMsg, error)

// WeightedOperation pairs an operation with its relative frequency.
type WeightedOperation struct {
	Weight int
	Op     Operation
}

// WeightedOperations returns all the DEX module operations with their
// respective weights. Missing entries in appParams take the defaults.
func WeightedOperations(appParams simtypes.AppParams) []WeightedOperation {
	var (
		weightMsgCreatePool   int
		weightMsgAddLiquidity int
		weightMsgSwap         int
	)

	appParams.GetOrGenerate(OpWeightMsgCreatePool, &weightMsgCreatePool, nil,
		func(_ *rand.Rand) {
			weightMsgCreatePool = DefaultWeightMsgCreatePool
		},
	)

	appParams.GetOrGenerate(OpWeightMsgAddLiquidity, &weightMsgAddLiquidity, nil,
		func(_ *rand.Rand) {
			weightMsgAddLiquidity = DefaultWeightMsgAddLiquidity
		},
	)

	appParams.GetOrGenerate(OpWeightMsgSwap, &weightMsgSwap, nil,
		func(_ *rand.Rand) {
			weightMsgSwap = DefaultWeightMsgSwap
		},
	)

	return []WeightedOperation{
		{Weight: weightMsgCreatePool, Op: SimulateMsgCreatePool()},
		{Weight: weightMsgAddLiquidity, Op: SimulateMsgAddLiquidity()},
		{Weight: weightMsgSwap, Op: SimulateMsgSwap()},
	}
}

// State is the simulated population: the accounts taking part and the
// tokens they hold.
type State struct {
	Accounts []simtypes.Account
	Tokens   []common.Address
}

// AccountAddress maps a simulated account onto a ledger address.
func AccountAddress(acc simtypes.Account) common.Address {
	return common.BytesToAddress(acc.Address)
}

// Setup deploys numTokens tokens from the first of numAccounts random
// accounts, funds every account and approves the dex module to pull each
// balance.
func Setup(ctx context.Context, r *rand.Rand, dexApp *app.DexApp, numAccounts, numTokens int) (*State, error) {
	if numAccounts < 1 || numTokens < 2 {
		return nil, fmt.Errorf("simulation needs at least one account and two tokens")
	}

	state := &State{Accounts: simtypes.RandomAccounts(r, numAccounts)}
	deployer := AccountAddress(state.Accounts[0])
	perAccount := math.NewIntWithDecimal(1, 24)

	for i := 0; i < numTokens; i++ {
		symbol := fmt.Sprintf("SIM%d", i)
		supply := perAccount.MulRaw(int64(numAccounts))
		addr, _, err := dexApp.DeployToken(ctx, deployer, symbol+" Token", symbol, 18, supply)
		if err != nil {
			return nil, fmt.Errorf("deploy %s: %w", symbol, err)
		}
		state.Tokens = append(state.Tokens, addr)

		for _, acc := range state.Accounts {
			holder := AccountAddress(acc)
			if holder != deployer {
				if _, err := dexApp.TransferToken(ctx, addr, deployer, holder, perAccount); err != nil {
					return nil, fmt.Errorf("fund %s: %w", holder.Hex(), err)
				}
			}
			if _, err := dexApp.ApproveToken(ctx, addr, holder, types.ModuleAddress, perAccount); err != nil {
				return nil, fmt.Errorf("approve %s: %w", holder.Hex(), err)
			}
		}
	}
	return state, nil
}

// SimulateMsgCreatePool opens a pool for a random unlisted pair.
func SimulateMsgCreatePool() Operation {
	return func(ctx context.Context, r *rand.Rand, dexApp *app.DexApp, state *State) (OperationMsg, error) {
		simAccount, _ := simtypes.RandomAcc(r, state.Accounts)

		tokenA := state.Tokens[r.Intn(len(state.Tokens))]
		tokenB := state.Tokens[r.Intn(len(state.Tokens))]
		if tokenA == tokenB {
			return noOpMsg(TypeMsgCreatePool, "same token"), nil
		}
		if _, err := dexApp.Pool(tokenA, tokenB); err == nil {
			return noOpMsg(TypeMsgCreatePool, "pool exists"), nil
		}

		msg := types.NewMsgCreatePool(AccountAddress(simAccount), tokenA, tokenB)
		_, res, err := dexApp.CreatePool(ctx, msg)
		if err != nil {
			return OperationMsg{}, fmt.Errorf("create pool: %w", err)
		}
		return OperationMsg{Name: TypeMsgCreatePool, OK: true, Height: res.Height}, nil
	}
}

// SimulateMsgAddLiquidity deposits random amounts into a random pool.
func SimulateMsgAddLiquidity() Operation {
	return func(ctx context.Context, r *rand.Rand, dexApp *app.DexApp, state *State) (OperationMsg, error) {
		simAccount, _ := simtypes.RandomAcc(r, state.Accounts)
		provider := AccountAddress(simAccount)

		pools, err := dexApp.Pools()
		if err != nil {
			return OperationMsg{}, err
		}
		if len(pools) == 0 {
			return noOpMsg(TypeMsgAddLiquidity, "no pools"), nil
		}
		pool := pools[r.Intn(len(pools))]

		amountA := randomUnits(r, 1, 1000)
		amountB := randomUnits(r, 1, 1000)
		if ok, err := canSpend(dexApp, provider, pool.TokenA, amountA); err != nil || !ok {
			return noOpMsg(TypeMsgAddLiquidity, "insufficient balance"), err
		}
		if ok, err := canSpend(dexApp, provider, pool.TokenB, amountB); err != nil || !ok {
			return noOpMsg(TypeMsgAddLiquidity, "insufficient balance"), err
		}

		msg := types.NewMsgAddLiquidity(provider, pool.TokenA, pool.TokenB, amountA, amountB)
		_, res, err := dexApp.AddLiquidity(ctx, msg)
		if err != nil {
			return OperationMsg{}, fmt.Errorf("add liquidity to pool %d: %w", pool.Id, err)
		}
		return OperationMsg{Name: TypeMsgAddLiquidity, OK: true, Height: res.Height}, nil
	}
}

// SimulateMsgSwap trades a random amount through a random funded pool,
// using the quote as the minimum output.
func SimulateMsgSwap() Operation {
	return func(ctx context.Context, r *rand.Rand, dexApp *app.DexApp, state *State) (OperationMsg, error) {
		simAccount, _ := simtypes.RandomAcc(r, state.Accounts)
		trader := AccountAddress(simAccount)

		pools, err := dexApp.Pools()
		if err != nil {
			return OperationMsg{}, err
		}
		if len(pools) == 0 {
			return noOpMsg(TypeMsgSwap, "no pools"), nil
		}
		pool := pools[r.Intn(len(pools))]
		if !pool.ReserveA.IsPositive() || !pool.ReserveB.IsPositive() {
			return noOpMsg(TypeMsgSwap, "empty pool"), nil
		}

		// Random swap direction
		tokenIn, tokenOut := pool.TokenA, pool.TokenB
		if r.Intn(2) == 0 {
			tokenIn, tokenOut = pool.TokenB, pool.TokenA
		}

		amountIn := randomUnits(r, 1, 100)
		if ok, err := canSpend(dexApp, trader, tokenIn, amountIn); err != nil || !ok {
			return noOpMsg(TypeMsgSwap, "insufficient balance"), err
		}

		quote, err := dexApp.Quote(tokenIn, tokenOut, amountIn)
		if errors.Is(err, types.ErrInvalidAmount) {
			return noOpMsg(TypeMsgSwap, "output rounds to zero"), nil
		}
		if err != nil {
			return OperationMsg{}, fmt.Errorf("quote pool %d: %w", pool.Id, err)
		}

		msg := types.NewMsgSwap(trader, tokenIn, tokenOut, amountIn, quote.AmountOut)
		resp, res, err := dexApp.Swap(ctx, msg)
		if err != nil {
			return OperationMsg{}, fmt.Errorf("swap on pool %d: %w", pool.Id, err)
		}
		if !resp.AmountOut.Equal(quote.AmountOut) {
			return OperationMsg{}, errorsmod.Wrapf(types.ErrInvariantBroken,
				"swap paid %s but quote promised %s", resp.AmountOut, quote.AmountOut)
		}
		return OperationMsg{Name: TypeMsgSwap, OK: true, Height: res.Height}, nil
	}
}

// SimulateFromSeed runs numOps weighted operations drawn from r.
func SimulateFromSeed(ctx context.Context, r *rand.Rand, dexApp *app.DexApp, state *State, ops []WeightedOperation, numOps int) ([]OperationMsg, error) {
	total := 0
	for _, op := range ops {
		total += op.Weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("operation weights sum to %d", total)
	}

	msgs := make([]OperationMsg, 0, numOps)
	for i := 0; i < numOps; i++ {
		pick := r.Intn(total)
		var op Operation
		for _, w := range ops {
			if pick < w.Weight {
				op = w.Op
				break
			}
			pick -= w.Weight
		}

		msg, err := op(ctx, r, dexApp, state)
		if err != nil {
			return msgs, fmt.Errorf("operation %d: %w", i, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func randomUnits(r *rand.Rand, lo, hi int) math.Int {
	whole := math.NewInt(int64(simtypes.RandIntBetween(r, lo, hi)))
	// a random fraction keeps amounts off round numbers
	frac := math.NewInt(r.Int63n(1_000_000_000_000_000_000))
	return whole.Mul(types.PriceScale).Add(frac)
}

func canSpend(dexApp *app.DexApp, account, token common.Address, amount math.Int) (bool, error) {
	balance, err := dexApp.Balance(token, account)
	if err != nil {
		return false, err
	}
	return balance.GTE(amount), nil
}
