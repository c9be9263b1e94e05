package app

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	dextypes "github.com/simpledex/simpledex/x/dex/types"
	tokentypes "github.com/simpledex/simpledex/x/token/types"
)

// SeedToken describes one token of the development deployment. Amounts are
// whole units; they are scaled by 10^decimals.
type SeedToken struct {
	Name     string
	Symbol   string
	Supply   int64
	Faucet   int64
	Decimals uint8
}

// SeedPool describes the initial liquidity of a pair, in whole units.
type SeedPool struct {
	Base, Quote             string
	BaseAmount, QuoteAmount int64
}

// SeedPlan is a development deployment: tokens, seeded pools and faucet
// balances for a test account.
type SeedPlan struct {
	Tokens []SeedToken
	Pools  []SeedPool
}

// DefaultSeedPlan deploys ETH, USDT and DAI with the three pools priced at
// 1 ETH = 200 USDT = 200 DAI.
func DefaultSeedPlan() SeedPlan {
	return SeedPlan{
		Tokens: []SeedToken{
			{Name: "ETH Token", Symbol: "ETH", Supply: 1_000_000, Faucet: 100, Decimals: tokentypes.DefaultDecimals},
			{Name: "USDT Token", Symbol: "USDT", Supply: 1_000_000, Faucet: 10_000, Decimals: tokentypes.DefaultDecimals},
			{Name: "DAI Token", Symbol: "DAI", Supply: 1_000_000, Faucet: 10_000, Decimals: tokentypes.DefaultDecimals},
		},
		Pools: []SeedPool{
			{Base: "ETH", Quote: "USDT", BaseAmount: 1_000, QuoteAmount: 200_000},
			{Base: "ETH", Quote: "DAI", BaseAmount: 1_000, QuoteAmount: 200_000},
			{Base: "USDT", Quote: "DAI", BaseAmount: 200_000, QuoteAmount: 200_000},
		},
	}
}

// SeedResult lists what Seed deployed.
type SeedResult struct {
	Tokens map[string]common.Address `json:"tokens"`
	Pools  []dextypes.Pool           `json:"pools"`
}

// Seed executes plan as deployer and funds trader from each token's faucet
// amount. Every step is its own committed transition, as a deployment
// script would send them.
func (app *DexApp) Seed(ctx context.Context, deployer, trader common.Address, plan SeedPlan) (*SeedResult, error) {
	result := &SeedResult{Tokens: make(map[string]common.Address, len(plan.Tokens))}
	decimals := make(map[string]uint8, len(plan.Tokens))

	for _, t := range plan.Tokens {
		addr, _, err := app.DeployToken(ctx, deployer, t.Name, t.Symbol, t.Decimals, units(t.Supply, t.Decimals))
		if err != nil {
			return nil, fmt.Errorf("deploy %s: %w", t.Symbol, err)
		}
		result.Tokens[t.Symbol] = addr
		decimals[t.Symbol] = t.Decimals
		app.logger.Info("deployed token", "symbol", t.Symbol, "address", addr.Hex())
	}

	lookup := func(symbol string) (common.Address, error) {
		addr, ok := result.Tokens[symbol]
		if !ok {
			return common.Address{}, fmt.Errorf("pool references unknown token %q", symbol)
		}
		return addr, nil
	}

	for _, p := range plan.Pools {
		base, err := lookup(p.Base)
		if err != nil {
			return nil, err
		}
		quote, err := lookup(p.Quote)
		if err != nil {
			return nil, err
		}

		if _, _, err := app.CreatePool(ctx, dextypes.NewMsgCreatePool(deployer, base, quote)); err != nil {
			return nil, fmt.Errorf("create %s/%s pool: %w", p.Base, p.Quote, err)
		}

		baseAmount := units(p.BaseAmount, decimals[p.Base])
		quoteAmount := units(p.QuoteAmount, decimals[p.Quote])
		for _, leg := range []struct {
			token  common.Address
			amount math.Int
		}{{base, baseAmount}, {quote, quoteAmount}} {
			if _, err := app.MintToken(ctx, deployer, leg.token, deployer, leg.amount); err != nil {
				return nil, fmt.Errorf("mint liquidity: %w", err)
			}
			if _, err := app.ApproveToken(ctx, leg.token, deployer, dextypes.ModuleAddress, leg.amount); err != nil {
				return nil, fmt.Errorf("approve liquidity: %w", err)
			}
		}

		resp, _, err := app.AddLiquidity(ctx, dextypes.NewMsgAddLiquidity(deployer, base, quote, baseAmount, quoteAmount))
		if err != nil {
			return nil, fmt.Errorf("seed %s/%s pool: %w", p.Base, p.Quote, err)
		}
		result.Pools = append(result.Pools, resp.Pool)
		app.logger.Info("seeded pool", "pair", p.Base+"/"+p.Quote, "pool_id", resp.Pool.Id)
	}

	for _, t := range plan.Tokens {
		if t.Faucet <= 0 {
			continue
		}
		if _, err := app.MintToken(ctx, deployer, result.Tokens[t.Symbol], trader, units(t.Faucet, t.Decimals)); err != nil {
			return nil, fmt.Errorf("fund %s: %w", t.Symbol, err)
		}
	}

	return result, nil
}

func units(whole int64, decimals uint8) math.Int {
	return math.NewInt(whole).Mul(math.NewIntWithDecimal(1, int(decimals)))
}
