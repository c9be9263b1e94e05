package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"pgregory.net/rapid"

	keepertest "github.com/simpledex/simpledex/testutil/keeper"
	"github.com/simpledex/simpledex/x/dex/keeper"
	"github.com/simpledex/simpledex/x/dex/types"
)

// drawAmount draws a positive amount spanning dust to ~10^30 base units.
func drawAmount(t *rapid.T, label string) math.Int {
	base := rapid.Int64Range(1, 1<<62).Draw(t, label)
	shift := rapid.IntRange(0, 12).Draw(t, label+"_shift")
	return math.NewInt(base).Mul(math.NewIntWithDecimal(1, shift))
}

func drawFee(t *rapid.T) math.LegacyDec {
	return rapid.SampledFrom([]math.LegacyDec{
		math.LegacyZeroDec(),
		math.LegacyNewDecWithPrec(3, 3),
		math.LegacyNewDecWithPrec(1, 2),
		math.LegacyNewDecWithPrec(5, 1),
	}).Draw(t, "fee")
}

// TestGetAmountOutProperties checks the pure curve: output is bounded by the
// reserve and the product never shrinks.
func TestGetAmountOutProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := drawAmount(t, "reserveIn")
		reserveOut := drawAmount(t, "reserveOut")
		amountIn := drawAmount(t, "amountIn")
		fee := drawFee(t)

		out, err := keeper.GetAmountOut(amountIn, reserveIn, reserveOut, fee)
		if err != nil {
			t.Fatalf("GetAmountOut: %v", err)
		}
		if out.IsNegative() || out.GTE(reserveOut) {
			t.Fatalf("output %s outside [0, %s)", out, reserveOut)
		}

		before := reserveIn.Mul(reserveOut)
		after := reserveIn.Add(amountIn).Mul(reserveOut.Sub(out))
		if after.LT(before) {
			t.Fatalf("product decreased: %s -> %s", before, after)
		}

		// a fee can only lower the output
		noFee, err := keeper.GetAmountOut(amountIn, reserveIn, reserveOut, math.LegacyZeroDec())
		if err != nil {
			t.Fatalf("GetAmountOut without fee: %v", err)
		}
		if out.GT(noFee) {
			t.Fatalf("fee %s raised output %s above %s", fee, out, noFee)
		}
	})
}

// TestSwapProperties runs swaps against a stored pool.
func TestSwapProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k, ctx := keepertest.DexKeeper(t)
		eth := keepertest.DeployToken(t, k, ctx, "ETH", 0)
		usdt := keepertest.DeployToken(t, k, ctx, "USDT", 0)

		reserveEth := drawAmount(rt, "reserveEth")
		reserveUsdt := drawAmount(rt, "reserveUsdt")
		if _, err := k.Dex.CreatePool(ctx, eth, usdt); err != nil {
			rt.Fatalf("CreatePool: %v", err)
		}
		if _, err := k.Dex.AddLiquidity(ctx, eth, usdt, reserveEth, reserveUsdt); err != nil {
			rt.Fatalf("AddLiquidity: %v", err)
		}
		if err := k.Dex.SetParams(ctx, types.NewParams(drawFee(rt))); err != nil {
			rt.Fatalf("SetParams: %v", err)
		}

		amountIn := drawAmount(rt, "amountIn")
		before, _ := k.Dex.GetPool(ctx, eth, usdt)

		quote, err := k.Dex.SimulateSwap(ctx, eth, usdt, amountIn)
		if err != nil {
			rt.Fatalf("SimulateSwap: %v", err)
		}

		// a minimum one above the quote always fails and changes nothing
		if _, err := k.Dex.Swap(ctx, eth, usdt, amountIn, quote.AmountOut.AddRaw(1)); err == nil {
			rt.Fatal("swap above quote succeeded")
		}
		if unchanged, _ := k.Dex.GetPool(ctx, eth, usdt); unchanged.String() != before.String() {
			rt.Fatalf("failed swap mutated pool: %s -> %s", before, unchanged)
		}

		out, err := k.Dex.Swap(ctx, eth, usdt, amountIn, math.ZeroInt())
		if quote.AmountOut.IsZero() {
			if err == nil {
				rt.Fatal("zero-output swap succeeded")
			}
			return
		}
		if err != nil {
			rt.Fatalf("Swap: %v", err)
		}
		if !out.Equal(quote.AmountOut) {
			rt.Fatalf("swap paid %s, quote was %s", out, quote.AmountOut)
		}

		after, _ := k.Dex.GetPool(ctx, eth, usdt)
		if after.Product().Cmp(before.Product()) < 0 {
			rt.Fatal("constant product decreased")
		}
		ethAfter, usdtAfter, _ := after.Reserves(eth, usdt)
		if !ethAfter.Equal(reserveEth.Add(amountIn)) || !usdtAfter.Equal(reserveUsdt.Sub(out)) {
			rt.Fatalf("reserves %s/%s do not match the trade", ethAfter, usdtAfter)
		}

		// swapping the proceeds straight back never returns more than was put in
		back, err := k.Dex.Swap(ctx, usdt, eth, out, math.ZeroInt())
		if err == nil && back.GT(amountIn) {
			rt.Fatalf("round trip turned %s into %s", amountIn, back)
		}
	})
}

// TestAddLiquidityAdditivity checks that two deposits equal one summed deposit.
func TestAddLiquidityAdditivity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k, ctx := keepertest.DexKeeper(t)
		eth := keepertest.DeployToken(t, k, ctx, "ETH", 0)
		usdt := keepertest.DeployToken(t, k, ctx, "USDT", 0)
		dai := keepertest.DeployToken(t, k, ctx, "DAI", 0)

		a1, b1 := drawAmount(rt, "a1"), drawAmount(rt, "b1")
		a2, b2 := drawAmount(rt, "a2"), drawAmount(rt, "b2")

		if _, err := k.Dex.CreatePool(ctx, eth, usdt); err != nil {
			rt.Fatal(err)
		}
		if _, err := k.Dex.CreatePool(ctx, eth, dai); err != nil {
			rt.Fatal(err)
		}

		if _, err := k.Dex.AddLiquidity(ctx, eth, usdt, a1, b1); err != nil {
			rt.Fatal(err)
		}
		if _, err := k.Dex.AddLiquidity(ctx, usdt, eth, b2, a2); err != nil {
			rt.Fatal(err)
		}
		if _, err := k.Dex.AddLiquidity(ctx, eth, dai, a1.Add(a2), b1.Add(b2)); err != nil {
			rt.Fatal(err)
		}

		splitA, splitB, _ := k.Dex.GetReserves(ctx, eth, usdt)
		onceA, onceB, _ := k.Dex.GetReserves(ctx, eth, dai)
		if !splitA.Equal(onceA) || !splitB.Equal(onceB) {
			rt.Fatalf("split deposits %s/%s != summed %s/%s", splitA, splitB, onceA, onceB)
		}
	})
}
