package keeper_test

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/simpledex/simpledex/x/dex/keeper"
	"github.com/simpledex/simpledex/x/dex/types"
)

func (suite *KeeperTestSuite) TestSwapPriceImpact() {
	suite.seedEthUsdt()

	amountOut, err := suite.keeper.Swap(suite.ctx, suite.eth, suite.usdt, suite.ether(10), math.OneInt())
	suite.Require().NoError(err)

	// floor(200000 * 10 / 1010) whole units, scaled
	expected, ok := math.NewIntFromString("1980198019801980198019")
	suite.Require().True(ok)
	suite.requireIntEqual(expected, amountOut)
	suite.Require().True(amountOut.LT(suite.ether(2000)))

	ethReserve, usdtReserve, err := suite.keeper.GetReserves(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.requireIntEqual(suite.ether(1010), ethReserve)
	suite.requireIntEqual(suite.ether(200000).Sub(expected), usdtReserve)
}

func (suite *KeeperTestSuite) TestSwapReverseDirection() {
	suite.seedEthUsdt()

	amountOut, err := suite.keeper.Swap(suite.ctx, suite.usdt, suite.eth, suite.ether(2000), math.ZeroInt())
	suite.Require().NoError(err)

	// floor(1000 * 2000 / 202000) whole units
	expected := suite.ether(1000).Mul(suite.ether(2000)).Quo(suite.ether(202000))
	suite.requireIntEqual(expected, amountOut)
	suite.Require().True(amountOut.LT(suite.ether(10)))
}

func (suite *KeeperTestSuite) TestSwapSlippageLeavesReservesUnchanged() {
	before := suite.seedEthUsdt()

	quote, err := suite.keeper.SimulateSwap(suite.ctx, suite.eth, suite.usdt, suite.ether(10))
	suite.Require().NoError(err)

	_, err = suite.keeper.Swap(suite.ctx, suite.eth, suite.usdt, suite.ether(10), quote.AmountOut.AddRaw(1))
	suite.Require().ErrorIs(err, types.ErrSlippageExceeded)

	after, err := suite.keeper.GetPool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.Require().Equal(before.String(), after.String())

	// the exact quote is accepted
	amountOut, err := suite.keeper.Swap(suite.ctx, suite.eth, suite.usdt, suite.ether(10), quote.AmountOut)
	suite.Require().NoError(err)
	suite.requireIntEqual(quote.AmountOut, amountOut)
}

func (suite *KeeperTestSuite) TestSwapErrors() {
	_, err := suite.keeper.Swap(suite.ctx, suite.eth, suite.usdt, suite.ether(1), math.ZeroInt())
	suite.Require().ErrorIs(err, types.ErrPoolNotFound)

	_, err = suite.keeper.Swap(suite.ctx, suite.eth, suite.eth, suite.ether(1), math.ZeroInt())
	suite.Require().ErrorIs(err, types.ErrInvalidPair)

	_, err = suite.keeper.CreatePool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)

	_, err = suite.keeper.Swap(suite.ctx, suite.eth, suite.usdt, suite.ether(1), math.ZeroInt())
	suite.Require().ErrorIs(err, types.ErrEmptyPool)

	_, err = suite.keeper.AddLiquidity(suite.ctx, suite.eth, suite.usdt, suite.ether(1000), suite.ether(200000))
	suite.Require().NoError(err)

	_, err = suite.keeper.Swap(suite.ctx, suite.eth, suite.usdt, math.ZeroInt(), math.ZeroInt())
	suite.Require().ErrorIs(err, types.ErrInvalidAmount)

	_, err = suite.keeper.Swap(suite.ctx, suite.eth, suite.usdt, math.NewInt(-5), math.ZeroInt())
	suite.Require().ErrorIs(err, types.ErrInvalidAmount)

	_, err = suite.keeper.Swap(suite.ctx, suite.eth, suite.usdt, suite.ether(1), math.NewInt(-1))
	suite.Require().ErrorIs(err, types.ErrInvalidAmount)

	// dust of the cheap side rounds down to nothing
	_, err = suite.keeper.Swap(suite.ctx, suite.usdt, suite.eth, math.NewInt(100), math.ZeroInt())
	suite.Require().ErrorIs(err, types.ErrInvalidAmount)

	_, err = suite.keeper.Swap(suite.ctx, suite.eth, suite.dai, suite.ether(1), math.ZeroInt())
	suite.Require().ErrorIs(err, types.ErrPoolNotFound)
}

func (suite *KeeperTestSuite) TestSwapWithFee() {
	suite.seedEthUsdt()
	suite.Require().NoError(suite.keeper.SetParams(suite.ctx, types.NewParams(math.LegacyNewDecWithPrec(3, 3))))

	before, err := suite.keeper.GetPool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)

	amountOut, err := suite.keeper.Swap(suite.ctx, suite.eth, suite.usdt, suite.ether(10), math.ZeroInt())
	suite.Require().NoError(err)

	expected, ok := math.NewIntFromString("1974316068794122597700")
	suite.Require().True(ok)
	suite.requireIntEqual(expected, amountOut)

	// the whole input, fee included, stays in the pool
	ethReserve, _, err := suite.keeper.GetReserves(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.requireIntEqual(suite.ether(1010), ethReserve)

	after, err := suite.keeper.GetPool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.Require().Equal(1, after.Product().Cmp(before.Product()))
}

func (suite *KeeperTestSuite) TestSimulateSwapDoesNotMutate() {
	before := suite.seedEthUsdt()

	quote, err := suite.keeper.SimulateSwap(suite.ctx, suite.eth, suite.usdt, suite.ether(10))
	suite.Require().NoError(err)
	suite.Require().Equal(suite.eth, quote.TokenIn)
	suite.Require().Equal(suite.usdt, quote.TokenOut)
	suite.Require().True(quote.Fee.IsZero())
	suite.Require().Equal(math.LegacyNewDec(200).String(), quote.SpotPrice.String())
	suite.Require().True(quote.PriceAfter.LT(quote.SpotPrice))
	suite.Require().True(quote.PriceImpact.IsPositive())
	suite.Require().True(quote.PriceImpact.LT(math.LegacyNewDecWithPrec(1, 1)))

	after, err := suite.keeper.GetPool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.Require().Equal(before.String(), after.String())
}

func (suite *KeeperTestSuite) TestGetAmountOut() {
	tests := []struct {
		name       string
		amountIn   math.Int
		reserveIn  math.Int
		reserveOut math.Int
		fee        math.LegacyDec
		expected   string
		err        error
	}{
		{"no fee", math.NewInt(10), math.NewInt(1000), math.NewInt(200000), math.LegacyZeroDec(), "1980", nil},
		{"floors", math.NewInt(1), math.NewInt(3), math.NewInt(10), math.LegacyZeroDec(), "2", nil},
		{"dust", math.NewInt(1), math.NewInt(1000), math.NewInt(10), math.LegacyZeroDec(), "0", nil},
		{"half fee", math.NewInt(100), math.NewInt(100), math.NewInt(100), math.LegacyNewDecWithPrec(5, 1), "33", nil},
		{"zero input", math.ZeroInt(), math.NewInt(1), math.NewInt(1), math.LegacyZeroDec(), "", types.ErrInvalidAmount},
		{"empty in", math.NewInt(1), math.ZeroInt(), math.NewInt(1), math.LegacyZeroDec(), "", types.ErrEmptyPool},
		{"empty out", math.NewInt(1), math.NewInt(1), math.ZeroInt(), math.LegacyZeroDec(), "", types.ErrEmptyPool},
		{"fee of one", math.NewInt(1), math.NewInt(1), math.NewInt(1), math.LegacyOneDec(), "", types.ErrInvalidParams},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			out, err := keeper.GetAmountOut(tc.amountIn, tc.reserveIn, tc.reserveOut, tc.fee)
			if tc.err != nil {
				suite.Require().ErrorIs(err, tc.err)
				return
			}
			suite.Require().NoError(err)
			suite.Require().Equal(tc.expected, out.String())
			suite.Require().True(out.LT(tc.reserveOut))
		})
	}
}

func (suite *KeeperTestSuite) TestSwapEmitsEvent() {
	suite.seedEthUsdt()
	suite.ctx = suite.ctx.WithEventManager(sdk.NewEventManager())

	amountOut, err := suite.keeper.Swap(suite.ctx, suite.eth, suite.usdt, suite.ether(1), math.ZeroInt())
	suite.Require().NoError(err)

	events := suite.ctx.EventManager().Events()
	suite.Require().Len(events, 1)
	suite.Require().Equal(types.EventTypeSwap, events[0].Type)

	attrs := map[string]string{}
	for _, attr := range events[0].Attributes {
		attrs[attr.Key] = attr.Value
	}
	suite.Require().Equal(suite.eth.Hex(), attrs[types.AttributeKeyTokenIn])
	suite.Require().Equal(amountOut.String(), attrs[types.AttributeKeyAmountOut])
}
