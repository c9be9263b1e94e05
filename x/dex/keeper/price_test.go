package keeper_test

import (
	"cosmossdk.io/math"

	"github.com/simpledex/simpledex/x/dex/types"
)

func (suite *KeeperTestSuite) TestGetPrice() {
	suite.seedEthUsdt()

	price, err := suite.keeper.GetPrice(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.requireIntEqual(suite.ether(200), price)

	inverse, err := suite.keeper.GetPrice(suite.ctx, suite.usdt, suite.eth)
	suite.Require().NoError(err)
	suite.requireIntEqual(math.NewInt(5_000_000_000_000_000), inverse)

	dec, err := suite.keeper.GetPriceDec(suite.ctx, suite.usdt, suite.eth)
	suite.Require().NoError(err)
	suite.Require().Equal(math.LegacyNewDecWithPrec(5, 3).String(), dec.String())

	// within the band the deployment checks expect
	ethPrice, err := suite.keeper.GetPriceDec(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.Require().True(ethPrice.GTE(math.LegacyNewDec(190)) && ethPrice.LTE(math.LegacyNewDec(210)))
}

func (suite *KeeperTestSuite) TestGetPriceReciprocal() {
	keepertestSeed := func(a, b int64) {
		suite.SetupTest()
		_, err := suite.keeper.CreatePool(suite.ctx, suite.eth, suite.usdt)
		suite.Require().NoError(err)
		_, err = suite.keeper.AddLiquidity(suite.ctx, suite.eth, suite.usdt, suite.ether(a), suite.ether(b))
		suite.Require().NoError(err)
	}

	for _, reserves := range [][2]int64{{1000, 200000}, {200000, 200000}, {3, 7}, {1, 1_000_000}} {
		keepertestSeed(reserves[0], reserves[1])

		ab, err := suite.keeper.GetPrice(suite.ctx, suite.eth, suite.usdt)
		suite.Require().NoError(err)
		ba, err := suite.keeper.GetPrice(suite.ctx, suite.usdt, suite.eth)
		suite.Require().NoError(err)

		// ab * ba ~ 10^36; flooring loses at most one unit on each side
		product := ab.Mul(ba)
		one := types.PriceScale.Mul(types.PriceScale)
		suite.Require().True(product.LTE(one))
		suite.Require().True(one.Sub(product).LTE(ab.Add(ba).AddRaw(1)), "reserves %v", reserves)
	}
}

func (suite *KeeperTestSuite) TestGetPriceErrors() {
	_, err := suite.keeper.GetPrice(suite.ctx, suite.eth, suite.usdt)
	suite.Require().ErrorIs(err, types.ErrPoolNotFound)

	_, err = suite.keeper.CreatePool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)

	_, err = suite.keeper.GetPrice(suite.ctx, suite.eth, suite.usdt)
	suite.Require().ErrorIs(err, types.ErrEmptyPool)

	_, err = suite.keeper.GetPriceDec(suite.ctx, suite.usdt, suite.eth)
	suite.Require().ErrorIs(err, types.ErrEmptyPool)

	_, err = suite.keeper.GetPrice(suite.ctx, suite.eth, suite.eth)
	suite.Require().ErrorIs(err, types.ErrInvalidPair)
}
