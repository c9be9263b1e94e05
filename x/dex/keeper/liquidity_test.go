package keeper_test

import (
	"cosmossdk.io/math"

	"github.com/simpledex/simpledex/x/dex/types"
)

func (suite *KeeperTestSuite) TestAddLiquidity() {
	_, err := suite.keeper.CreatePool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)

	_, err = suite.keeper.AddLiquidity(suite.ctx, suite.eth, suite.usdt, suite.ether(1000), suite.ether(200000))
	suite.Require().NoError(err)

	// amounts follow argument order, not storage order
	_, err = suite.keeper.AddLiquidity(suite.ctx, suite.usdt, suite.eth, suite.ether(400), suite.ether(2))
	suite.Require().NoError(err)

	ethReserve, usdtReserve, err := suite.keeper.GetReserves(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.requireIntEqual(suite.ether(1002), ethReserve)
	suite.requireIntEqual(suite.ether(200400), usdtReserve)
}

func (suite *KeeperTestSuite) TestAddLiquidityIsAdditive() {
	_, err := suite.keeper.CreatePool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	_, err = suite.keeper.CreatePool(suite.ctx, suite.eth, suite.dai)
	suite.Require().NoError(err)

	a1, b1 := math.NewInt(123456789), math.NewInt(987654321)
	a2, b2 := math.NewInt(555), math.NewInt(1)

	_, err = suite.keeper.AddLiquidity(suite.ctx, suite.eth, suite.usdt, a1, b1)
	suite.Require().NoError(err)
	_, err = suite.keeper.AddLiquidity(suite.ctx, suite.eth, suite.usdt, a2, b2)
	suite.Require().NoError(err)

	_, err = suite.keeper.AddLiquidity(suite.ctx, suite.eth, suite.dai, a1.Add(a2), b1.Add(b2))
	suite.Require().NoError(err)

	twiceA, twiceB, err := suite.keeper.GetReserves(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	onceA, onceB, err := suite.keeper.GetReserves(suite.ctx, suite.eth, suite.dai)
	suite.Require().NoError(err)
	suite.requireIntEqual(onceA, twiceA)
	suite.requireIntEqual(onceB, twiceB)
}

func (suite *KeeperTestSuite) TestAddLiquidityErrors() {
	_, err := suite.keeper.AddLiquidity(suite.ctx, suite.eth, suite.usdt, suite.ether(1), suite.ether(1))
	suite.Require().ErrorIs(err, types.ErrPoolNotFound)

	_, err = suite.keeper.CreatePool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)

	for _, amounts := range [][2]math.Int{
		{math.ZeroInt(), suite.ether(1)},
		{suite.ether(1), math.ZeroInt()},
		{math.NewInt(-1), suite.ether(1)},
		{math.Int{}, suite.ether(1)},
	} {
		_, err = suite.keeper.AddLiquidity(suite.ctx, suite.eth, suite.usdt, amounts[0], amounts[1])
		suite.Require().ErrorIs(err, types.ErrInvalidAmount)
	}

	_, err = suite.keeper.AddLiquidity(suite.ctx, suite.eth, suite.eth, suite.ether(1), suite.ether(1))
	suite.Require().ErrorIs(err, types.ErrInvalidPair)

	pool, err := suite.keeper.GetPool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.Require().True(pool.IsEmpty())
}

func (suite *KeeperTestSuite) TestAddLiquidityOverflow() {
	_, err := suite.keeper.CreatePool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)

	maxUint256 := math.NewIntFromBigInt(types.MaxUint256())
	_, err = suite.keeper.AddLiquidity(suite.ctx, suite.eth, suite.usdt, maxUint256, math.OneInt())
	suite.Require().NoError(err)

	_, err = suite.keeper.AddLiquidity(suite.ctx, suite.eth, suite.usdt, math.OneInt(), math.OneInt())
	suite.Require().ErrorIs(err, types.ErrOverflow)

	ethReserve, usdtReserve, err := suite.keeper.GetReserves(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.requireIntEqual(maxUint256, ethReserve)
	suite.requireIntEqual(math.OneInt(), usdtReserve)
}
