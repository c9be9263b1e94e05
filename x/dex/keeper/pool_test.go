package keeper_test

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/simpledex/simpledex/x/dex/types"
)

func (suite *KeeperTestSuite) TestCreatePool() {
	id, err := suite.keeper.CreatePool(suite.ctx, suite.usdt, suite.eth)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(1), id)

	pool, err := suite.keeper.GetPool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.Require().Equal(id, pool.Id)
	suite.Require().True(pool.IsEmpty())

	lo, hi := types.SortTokens(suite.eth, suite.usdt)
	suite.Require().Equal(lo, pool.TokenA)
	suite.Require().Equal(hi, pool.TokenB)

	// reversed lookup resolves the same pool
	reversed, err := suite.keeper.GetPool(suite.ctx, suite.usdt, suite.eth)
	suite.Require().NoError(err)
	suite.Require().Equal(pool.Id, reversed.Id)

	id2, err := suite.keeper.CreatePool(suite.ctx, suite.eth, suite.dai)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(2), id2)
	suite.Require().Equal(uint64(3), suite.keeper.PeekNextPoolID(suite.ctx))
}

func (suite *KeeperTestSuite) TestCreatePoolErrors() {
	_, err := suite.keeper.CreatePool(suite.ctx, suite.eth, suite.eth)
	suite.Require().ErrorIs(err, types.ErrInvalidPair)

	_, err = suite.keeper.CreatePool(suite.ctx, suite.eth, common.Address{})
	suite.Require().ErrorIs(err, types.ErrInvalidPair)

	_, err = suite.keeper.CreatePool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)

	_, err = suite.keeper.CreatePool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().ErrorIs(err, types.ErrDuplicatePool)
	_, err = suite.keeper.CreatePool(suite.ctx, suite.usdt, suite.eth)
	suite.Require().ErrorIs(err, types.ErrDuplicatePool)

	// failed attempts do not consume ids
	suite.Require().Equal(uint64(2), suite.keeper.PeekNextPoolID(suite.ctx))
}

func (suite *KeeperTestSuite) TestGetPoolNotFound() {
	_, err := suite.keeper.GetPool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().ErrorIs(err, types.ErrPoolNotFound)

	_, err = suite.keeper.GetPoolByID(suite.ctx, 42)
	suite.Require().ErrorIs(err, types.ErrPoolNotFound)

	_, _, err = suite.keeper.GetReserves(suite.ctx, suite.eth, suite.usdt)
	suite.Require().ErrorIs(err, types.ErrPoolNotFound)

	suite.Require().False(suite.keeper.HasPool(suite.ctx, suite.eth, suite.usdt))
}

func (suite *KeeperTestSuite) TestGetReservesFollowsArgumentOrder() {
	suite.seedEthUsdt()

	ethReserve, usdtReserve, err := suite.keeper.GetReserves(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.requireIntEqual(suite.ether(1000), ethReserve)
	suite.requireIntEqual(suite.ether(200000), usdtReserve)

	usdtReserve, ethReserve, err = suite.keeper.GetReserves(suite.ctx, suite.usdt, suite.eth)
	suite.Require().NoError(err)
	suite.requireIntEqual(suite.ether(1000), ethReserve)
	suite.requireIntEqual(suite.ether(200000), usdtReserve)
}

func (suite *KeeperTestSuite) TestGetAllPools() {
	pools, err := suite.keeper.GetAllPools(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Empty(pools)

	for _, pair := range [][2]common.Address{{suite.eth, suite.usdt}, {suite.eth, suite.dai}, {suite.usdt, suite.dai}} {
		_, err := suite.keeper.CreatePool(suite.ctx, pair[0], pair[1])
		suite.Require().NoError(err)
	}

	pools, err = suite.keeper.GetAllPools(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(pools, 3)
	for i, pool := range pools {
		suite.Require().Equal(uint64(i+1), pool.Id)
		suite.Require().NoError(pool.Validate())
	}

	byID, err := suite.keeper.GetPoolByID(suite.ctx, 2)
	suite.Require().NoError(err)
	suite.Require().True(byID.HasToken(suite.dai))
}
