package keeper_test

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/simpledex/simpledex/x/dex/keeper"
	"github.com/simpledex/simpledex/x/dex/types"
)

func keeperAllInvariants(suite *KeeperTestSuite) (string, bool) {
	return keeper.AllInvariants(*suite.keeper)(suite.ctx)
}

func (suite *KeeperTestSuite) TestInvariantsHold() {
	msg, broken := keeperAllInvariants(suite)
	suite.Require().False(broken, msg)

	suite.seedEthUsdt()
	_, err := suite.keeper.CreatePool(suite.ctx, suite.eth, suite.dai)
	suite.Require().NoError(err)

	msg, broken = keeperAllInvariants(suite)
	suite.Require().False(broken, msg)
}

func (suite *KeeperTestSuite) TestPoolReservesInvariantDetectsMissingCustody() {
	pool := suite.seedEthUsdt()
	pool.ReserveA = pool.ReserveA.AddRaw(1)
	suite.Require().NoError(suite.keeper.SetPool(suite.ctx, pool))

	msg, broken := keeper.PoolReservesInvariant(*suite.keeper)(suite.ctx)
	suite.Require().True(broken)
	suite.Require().Contains(msg, "insufficient module balance")
}

func (suite *KeeperTestSuite) TestPositiveReservesInvariantDetectsOneSidedPool() {
	pool := suite.seedEthUsdt()
	pool.ReserveB = pool.ReserveB.Sub(pool.ReserveB)
	suite.Require().NoError(suite.keeper.SetPool(suite.ctx, pool))

	_, broken := keeper.PositiveReservesInvariant(*suite.keeper)(suite.ctx)
	suite.Require().True(broken)
}

func (suite *KeeperTestSuite) TestCanonicalOrderInvariant() {
	pool := suite.seedEthUsdt()
	pool.TokenA, pool.TokenB = pool.TokenB, pool.TokenA
	suite.Require().NoError(suite.keeper.SetPool(suite.ctx, pool))

	_, broken := keeper.CanonicalOrderInvariant(*suite.keeper)(suite.ctx)
	suite.Require().True(broken)

	suite.SetupTest()
	orphan := types.NewPool(9, suite.eth, common.HexToAddress("0x000000000000000000000000000000000000bEEF"))
	suite.Require().NoError(suite.keeper.SetPool(suite.ctx, orphan))
	_, broken = keeper.CanonicalOrderInvariant(*suite.keeper)(suite.ctx)
	suite.Require().True(broken)
}
