package keeper_test

import (
	"cosmossdk.io/math"

	keepertest "github.com/simpledex/simpledex/testutil/keeper"
	"github.com/simpledex/simpledex/x/dex/types"
)

func (suite *KeeperTestSuite) TestGenesisRoundTrip() {
	suite.seedEthUsdt()
	_, err := suite.keeper.CreatePool(suite.ctx, suite.usdt, suite.dai)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.keeper.SetParams(suite.ctx, types.NewParams(math.LegacyNewDecWithPrec(3, 3))))

	exported, err := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(exported.Validate())
	suite.Require().Len(exported.Pools, 2)
	suite.Require().Equal(uint64(3), exported.NextPoolId)

	fresh, ctx := keepertest.DexKeeper(suite.T())
	suite.Require().NoError(fresh.Dex.InitGenesis(ctx, *exported))

	reimported, err := fresh.Dex.ExportGenesis(ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(exported.NextPoolId, reimported.NextPoolId)
	suite.Require().Equal(exported.Params.String(), reimported.Params.String())
	suite.Require().Len(reimported.Pools, len(exported.Pools))
	for i := range exported.Pools {
		suite.Require().Equal(exported.Pools[i].String(), reimported.Pools[i].String())
	}

	// lookups work from the restored index
	price, err := fresh.Dex.GetPrice(ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.requireIntEqual(suite.ether(200), price)

	id, err := fresh.Dex.CreatePool(ctx, suite.eth, suite.dai)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(3), id)
}

func (suite *KeeperTestSuite) TestInitGenesisRejectsInvalidState() {
	gs := types.DefaultGenesis()
	gs.NextPoolId = 0
	suite.Require().Error(suite.keeper.InitGenesis(suite.ctx, *gs))
}
