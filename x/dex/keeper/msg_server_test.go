package keeper_test

import (
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	keepertest "github.com/simpledex/simpledex/testutil/keeper"
	"github.com/simpledex/simpledex/x/dex/keeper"
	"github.com/simpledex/simpledex/x/dex/types"
	tokentypes "github.com/simpledex/simpledex/x/token/types"
)

func (suite *KeeperTestSuite) TestMsgCreatePool() {
	resp, err := suite.msgSrv.CreatePool(suite.ctx, types.NewMsgCreatePool(keepertest.Deployer, suite.eth, suite.usdt))
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(1), resp.PoolId)

	_, err = suite.msgSrv.CreatePool(suite.ctx, types.NewMsgCreatePool(keepertest.Deployer, suite.usdt, suite.eth))
	suite.Require().ErrorIs(err, types.ErrDuplicatePool)

	unknown := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	_, err = suite.msgSrv.CreatePool(suite.ctx, types.NewMsgCreatePool(keepertest.Deployer, suite.eth, unknown))
	suite.Require().ErrorIs(err, types.ErrInvalidToken)

	_, err = suite.msgSrv.CreatePool(suite.ctx, types.NewMsgCreatePool(common.Address{}, suite.eth, suite.dai))
	suite.Require().ErrorIs(err, types.ErrInvalidAddress)

	suite.Require().False(suite.keeper.HasPool(suite.ctx, suite.eth, suite.dai))
}

func (suite *KeeperTestSuite) TestMsgAddLiquidityMovesCustody() {
	pool := suite.seedEthUsdt()

	module := types.ModuleAddress
	suite.requireIntEqual(suite.ether(1000), suite.keepers.Token.BalanceOf(suite.ctx, suite.eth, module))
	suite.requireIntEqual(suite.ether(200000), suite.keepers.Token.BalanceOf(suite.ctx, suite.usdt, module))
	suite.Require().True(suite.keepers.Token.BalanceOf(suite.ctx, suite.eth, keepertest.Deployer).IsZero())

	ethReserve, usdtReserve, err := pool.Reserves(suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.requireIntEqual(suite.ether(1000), ethReserve)
	suite.requireIntEqual(suite.ether(200000), usdtReserve)
}

func (suite *KeeperTestSuite) TestMsgAddLiquidityWithoutAllowanceRollsBack() {
	_, err := suite.msgSrv.CreatePool(suite.ctx, types.NewMsgCreatePool(keepertest.Deployer, suite.eth, suite.usdt))
	suite.Require().NoError(err)

	// allowance for ETH only: the USDT leg fails after the ETH leg moved
	suite.Require().NoError(suite.keepers.Token.Mint(suite.ctx, keepertest.Deployer, suite.eth, keepertest.Alice, suite.ether(5)))
	suite.Require().NoError(suite.keepers.Token.Mint(suite.ctx, keepertest.Deployer, suite.usdt, keepertest.Alice, suite.ether(5)))
	suite.Require().NoError(suite.keepers.Token.Approve(suite.ctx, suite.eth, keepertest.Alice, types.ModuleAddress, suite.ether(5)))

	_, err = suite.msgSrv.AddLiquidity(suite.ctx, types.NewMsgAddLiquidity(keepertest.Alice, suite.eth, suite.usdt, suite.ether(5), suite.ether(5)))
	suite.Require().ErrorIs(err, tokentypes.ErrInsufficientAllowance)

	suite.requireIntEqual(suite.ether(5), suite.keepers.Token.BalanceOf(suite.ctx, suite.eth, keepertest.Alice))
	suite.requireIntEqual(suite.ether(5), suite.keepers.Token.Allowance(suite.ctx, suite.eth, keepertest.Alice, types.ModuleAddress))
	pool, err := suite.keeper.GetPool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.Require().True(pool.IsEmpty())

	_, err = suite.msgSrv.AddLiquidity(suite.ctx, types.NewMsgAddLiquidity(keepertest.Alice, suite.eth, suite.dai, suite.ether(1), suite.ether(1)))
	suite.Require().ErrorIs(err, types.ErrPoolNotFound)
}

func (suite *KeeperTestSuite) TestMsgSwap() {
	suite.seedEthUsdt()
	keepertest.Fund(suite.T(), suite.keepers, suite.ctx, suite.eth, keepertest.Alice, suite.ether(100))

	resp, err := suite.msgSrv.Swap(suite.ctx, types.NewMsgSwap(keepertest.Alice, suite.eth, suite.usdt, suite.ether(10), suite.ether(1900)))
	suite.Require().NoError(err)

	expected, _ := math.NewIntFromString("1980198019801980198019")
	suite.requireIntEqual(expected, resp.AmountOut)

	token := suite.keepers.Token
	suite.requireIntEqual(suite.ether(90), token.BalanceOf(suite.ctx, suite.eth, keepertest.Alice))
	suite.requireIntEqual(expected, token.BalanceOf(suite.ctx, suite.usdt, keepertest.Alice))
	suite.requireIntEqual(suite.ether(1010), token.BalanceOf(suite.ctx, suite.eth, types.ModuleAddress))
	suite.requireIntEqual(suite.ether(200000).Sub(expected), token.BalanceOf(suite.ctx, suite.usdt, types.ModuleAddress))

	_, broken := keeperAllInvariants(suite)
	suite.Require().False(broken)
}

func (suite *KeeperTestSuite) TestMsgSwapFailuresAreAtomic() {
	before := suite.seedEthUsdt()
	token := suite.keepers.Token

	// no allowance granted
	suite.Require().NoError(token.Mint(suite.ctx, keepertest.Deployer, suite.eth, keepertest.Bob, suite.ether(10)))
	_, err := suite.msgSrv.Swap(suite.ctx, types.NewMsgSwap(keepertest.Bob, suite.eth, suite.usdt, suite.ether(10), math.ZeroInt()))
	suite.Require().ErrorIs(err, tokentypes.ErrInsufficientAllowance)

	// allowance but not enough balance
	suite.Require().NoError(token.Approve(suite.ctx, suite.eth, keepertest.Bob, types.ModuleAddress, suite.ether(50)))
	_, err = suite.msgSrv.Swap(suite.ctx, types.NewMsgSwap(keepertest.Bob, suite.eth, suite.usdt, suite.ether(50), math.ZeroInt()))
	suite.Require().ErrorIs(err, tokentypes.ErrInsufficientBalance)

	// slippage
	_, err = suite.msgSrv.Swap(suite.ctx, types.NewMsgSwap(keepertest.Bob, suite.eth, suite.usdt, suite.ether(10), suite.ether(2000)))
	suite.Require().ErrorIs(err, types.ErrSlippageExceeded)

	after, err := suite.keeper.GetPool(suite.ctx, suite.eth, suite.usdt)
	suite.Require().NoError(err)
	suite.Require().Equal(before.String(), after.String())
	suite.requireIntEqual(suite.ether(10), token.BalanceOf(suite.ctx, suite.eth, keepertest.Bob))
	suite.Require().True(token.BalanceOf(suite.ctx, suite.usdt, keepertest.Bob).IsZero())
	suite.requireIntEqual(suite.ether(50), token.Allowance(suite.ctx, suite.eth, keepertest.Bob, types.ModuleAddress))
}

func (suite *KeeperTestSuite) TestMsgServerErrorsKeepABCICodes() {
	suite.seedEthUsdt()
	token := suite.keepers.Token
	suite.Require().NoError(token.Mint(suite.ctx, keepertest.Deployer, suite.eth, keepertest.Bob, suite.ether(10)))

	_, err := suite.msgSrv.CreatePool(suite.ctx, types.NewMsgCreatePool(keepertest.Deployer, suite.eth, suite.dai))
	suite.Require().NoError(err)

	tests := []struct {
		name      string
		run       func() error
		codespace string
		code      uint32
	}{
		{
			name: "duplicate pool",
			run: func() error {
				_, err := suite.msgSrv.CreatePool(suite.ctx, types.NewMsgCreatePool(keepertest.Deployer, suite.usdt, suite.eth))
				return err
			},
			codespace: types.ModuleName, code: types.ErrDuplicatePool.ABCICode(),
		},
		{
			name: "identical tokens",
			run: func() error {
				_, err := suite.msgSrv.CreatePool(suite.ctx, types.NewMsgCreatePool(keepertest.Deployer, suite.eth, suite.eth))
				return err
			},
			codespace: types.ModuleName, code: types.ErrInvalidPair.ABCICode(),
		},
		{
			name: "pool not found",
			run: func() error {
				_, err := suite.msgSrv.AddLiquidity(suite.ctx, types.NewMsgAddLiquidity(keepertest.Bob, suite.usdt, suite.dai, suite.ether(1), suite.ether(1)))
				return err
			},
			codespace: types.ModuleName, code: types.ErrPoolNotFound.ABCICode(),
		},
		{
			name: "zero deposit",
			run: func() error {
				_, err := suite.msgSrv.AddLiquidity(suite.ctx, types.NewMsgAddLiquidity(keepertest.Bob, suite.eth, suite.usdt, math.ZeroInt(), suite.ether(1)))
				return err
			},
			codespace: types.ModuleName, code: types.ErrInvalidAmount.ABCICode(),
		},
		{
			name: "empty pool",
			run: func() error {
				_, err := suite.msgSrv.Swap(suite.ctx, types.NewMsgSwap(keepertest.Bob, suite.eth, suite.dai, suite.ether(1), math.ZeroInt()))
				return err
			},
			codespace: types.ModuleName, code: types.ErrEmptyPool.ABCICode(),
		},
		{
			name: "slippage",
			run: func() error {
				_, err := suite.msgSrv.Swap(suite.ctx, types.NewMsgSwap(keepertest.Bob, suite.eth, suite.usdt, suite.ether(1), suite.ether(1000)))
				return err
			},
			codespace: types.ModuleName, code: types.ErrSlippageExceeded.ABCICode(),
		},
		{
			name: "missing allowance",
			run: func() error {
				_, err := suite.msgSrv.Swap(suite.ctx, types.NewMsgSwap(keepertest.Bob, suite.eth, suite.usdt, suite.ether(1), math.ZeroInt()))
				return err
			},
			codespace: tokentypes.ModuleName, code: tokentypes.ErrInsufficientAllowance.ABCICode(),
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			err := tc.run()
			suite.Require().Error(err)
			codespace, code, _ := errorsmod.ABCIInfo(err, false)
			suite.Require().Equal(tc.codespace, codespace)
			suite.Require().Equal(tc.code, code)
		})
	}
}

func (suite *KeeperTestSuite) TestMsgSwapMetricsCountOnlyCommittedSwaps() {
	pool := suite.seedEthUsdt()
	id := strconv.FormatUint(pool.Id, 10)
	metrics := keeper.NewDEXMetrics()
	success := metrics.SwapsTotal.WithLabelValues(id, "success")
	failed := metrics.SwapsTotal.WithLabelValues(id, "failed")
	successBefore := promtestutil.ToFloat64(success)
	failedBefore := promtestutil.ToFloat64(failed)

	// the pool accepts the trade but custody rejects it
	suite.Require().NoError(suite.keepers.Token.Mint(suite.ctx, keepertest.Deployer, suite.eth, keepertest.Bob, suite.ether(10)))
	_, err := suite.msgSrv.Swap(suite.ctx, types.NewMsgSwap(keepertest.Bob, suite.eth, suite.usdt, suite.ether(10), math.ZeroInt()))
	suite.Require().ErrorIs(err, tokentypes.ErrInsufficientAllowance)
	suite.Require().Equal(successBefore, promtestutil.ToFloat64(success))
	suite.Require().Equal(failedBefore+1, promtestutil.ToFloat64(failed))

	keepertest.Fund(suite.T(), suite.keepers, suite.ctx, suite.eth, keepertest.Alice, suite.ether(10))
	_, err = suite.msgSrv.Swap(suite.ctx, types.NewMsgSwap(keepertest.Alice, suite.eth, suite.usdt, suite.ether(10), math.ZeroInt()))
	suite.Require().NoError(err)
	suite.Require().Equal(successBefore+1, promtestutil.ToFloat64(success))
}

func (suite *KeeperTestSuite) TestSyncMetricsSetsPoolGauge() {
	suite.seedEthUsdt()
	_, err := suite.msgSrv.CreatePool(suite.ctx, types.NewMsgCreatePool(keepertest.Deployer, suite.eth, suite.dai))
	suite.Require().NoError(err)

	metrics := keeper.NewDEXMetrics()
	metrics.PoolsTotal.Set(0)
	suite.Require().NoError(suite.keeper.SyncMetrics(suite.ctx))
	suite.Require().Equal(float64(2), promtestutil.ToFloat64(metrics.PoolsTotal))
}
