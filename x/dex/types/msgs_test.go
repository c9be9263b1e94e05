package types

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var trader = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

func TestMsgCreatePoolValidateBasic(t *testing.T) {
	require.NoError(t, NewMsgCreatePool(trader, addrLow, addrHigh).ValidateBasic())
	require.ErrorIs(t, NewMsgCreatePool(trader, addrLow, addrLow).ValidateBasic(), ErrInvalidPair)
	require.ErrorIs(t, NewMsgCreatePool(trader, common.Address{}, addrLow).ValidateBasic(), ErrInvalidPair)
	require.ErrorIs(t, NewMsgCreatePool(common.Address{}, addrLow, addrHigh).ValidateBasic(), ErrInvalidAddress)
}

func TestMsgAddLiquidityValidateBasic(t *testing.T) {
	one := math.OneInt()
	require.NoError(t, NewMsgAddLiquidity(trader, addrLow, addrHigh, one, one).ValidateBasic())
	require.ErrorIs(t, NewMsgAddLiquidity(trader, addrLow, addrHigh, math.ZeroInt(), one).ValidateBasic(), ErrInvalidAmount)
	require.ErrorIs(t, NewMsgAddLiquidity(trader, addrLow, addrHigh, one, math.NewInt(-5)).ValidateBasic(), ErrInvalidAmount)
	require.ErrorIs(t, NewMsgAddLiquidity(trader, addrLow, addrHigh, math.Int{}, one).ValidateBasic(), ErrInvalidAmount)
	require.ErrorIs(t, NewMsgAddLiquidity(trader, addrHigh, addrHigh, one, one).ValidateBasic(), ErrInvalidPair)
}

func TestMsgSwapValidateBasic(t *testing.T) {
	tests := []struct {
		name string
		msg  *MsgSwap
		err  error
	}{
		{"valid", NewMsgSwap(trader, addrLow, addrHigh, math.NewInt(10), math.ZeroInt()), nil},
		{"zero amount", NewMsgSwap(trader, addrLow, addrHigh, math.ZeroInt(), math.ZeroInt()), ErrInvalidAmount},
		{"negative min out", NewMsgSwap(trader, addrLow, addrHigh, math.NewInt(10), math.NewInt(-1)), ErrInvalidAmount},
		{"nil min out", NewMsgSwap(trader, addrLow, addrHigh, math.NewInt(10), math.Int{}), ErrInvalidAmount},
		{"same token", NewMsgSwap(trader, addrLow, addrLow, math.NewInt(10), math.ZeroInt()), ErrInvalidPair},
		{"zero trader", NewMsgSwap(common.Address{}, addrLow, addrHigh, math.NewInt(10), math.ZeroInt()), ErrInvalidAddress},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}
}
