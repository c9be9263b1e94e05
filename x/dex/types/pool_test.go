package types

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestNewPoolCanonicalOrder(t *testing.T) {
	pool := NewPool(1, addrHigh, addrLow)
	require.Equal(t, addrLow, pool.TokenA)
	require.Equal(t, addrHigh, pool.TokenB)
	require.True(t, pool.ReserveA.IsZero())
	require.True(t, pool.ReserveB.IsZero())
	require.True(t, pool.IsEmpty())
	require.NoError(t, pool.Validate())
}

func TestPoolReservesOrientation(t *testing.T) {
	pool := NewPool(1, addrLow, addrHigh)
	pool.ReserveA = math.NewInt(1000)
	pool.ReserveB = math.NewInt(200000)

	x, y, err := pool.Reserves(addrLow, addrHigh)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1000), x)
	require.Equal(t, math.NewInt(200000), y)

	x, y, err = pool.Reserves(addrHigh, addrLow)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(200000), x)
	require.Equal(t, math.NewInt(1000), y)

	stranger := common.HexToAddress("0x00000000000000000000000000000000000000cc")
	_, _, err = pool.Reserves(addrLow, stranger)
	require.ErrorIs(t, err, ErrInvalidPair)

	// both sides must be distinct members of the pool
	_, _, err = pool.Reserves(addrLow, addrLow)
	require.ErrorIs(t, err, ErrInvalidPair)
	require.True(t, pool.HasToken(addrHigh))
	require.False(t, pool.HasToken(stranger))
}

func TestPoolProduct(t *testing.T) {
	pool := NewPool(1, addrLow, addrHigh)
	pool.ReserveA = math.NewInt(1000)
	pool.ReserveB = math.NewInt(2000)
	require.Equal(t, int64(2_000_000), pool.Product().Int64())

	// the product of two maximal reserves does not fit in 256 bits
	max := math.NewIntFromBigInt(MaxUint256())
	pool.ReserveA, pool.ReserveB = max, max
	require.Greater(t, pool.Product().BitLen(), 256)
}

func TestPoolValidate(t *testing.T) {
	valid := func() Pool {
		p := NewPool(3, addrLow, addrHigh)
		p.ReserveA = math.NewInt(10)
		p.ReserveB = math.NewInt(20)
		return p
	}

	tests := []struct {
		name    string
		mutate  func(*Pool)
		wantErr bool
	}{
		{"valid", func(*Pool) {}, false},
		{"zero id", func(p *Pool) { p.Id = 0 }, true},
		{"zero token", func(p *Pool) { p.TokenA = common.Address{} }, true},
		{"identical tokens", func(p *Pool) { p.TokenB = p.TokenA }, true},
		{"wrong order", func(p *Pool) { p.TokenA, p.TokenB = p.TokenB, p.TokenA }, true},
		{"negative reserve", func(p *Pool) { p.ReserveA = math.NewInt(-1) }, true},
		{"one sided", func(p *Pool) { p.ReserveB = math.ZeroInt() }, true},
		{"nil reserve", func(p *Pool) { p.ReserveA = math.Int{} }, true},
		{"both empty", func(p *Pool) { p.ReserveA, p.ReserveB = math.ZeroInt(), math.ZeroInt() }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := valid()
			tc.mutate(&p)
			err := p.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
