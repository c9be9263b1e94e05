package keeper

import (
	"context"
	"strconv"
	"sync"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/simpledex/simpledex/x/dex/types"
)

// DEXMetrics holds all Prometheus metrics for the DEX module
type DEXMetrics struct {
	// Swap metrics
	SwapsTotal        *prometheus.CounterVec
	SwapVolume        *prometheus.CounterVec
	SwapLatency       prometheus.Histogram
	SwapFeesCollected *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded *prometheus.CounterVec
	PoolReserves   *prometheus.GaugeVec

	// Pool metrics
	PoolsTotal    prometheus.Gauge
	PoolCreations prometheus.Counter
}

var (
	dexMetricsOnce sync.Once
	dexMetrics     *DEXMetrics
)

// NewDEXMetrics creates and registers DEX metrics (singleton pattern)
func NewDEXMetrics() *DEXMetrics {
	dexMetricsOnce.Do(func() {
		dexMetrics = &DEXMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "simpledex",
					Subsystem: "dex",
					Name:      "swaps_total",
					Help:      "Total number of swap attempts by outcome",
				},
				[]string{"pool_id", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "simpledex",
					Subsystem: "dex",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pool_id", "token"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "simpledex",
					Subsystem: "dex",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			SwapFeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "simpledex",
					Subsystem: "dex",
					Name:      "swap_fees_collected_total",
					Help:      "Total swap fees retained by pools",
				},
				[]string{"pool_id", "token"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "simpledex",
					Subsystem: "dex",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to pools",
				},
				[]string{"pool_id", "token"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "simpledex",
					Subsystem: "dex",
					Name:      "pool_reserves",
					Help:      "Current pool reserves in base units",
				},
				[]string{"pool_id", "token"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "simpledex",
					Subsystem: "dex",
					Name:      "pools_total",
					Help:      "Total number of pools",
				},
			),
			PoolCreations: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "simpledex",
					Subsystem: "dex",
					Name:      "pool_creations_total",
					Help:      "Total number of pools created",
				},
			),
		}
	})
	return dexMetrics
}

// recordReserves publishes the pool's reserves as gauges.
func (k Keeper) recordReserves(pool types.Pool) {
	id := strconv.FormatUint(pool.Id, 10)
	k.metrics.PoolReserves.WithLabelValues(id, pool.TokenA.Hex()).Set(toFloat(pool.ReserveA))
	k.metrics.PoolReserves.WithLabelValues(id, pool.TokenB.Hex()).Set(toFloat(pool.ReserveB))
}

// recordSwap publishes a completed swap. The pool is read back after the
// write so the reserve gauges match the new state.
func (k Keeper) recordSwap(ctx context.Context, tokenIn, tokenOut common.Address, amountIn math.Int) {
	pool, err := k.GetPool(ctx, tokenIn, tokenOut)
	if err != nil {
		return
	}
	id := strconv.FormatUint(pool.Id, 10)

	k.metrics.SwapsTotal.WithLabelValues(id, "success").Inc()
	k.metrics.SwapVolume.WithLabelValues(id, tokenIn.Hex()).Add(toFloat(amountIn))
	if params, err := k.GetParams(ctx); err == nil && params.SwapFee.IsPositive() {
		fee := math.LegacyNewDecFromInt(amountIn).Mul(params.SwapFee).TruncateInt()
		k.metrics.SwapFeesCollected.WithLabelValues(id, tokenIn.Hex()).Add(toFloat(fee))
	}
	k.recordReserves(pool)
}

// recordSwapFailure counts a swap the pool accepted but custody rejected.
func (k Keeper) recordSwapFailure(ctx context.Context, tokenIn, tokenOut common.Address) {
	pool, err := k.GetPool(ctx, tokenIn, tokenOut)
	if err != nil {
		return
	}
	k.metrics.SwapsTotal.WithLabelValues(strconv.FormatUint(pool.Id, 10), "failed").Inc()
}

// SyncMetrics sets the pool gauges from stored state, for a node that
// reopens an existing ledger instead of loading genesis.
func (k Keeper) SyncMetrics(ctx context.Context) error {
	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return err
	}
	k.metrics.PoolsTotal.Set(float64(len(pools)))
	for _, pool := range pools {
		k.recordReserves(pool)
	}
	return nil
}
