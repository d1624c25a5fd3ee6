package analysis

import (
	"github.com/marketglass/chartcore/internal/types"
)

// LiquidityDetector clusters swing points into liquidity pools and flags
// sweeps where price runs through a pool before the window ends.
type LiquidityDetector struct {
	config LiquidityConfig
}

// NewLiquidityDetector creates a detector with the given settings.
func NewLiquidityDetector(config LiquidityConfig) *LiquidityDetector {
	return &LiquidityDetector{config: config}
}

// Name implements Detector.
func (d *LiquidityDetector) Name() string {
	return "liquidity"
}

// Detect finds pools and their sweeps. Pools above price (clustered swing
// highs) are buy-side liquidity; pools below (swing lows) are sell-side.
func (d *LiquidityDetector) Detect(candles []types.Candle) ([]types.Overlay, error) {
	points := findSwingPoints(candles, d.config.SwingPeriod)
	if len(points) == 0 {
		return nil, nil
	}

	pools := d.clusterPools(points)

	var overlays []types.Overlay

	for i := range pools {
		sweep, swept := d.findSweep(pools[i], candles)
		pools[i].Swept = swept

		overlays = append(overlays, newOverlay(pools[i], ""))

		if swept {
			overlays = append(overlays, newOverlay(sweep, ""))
		}
	}

	return overlays, nil
}

// clusterPools greedily groups same-kind swing points whose prices sit
// within PoolRange of the cluster anchor. Each cluster of two or more
// points becomes one pool at the anchor level.
func (d *LiquidityDetector) clusterPools(points []swingPoint) []types.LiquidityPool {
	var pools []types.LiquidityPool

	used := make([]bool, len(points))

	for i, anchor := range points {
		if used[i] {
			continue
		}

		touches := 1
		strengthSum := anchor.strength

		for j := i + 1; j < len(points); j++ {
			if used[j] || points[j].kind != anchor.kind {
				continue
			}

			diff := points[j].price - anchor.price
			if diff < 0 {
				diff = -diff
			}

			if diff <= d.config.PoolRange {
				used[j] = true
				touches++
				strengthSum += points[j].strength
			}
		}

		if touches < 2 {
			continue
		}

		side := types.SideBuy
		if anchor.kind == swingLow {
			side = types.SideSell
		}

		touchStrength := clamp01(float64(touches) / float64(d.config.MinPoolTouches*2))
		avgStrength := strengthSum / float64(touches)

		pools = append(pools, types.LiquidityPool{
			Price:     anchor.price,
			Side:      side,
			CreatedAt: anchor.time,
			Touches:   touches,
			Strength:  clamp01(touchStrength*0.6 + avgStrength*0.4),
		})
	}

	return pools
}

// findSweep scans candles after the pool formed for price extending beyond
// the level by at least SweepExtension, returning the first occurrence.
func (d *LiquidityDetector) findSweep(pool types.LiquidityPool, candles []types.Candle) (types.LiquiditySweep, bool) {
	for _, candle := range candles {
		if !candle.Time.After(pool.CreatedAt) {
			continue
		}

		if pool.Side == types.SideBuy && candle.High >= pool.Price+d.config.SweepExtension {
			return types.LiquiditySweep{
				Side:       pool.Side,
				PoolPrice:  pool.Price,
				SweepPrice: candle.High,
				SweepTime:  candle.Time,
				Strength:   pool.Strength,
			}, true
		}

		if pool.Side == types.SideSell && candle.Low <= pool.Price-d.config.SweepExtension {
			return types.LiquiditySweep{
				Side:       pool.Side,
				PoolPrice:  pool.Price,
				SweepPrice: candle.Low,
				SweepTime:  candle.Time,
				Strength:   pool.Strength,
			}, true
		}
	}

	return types.LiquiditySweep{}, false
}
