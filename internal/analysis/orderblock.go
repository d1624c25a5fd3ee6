package analysis

import (
	"fmt"

	"github.com/marketglass/chartcore/internal/types"
)

// OrderBlockDetector finds consolidation candles that precede a strong
// directional move: the footprint of resting institutional orders.
type OrderBlockDetector struct {
	config OrderBlockConfig
}

// NewOrderBlockDetector creates a detector with the given settings.
func NewOrderBlockDetector(config OrderBlockConfig) *OrderBlockDetector {
	return &OrderBlockDetector{config: config}
}

// Name implements Detector.
func (d *OrderBlockDetector) Name() string {
	return "order_block"
}

// Detect scans interior candles for the consolidation-then-breakout shape,
// scores them against the rolling volume baseline and filters by minimum
// strength.
func (d *OrderBlockDetector) Detect(candles []types.Candle) ([]types.Overlay, error) {
	if len(candles) < 3 {
		return nil, nil
	}

	avgVolume := trailingAverageVolume(candles, d.config.AvgVolumePeriods)
	lastTime := candles[len(candles)-1].Time

	var overlays []types.Overlay

	for i := 1; i+1 < len(candles); i++ {
		candle := candles[i]

		if !d.isBlockCandidate(candles[i-1], candle, candles[i+1]) {
			continue
		}

		ob := types.OrderBlock{
			Direction:   followingDirection(candles[i+1:]),
			Price:       candle.Close,
			RangeSize:   candle.TotalRange(),
			Volume:      candle.Volume,
			StartTime:   candle.Time,
			EndTime:     lastTime,
			IsRejection: isRejectionCandle(candle),
			WickRatio:   1 - candle.BodyPercent()/100,
		}
		ob.Strength = d.strength(ob, avgVolume)

		if ob.Strength < d.config.MinStrength {
			continue
		}

		overlays = append(overlays, newOverlay(ob, fmt.Sprintf("OB %.2f", ob.Strength)))
	}

	return overlays, nil
}

// isBlockCandidate requires a small-bodied candle overlapping the previous
// range, followed by a move of at least half the candle's own range.
func (d *OrderBlockDetector) isBlockCandidate(prev, candle, next types.Candle) bool {
	if candle.TotalRange() < d.config.MinCandleRange {
		return false
	}

	if candle.BodyPercent() > d.config.MaxBodyPercent {
		return false
	}

	overlaps := minFloat(candle.High, prev.High) >= maxFloat(candle.Low, prev.Low)
	if !overlaps {
		return false
	}

	drift := candle.Close - prev.Close
	if drift < 0 {
		drift = -drift
	}

	if drift >= candle.TotalRange()*0.3 {
		return false
	}

	move := next.Close - candle.Close
	if move < 0 {
		move = -move
	}

	return move >= candle.TotalRange()*0.5
}

// strength combines a volume factor, a range factor and a rejection factor
// with 0.4/0.3/0.3 weights, clamped to [0, 1].
func (d *OrderBlockDetector) strength(ob types.OrderBlock, avgVolume float64) float64 {
	volumeStrength := 1.0
	if ob.Volume > 0 && avgVolume > 0 {
		volumeStrength = clamp01(ob.Volume / avgVolume / d.config.VolumeMultiplier)
	}

	rangeStrength := 1.0
	if d.config.MinCandleRange > 0 {
		rangeStrength = clamp01(ob.RangeSize / (d.config.MinCandleRange * 2))
	}

	rejectionStrength := 0.5
	if ob.IsRejection {
		rejectionStrength = 1.0
	}

	return clamp01(volumeStrength*0.4 + rangeStrength*0.3 + rejectionStrength*0.3)
}

// followingDirection classifies the block by the bullish/bearish majority
// of up to three candles after it.
func followingDirection(following []types.Candle) types.Direction {
	if len(following) > 3 {
		following = following[:3]
	}

	bullish := 0
	bearish := 0

	for _, candle := range following {
		if candle.IsBullish() {
			bullish++
		} else if candle.IsBearish() {
			bearish++
		}
	}

	if bearish > bullish {
		return types.DirectionBearish
	}

	return types.DirectionBullish
}

// isRejectionCandle reports whether the candle is wick-dominated or shows a
// single wick much larger than its body.
func isRejectionCandle(candle types.Candle) bool {
	if 1-candle.BodyPercent()/100 > 0.6 {
		return true
	}

	if candle.IsBullish() {
		return candle.UpperWick() > candle.BodySize()*0.8
	}

	return candle.LowerWick() > candle.BodySize()*0.8
}

// trailingAverageVolume averages the volume of the final periods candles.
func trailingAverageVolume(candles []types.Candle, periods int) float64 {
	if periods > 0 && len(candles) > periods {
		candles = candles[len(candles)-periods:]
	}

	return averageVolume(candles)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}

	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}

	return b
}
