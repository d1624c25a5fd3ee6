package analysis

import (
	"github.com/marketglass/chartcore/internal/types"
)

type trendState int

const (
	trendRanging trendState = iota
	trendUp
	trendDown
)

// StructureDetector tracks swing progression and emits market structure
// break markers: BOS for breaks continuing the trend, CHoCH for breaks
// against it or out of a range.
type StructureDetector struct {
	config StructureConfig
}

// NewStructureDetector creates a detector with the given settings.
func NewStructureDetector(config StructureConfig) *StructureDetector {
	return &StructureDetector{config: config}
}

// Name implements Detector.
func (d *StructureDetector) Name() string {
	return "market_structure"
}

// Detect walks the candle window, maintaining the most recent unbroken
// swing high and low, and marks each candle close that takes one of them
// out. Every swing level breaks at most once.
func (d *StructureDetector) Detect(candles []types.Candle) ([]types.Overlay, error) {
	points := findSwingPoints(candles, d.config.SwingPeriod)
	if len(points) == 0 {
		return nil, nil
	}

	var overlays []types.Overlay

	var highs, lows []swingPoint
	next := 0

	var lastHigh, lastLow swingPoint
	hasHigh, hasLow := false, false

	for i, candle := range candles {
		// Swing points become known once their right-side window closes.
		for next < len(points) && points[next].index+d.config.SwingPeriod <= i {
			p := points[next]
			if p.kind == swingHigh {
				highs = append(highs, p)
				lastHigh, hasHigh = p, true
			} else {
				lows = append(lows, p)
				lastLow, hasLow = p, true
			}

			next++
		}

		trend := d.trend(highs, lows)

		if hasHigh && candle.Close > lastHigh.price {
			overlays = append(overlays, newOverlay(types.MarketStructure{
				Break:     breakClass(trend, types.DirectionBullish),
				Direction: types.DirectionBullish,
				Price:     lastHigh.price,
				Time:      candle.Time,
				Strength:  lastHigh.strength,
			}, breakLabel(trend, types.DirectionBullish)))

			hasHigh = false
		}

		if hasLow && candle.Close < lastLow.price {
			overlays = append(overlays, newOverlay(types.MarketStructure{
				Break:     breakClass(trend, types.DirectionBearish),
				Direction: types.DirectionBearish,
				Price:     lastLow.price,
				Time:      candle.Time,
				Strength:  lastLow.strength,
			}, breakLabel(trend, types.DirectionBearish)))

			hasLow = false
		}
	}

	return overlays, nil
}

// trend reads higher-highs/higher-lows progression off the last two swing
// points of each kind. Too few points, or mixed progression, is ranging.
func (d *StructureDetector) trend(highs, lows []swingPoint) trendState {
	if len(highs) < d.config.MinSwingPoints || len(lows) < d.config.MinSwingPoints {
		return trendRanging
	}

	lastHigh, prevHigh := highs[len(highs)-1], highs[len(highs)-2]
	lastLow, prevLow := lows[len(lows)-1], lows[len(lows)-2]

	if lastHigh.price > prevHigh.price && lastLow.price > prevLow.price {
		return trendUp
	}

	if lastHigh.price < prevHigh.price && lastLow.price < prevLow.price {
		return trendDown
	}

	return trendRanging
}

// breakClass is BOS when the break continues the established trend and
// CHoCH otherwise, including any break out of a ranging state.
func breakClass(trend trendState, direction types.Direction) types.BreakType {
	if trend == trendUp && direction == types.DirectionBullish {
		return types.BreakTypeBOS
	}

	if trend == trendDown && direction == types.DirectionBearish {
		return types.BreakTypeBOS
	}

	return types.BreakTypeCHoCH
}

func breakLabel(trend trendState, direction types.Direction) string {
	if breakClass(trend, direction) == types.BreakTypeBOS {
		return "BOS"
	}

	return "CHoCH"
}
