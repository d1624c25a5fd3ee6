package analysis

import (
	"time"

	"github.com/marketglass/chartcore/internal/types"
)

type swingKind int

const (
	swingHigh swingKind = iota
	swingLow
)

// swingPoint is a local price extreme that dominates its neighborhood.
type swingPoint struct {
	kind     swingKind
	price    float64
	time     time.Time
	index    int
	strength float64
}

// findSwingPoints returns candles whose high (or low) is the strict extreme
// of the window period candles on each side, in chronological order.
// Endpoint candles without a full window are never swing points.
func findSwingPoints(candles []types.Candle, period int) []swingPoint {
	if period < 1 || len(candles) < 2*period+1 {
		return nil
	}

	avgRange := averageRange(candles)

	var points []swingPoint

	for i := period; i+period < len(candles); i++ {
		candle := candles[i]

		isHigh := true
		isLow := true

		for j := i - period; j <= i+period; j++ {
			if j == i {
				continue
			}

			if candles[j].High >= candle.High {
				isHigh = false
			}

			if candles[j].Low <= candle.Low {
				isLow = false
			}

			if !isHigh && !isLow {
				break
			}
		}

		switch {
		case isHigh:
			points = append(points, swingPoint{
				kind:     swingHigh,
				price:    candle.High,
				time:     candle.Time,
				index:    i,
				strength: swingStrength(candle, avgRange),
			})
		case isLow:
			points = append(points, swingPoint{
				kind:     swingLow,
				price:    candle.Low,
				time:     candle.Time,
				index:    i,
				strength: swingStrength(candle, avgRange),
			})
		}
	}

	return points
}

// swingStrength scores an extreme by its range relative to the window
// average and by how wick-dominated the candle is.
func swingStrength(candle types.Candle, avgRange float64) float64 {
	rangeStrength := 1.0
	if avgRange > 0 {
		rangeStrength = clamp01(candle.TotalRange() / avgRange)
	}

	wickStrength := 1 - candle.BodyPercent()/100

	return clamp01(rangeStrength*0.6 + wickStrength*0.4)
}

func averageRange(candles []types.Candle) float64 {
	if len(candles) == 0 {
		return 0
	}

	sum := 0.0
	for _, candle := range candles {
		sum += candle.TotalRange()
	}

	return sum / float64(len(candles))
}
