package analysis

import (
	"fmt"

	"github.com/marketglass/chartcore/internal/types"
)

// FVGDetector finds fair value gaps: three-candle patterns whose outer
// candles leave a price band the middle candle never traded through.
type FVGDetector struct {
	config FVGConfig
}

// NewFVGDetector creates a detector with the given settings.
func NewFVGDetector(config FVGConfig) *FVGDetector {
	return &FVGDetector{config: config}
}

// Name implements Detector.
func (d *FVGDetector) Name() string {
	return "fair_value_gap"
}

// Detect scans every three-candle window for gaps, scores them, filters by
// minimum strength and marks gaps filled by later price action.
func (d *FVGDetector) Detect(candles []types.Candle) ([]types.Overlay, error) {
	if len(candles) < 3 {
		return nil, nil
	}

	avgVolume := averageVolume(candles)

	var overlays []types.Overlay

	for i := 0; i+2 < len(candles); i++ {
		first, second, third := candles[i], candles[i+1], candles[i+2]

		fvg, ok := d.analyzeWindow(first, second, third, avgVolume)
		if !ok || fvg.Strength < d.config.MinStrength {
			continue
		}

		fvg.Active = !gapFilled(fvg, candles[i+3:])

		overlays = append(overlays, newOverlay(fvg, fmt.Sprintf("FVG %.2f", fvg.Strength)))
	}

	return overlays, nil
}

func (d *FVGDetector) analyzeWindow(first, second, third types.Candle, avgVolume float64) (types.FairValueGap, bool) {
	// Bullish gap: each candle opens fully above the previous one's range,
	// leaving untested prices between the first high and the third low.
	if second.Low > first.High && third.Low > second.High {
		fvg := types.FairValueGap{
			Direction: types.DirectionBullish,
			Top:       third.Low,
			Bottom:    first.High,
			StartTime: first.Time,
			EndTime:   third.Time,
		}
		fvg.Strength = d.strength(fvg, second, third, avgVolume)

		return fvg, true
	}

	// Bearish gap: mirrored, between the third high and the first low.
	if second.High < first.Low && third.High < second.Low {
		fvg := types.FairValueGap{
			Direction: types.DirectionBearish,
			Top:       first.Low,
			Bottom:    third.High,
			StartTime: first.Time,
			EndTime:   third.Time,
		}
		fvg.Strength = d.strength(fvg, second, third, avgVolume)

		return fvg, true
	}

	return types.FairValueGap{}, false
}

// strength combines a size factor, a volume factor and a wick factor with
// 0.4/0.3/0.3 weights, clamped to [0, 1].
func (d *FVGDetector) strength(fvg types.FairValueGap, middle, third types.Candle, avgVolume float64) float64 {
	size := fvg.Size()

	sizeStrength := 0.5
	switch {
	case size >= d.config.MinSize && size <= d.config.MaxSize:
		sizeStrength = 1.0
	case size < d.config.MinSize:
		sizeStrength = 0.2
	}

	volumeStrength := 1.0
	if d.config.RequireVolumeSpike && avgVolume > 0 {
		ratio := third.Volume / avgVolume
		volumeStrength = clamp01(ratio / d.config.VolumeMultiplier)
	}

	// A small-bodied middle candle (long wicks) marks a cleaner imbalance.
	wickStrength := 1.0 - middle.BodyPercent()/100
	if wickStrength < 0.3 {
		wickStrength = 0.3
	}

	return clamp01(sizeStrength*0.4 + volumeStrength*0.3 + wickStrength*0.3)
}

// gapFilled reports whether later price action traded back into the gap:
// a bullish gap fills from above when a low reaches its bottom, a bearish
// gap from below when a high reaches its top.
func gapFilled(fvg types.FairValueGap, later []types.Candle) bool {
	for _, candle := range later {
		if fvg.Direction == types.DirectionBullish && candle.Low <= fvg.Bottom {
			return true
		}

		if fvg.Direction == types.DirectionBearish && candle.High >= fvg.Top {
			return true
		}
	}

	return false
}

func averageVolume(candles []types.Candle) float64 {
	sum := 0.0
	n := 0

	for _, candle := range candles {
		if candle.Volume > 0 {
			sum += candle.Volume
			n++
		}
	}

	if n == 0 {
		return 0
	}

	return sum / float64(n)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}
