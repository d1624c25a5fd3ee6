package chart

import (
	"github.com/marketglass/chartcore/internal/types"
)

const (
	volumeBandHeight = 40
	bodyWidthRatio   = 0.7
	minBodyWidth     = 1
)

// drawSeries paints the primary price series in the configured mode and,
// when enabled, the volume histogram. Candles are consumed in array order;
// the caller supplies chronologically sorted data.
func drawSeries(c Canvas, t Transform, cfg types.ChartConfig, candles []types.Candle) {
	if len(candles) == 0 {
		return
	}

	switch cfg.Type {
	case types.ChartTypeCandlestick:
		drawCandlesticks(c, t, cfg, candles)
	case types.ChartTypeLine:
		drawCloseLine(c, t, cfg, candles, false)
	case types.ChartTypeArea:
		drawCloseLine(c, t, cfg, candles, true)
	}

	if cfg.ShowVolume {
		drawVolume(c, t, cfg, candles)
	}
}

func drawCandlesticks(c Canvas, t Transform, cfg types.ChartConfig, candles []types.Candle) {
	n := len(candles)

	bodyWidth := t.SlotWidth(n) * bodyWidthRatio
	if bodyWidth < minBodyWidth {
		bodyWidth = minBodyWidth
	}

	for i, candle := range candles {
		x := t.SlotCenter(i, n)

		color := cfg.Palette.Down
		if candle.Close >= candle.Open {
			color = cfg.Palette.Up
		}

		yOpen := t.PriceToPixel(candle.Open)
		yClose := t.PriceToPixel(candle.Close)
		yHigh := t.PriceToPixel(candle.High)
		yLow := t.PriceToPixel(candle.Low)

		bodyTop := yOpen
		if yClose < yOpen {
			bodyTop = yClose
		}

		bodyBottom := yOpen
		if yClose > yOpen {
			bodyBottom = yClose
		}

		// A doji body has zero height; the fill is simply empty.
		c.FillRect(x-bodyWidth/2, bodyTop, bodyWidth, bodyBottom-bodyTop, color, 1)

		c.Line(x, yHigh, x, bodyTop, color, 1, types.LineStyleSolid)
		c.Line(x, bodyBottom, x, yLow, color, 1, types.LineStyleSolid)
	}
}

func drawCloseLine(c Canvas, t Transform, cfg types.ChartConfig, candles []types.Candle, filled bool) {
	n := len(candles)

	points := make([]types.Point, 0, n)
	for i, candle := range candles {
		points = append(points, types.Point{
			X: t.SlotCenter(i, n),
			Y: t.PriceToPixel(candle.Close),
		})
	}

	if filled {
		bottom := t.Height - t.Padding.Bottom
		region := make([]types.Point, 0, n+2)
		region = append(region, types.Point{X: points[0].X, Y: bottom})
		region = append(region, points...)
		region = append(region, types.Point{X: points[n-1].X, Y: bottom})
		c.FillPolygon(region, cfg.Palette.Up, 0.25)
	}

	c.Polyline(points, cfg.Palette.Up, 2)
}

// drawVolume paints a fixed-height histogram band above the time axis. Bars
// scale against the maximum volume of the current window and use the fixed
// volume color regardless of candle direction.
func drawVolume(c Canvas, t Transform, cfg types.ChartConfig, candles []types.Candle) {
	maxVolume := 0.0
	for _, candle := range candles {
		if candle.Volume > maxVolume {
			maxVolume = candle.Volume
		}
	}

	if maxVolume <= 0 {
		return
	}

	n := len(candles)
	bottom := t.Height - t.Padding.Bottom

	barWidth := t.SlotWidth(n) * bodyWidthRatio
	if barWidth < minBodyWidth {
		barWidth = minBodyWidth
	}

	for i, candle := range candles {
		h := candle.Volume / maxVolume * volumeBandHeight
		x := t.SlotCenter(i, n)
		c.FillRect(x-barWidth/2, bottom-h, barWidth, h, cfg.Palette.Volume, 0.5)
	}
}
