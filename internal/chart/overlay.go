package chart

import (
	"github.com/marketglass/chartcore/internal/types"
)

// OverlayToggles are the coarse per-category visibility switches. An
// overlay is drawn only when its own Visible flag and its category toggle
// are both set. Market structure markers have no category toggle.
type OverlayToggles struct {
	ShowFVG         bool
	ShowOrderBlocks bool
	ShowLiquidity   bool
}

// DefaultOverlayToggles enables every category.
func DefaultOverlayToggles() OverlayToggles {
	return OverlayToggles{ShowFVG: true, ShowOrderBlocks: true, ShowLiquidity: true}
}

const (
	bullishColor = "#26a69a"
	bearishColor = "#ef5350"
	buySideColor = "#4caf50"
	sellSideColor = "#f44336"
	bosColor     = "#2196f3"
	chochColor   = "#ff9800"

	poolRadius      = 20
	notchHalfWidth  = 12
	notchTickHeight = 4

	defaultFillOpacity = 0.15
)

// drawOverlays paints every visible overlay in list order, so later
// entries occlude earlier ones at intersecting pixels.
func drawOverlays(c Canvas, t Transform, overlays []types.Overlay, toggles OverlayToggles) {
	for _, o := range overlays {
		if !o.Visible {
			continue
		}

		switch data := o.Data.(type) {
		case types.FairValueGap:
			if toggles.ShowFVG {
				drawFairValueGap(c, t, o, data)
			}
		case types.OrderBlock:
			if toggles.ShowOrderBlocks {
				drawOrderBlock(c, t, o, data)
			}
		case types.LiquidityPool:
			if toggles.ShowLiquidity {
				drawLiquidityPool(c, t, o, data)
			}
		case types.LiquiditySweep:
			if toggles.ShowLiquidity {
				drawLiquiditySweep(c, t, o, data)
			}
		case types.MarketStructure:
			drawMarketStructure(c, t, o, data)
		case types.Trendline:
			drawTrendlineOverlay(c, t, o, data)
		}
	}
}

func overlayColor(o types.Overlay, fallback string) string {
	if o.Color != "" {
		return o.Color
	}

	return fallback
}

func overlayOpacity(o types.Overlay) float64 {
	if o.Opacity > 0 {
		return o.Opacity
	}

	return defaultFillOpacity
}

func directionColor(d types.Direction) string {
	if d == types.DirectionBullish {
		return bullishColor
	}

	return bearishColor
}

func sideColor(s types.Side) string {
	if s == types.SideBuy {
		return buySideColor
	}

	return sellSideColor
}

// drawFairValueGap paints a translucent rectangle over the gap's time and
// price bands with a 1px border.
func drawFairValueGap(c Canvas, t Transform, o types.Overlay, fvg types.FairValueGap) {
	x1 := t.TimeToPixel(fvg.StartTime)
	x2 := t.TimeToPixel(fvg.EndTime)
	yTop := t.PriceToPixel(fvg.Top)
	yBottom := t.PriceToPixel(fvg.Bottom)

	color := overlayColor(o, directionColor(fvg.Direction))

	c.FillRect(x1, yTop, x2-x1, yBottom-yTop, color, overlayOpacity(o))
	c.StrokeRect(x1, yTop, x2-x1, yBottom-yTop, color, 1)

	if label, err := o.Label.Take(); err == nil {
		c.Text(x1+2, yTop-4, label, color)
	}
}

// drawOrderBlock paints the block band from the anchor price downward by
// the range size, for both directions alike, with a 2px border for visual
// priority over fair value gaps.
func drawOrderBlock(c Canvas, t Transform, o types.Overlay, ob types.OrderBlock) {
	x1 := t.TimeToPixel(ob.StartTime)
	x2 := t.TimeToPixel(ob.EndTime)
	yTop := t.PriceToPixel(ob.Price)
	yBottom := t.PriceToPixel(ob.Price - ob.RangeSize)

	color := overlayColor(o, directionColor(ob.Direction))

	c.FillRect(x1, yTop, x2-x1, yBottom-yTop, color, overlayOpacity(o))
	c.StrokeRect(x1, yTop, x2-x1, yBottom-yTop, color, 2)

	if label, err := o.Label.Take(); err == nil {
		c.Text(x1+2, yTop-4, label, color)
	}
}

// drawLiquidityPool paints a fixed-radius circle at the pool's creation
// time and price level.
func drawLiquidityPool(c Canvas, t Transform, o types.Overlay, pool types.LiquidityPool) {
	cx := t.TimeToPixel(pool.CreatedAt)
	cy := t.PriceToPixel(pool.Price)

	color := overlayColor(o, sideColor(pool.Side))

	c.FillCircle(cx, cy, poolRadius, color, overlayOpacity(o))
	c.StrokeCircle(cx, cy, poolRadius, color, 1)
}

// drawLiquiditySweep paints a dashed vertical run from the swept pool level
// to the sweep extreme with a small marker at the extreme.
func drawLiquiditySweep(c Canvas, t Transform, o types.Overlay, sweep types.LiquiditySweep) {
	x := t.TimeToPixel(sweep.SweepTime)
	yPool := t.PriceToPixel(sweep.PoolPrice)
	ySweep := t.PriceToPixel(sweep.SweepPrice)

	color := overlayColor(o, sideColor(sweep.Side))

	c.Line(x, yPool, x, ySweep, color, 1, types.LineStyleDashed)
	c.FillCircle(x, ySweep, 3, color, 1)
}

// drawMarketStructure paints the three-segment notch marker (left tick,
// flat run, right tick) centered at the break point.
func drawMarketStructure(c Canvas, t Transform, o types.Overlay, ms types.MarketStructure) {
	x := t.TimeToPixel(ms.Time)
	y := t.PriceToPixel(ms.Price)

	color := bosColor
	if ms.Break == types.BreakTypeCHoCH {
		color = chochColor
	}

	color = overlayColor(o, color)

	tick := float64(notchTickHeight)
	if ms.Direction == types.DirectionBearish {
		tick = -tick
	}

	left := x - notchHalfWidth
	right := x + notchHalfWidth

	c.Line(left, y-tick, left+notchTickHeight, y, color, 2, types.LineStyleSolid)
	c.Line(left+notchTickHeight, y, right-notchTickHeight, y, color, 2, types.LineStyleSolid)
	c.Line(right-notchTickHeight, y, right, y-tick, color, 2, types.LineStyleSolid)

	if label, err := o.Label.Take(); err == nil {
		c.Text(x+notchHalfWidth+2, y, label, color)
	}
}

// drawTrendlineOverlay paints a straight segment between two domain points.
func drawTrendlineOverlay(c Canvas, t Transform, o types.Overlay, tl types.Trendline) {
	x1 := t.TimeToPixel(tl.StartTime)
	y1 := t.PriceToPixel(tl.StartPrice)
	x2 := t.TimeToPixel(tl.EndTime)
	y2 := t.PriceToPixel(tl.EndPrice)

	c.Line(x1, y1, x2, y2, overlayColor(o, bullishColor), 1, types.LineStyleSolid)
}
