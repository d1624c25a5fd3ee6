package chart

import (
	"fmt"
	"time"

	"github.com/marketglass/chartcore/internal/types"
)

const (
	gridCells       = 10
	priceLabelCount = 5
	timeLabelCount  = 5
	axisLabelColor  = "#9aa0ae"
)

// drawStatic paints the background, the optional grid, the axes and the
// axis labels. It never touches series or overlay data.
func drawStatic(c Canvas, t Transform, cfg types.ChartConfig) {
	c.Clear()
	c.FillRect(0, 0, t.Width, t.Height, cfg.Palette.Background, 1)

	if cfg.ShowGrid {
		drawGrid(c, t, cfg)
	}

	drawAxes(c, t, cfg)

	if t.HasData() {
		drawAxisLabels(c, t)
	}
}

// drawGrid paints a fixed 10x10 dashed reference grid over the chart area.
// The grid is a visual frame only and is not tied to data density.
func drawGrid(c Canvas, t Transform, cfg types.ChartConfig) {
	left := t.Padding.Left
	top := t.Padding.Top
	right := t.Width - t.Padding.Right
	bottom := t.Height - t.Padding.Bottom

	for i := 0; i <= gridCells; i++ {
		frac := float64(i) / gridCells

		x := left + (right-left)*frac
		c.Line(x, top, x, bottom, cfg.Palette.Grid, 1, types.LineStyleDashed)

		y := top + (bottom-top)*frac
		c.Line(left, y, right, y, cfg.Palette.Grid, 1, types.LineStyleDashed)
	}
}

// drawAxes paints the solid price and time axis lines. Axes are always
// drawn, independent of the grid toggle.
func drawAxes(c Canvas, t Transform, cfg types.ChartConfig) {
	left := t.Padding.Left
	top := t.Padding.Top
	right := t.Width - t.Padding.Right
	bottom := t.Height - t.Padding.Bottom

	c.Line(left, top, left, bottom, cfg.Palette.Grid, 1, types.LineStyleSolid)
	c.Line(left, bottom, right, bottom, cfg.Palette.Grid, 1, types.LineStyleSolid)
}

// drawAxisLabels paints 5 evenly spaced price labels and 5 evenly spaced
// time labels over the domain ranges, positioned through the transform.
func drawAxisLabels(c Canvas, t Transform) {
	for i := 0; i < priceLabelCount; i++ {
		frac := float64(i) / (priceLabelCount - 1)
		price := t.MinPrice + t.PriceRange*frac
		y := t.PriceToPixel(price)
		c.Text(4, y, fmt.Sprintf("%.2f", price), axisLabelColor)
	}

	for i := 0; i < timeLabelCount; i++ {
		frac := float64(i) / (timeLabelCount - 1)
		ms := t.MinTime + int64(float64(t.TimeRange)*frac)
		ts := time.UnixMilli(ms)
		x := t.TimeToPixel(ts)
		c.Text(x, t.Height-t.Padding.Bottom+14, ts.Format("15:04"), axisLabelColor)
	}
}
