package chart

import (
	"fmt"

	"github.com/marketglass/chartcore/internal/types"
)

// fibLevels are the retracement ratios drawn by the fibonacci tool.
var fibLevels = []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1}

// drawDrawing paints one user drawing. Endpoints are pixel-space values
// captured at draw time, so no transform is involved.
func drawDrawing(c Canvas, t Transform, d types.Drawing) {
	switch d.Tool {
	case types.DrawingToolTrendline:
		c.Line(d.Start.X, d.Start.Y, d.End.X, d.End.Y, d.Color, d.Width, d.Style)
	case types.DrawingToolHorizontalLine:
		c.Line(t.Padding.Left, d.Start.Y, t.Width-t.Padding.Right, d.Start.Y, d.Color, d.Width, d.Style)
	case types.DrawingToolVerticalLine:
		c.Line(d.Start.X, t.Padding.Top, d.Start.X, t.Height-t.Padding.Bottom, d.Color, d.Width, d.Style)
	case types.DrawingToolRectangle:
		x := d.Start.X
		if d.End.X < x {
			x = d.End.X
		}

		y := d.Start.Y
		if d.End.Y < y {
			y = d.End.Y
		}

		w := d.End.X - d.Start.X
		if w < 0 {
			w = -w
		}

		h := d.End.Y - d.Start.Y
		if h < 0 {
			h = -h
		}

		c.StrokeRect(x, y, w, h, d.Color, d.Width)
	case types.DrawingToolFibonacci:
		drawFibonacci(c, d)
	}
}

// drawFibonacci paints the retracement levels between the gesture's start
// and end rows, each labeled with its ratio.
func drawFibonacci(c Canvas, d types.Drawing) {
	x1 := d.Start.X
	x2 := d.End.X

	if x2 < x1 {
		x1, x2 = x2, x1
	}

	for _, level := range fibLevels {
		y := d.Start.Y + (d.End.Y-d.Start.Y)*level
		c.Line(x1, y, x2, y, d.Color, d.Width, d.Style)
		c.Text(x2+4, y, fmt.Sprintf("%.1f%%", level*100), d.Color)
	}
}
