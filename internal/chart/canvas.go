package chart

import "github.com/marketglass/chartcore/internal/types"

// Canvas is the drawing surface the rendering pipeline paints onto. Hosts
// supply a concrete implementation (a terminal cell grid, an HTML canvas
// bridge, an image rasterizer); the pipeline only issues these primitives.
//
// Coordinates are pixels with the origin at the top-left. Colors are opaque
// strings interpreted by the host. Opacity is in [0, 1].
type Canvas interface {
	// Clear erases the whole surface.
	Clear()
	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64, color string, opacity float64)
	// StrokeRect outlines an axis-aligned rectangle.
	StrokeRect(x, y, w, h float64, color string, width float64)
	// Line strokes a single segment with the given dash style.
	Line(x1, y1, x2, y2 float64, color string, width float64, style types.LineStyle)
	// Polyline strokes connected segments through the given points.
	Polyline(points []types.Point, color string, width float64)
	// FillPolygon fills the region bounded by the given points.
	FillPolygon(points []types.Point, color string, opacity float64)
	// FillCircle fills a circle centered at (cx, cy).
	FillCircle(cx, cy, r float64, color string, opacity float64)
	// StrokeCircle outlines a circle centered at (cx, cy).
	StrokeCircle(cx, cy, r float64, color string, width float64)
	// Text draws a label with its anchor at (x, y).
	Text(x, y float64, text, color string)
}
