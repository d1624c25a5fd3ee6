package main

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marketglass/chartcore/internal/chart"
	"github.com/marketglass/chartcore/internal/types"
)

// cell is one terminal character with its own colors. An empty color
// string means "unstyled".
type cell struct {
	ch rune
	fg string
	bg string
}

// CellCanvas implements chart.Canvas over a terminal cell grid. One pixel
// is one cell, so the chart transform works directly in cell coordinates.
// Fills set the cell background and keep any glyph already drawn there,
// which gives translucent-looking overlay boxes without real alpha;
// opacity parameters are therefore ignored.
type CellCanvas struct {
	cols  int
	rows  int
	cells []cell

	styles map[string]lipgloss.Style
}

var _ chart.Canvas = (*CellCanvas)(nil)

// NewCellCanvas creates a cleared canvas of cols x rows cells.
func NewCellCanvas(cols, rows int) *CellCanvas {
	c := &CellCanvas{styles: make(map[string]lipgloss.Style)}
	c.Resize(cols, rows)

	return c
}

// Resize reallocates the grid and clears it. Non-positive dimensions
// produce an empty grid that ignores all drawing.
func (c *CellCanvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}

	if rows < 0 {
		rows = 0
	}

	c.cols = cols
	c.rows = rows
	c.cells = make([]cell, cols*rows)
	c.Clear()
}

// Size returns the grid dimensions in cells.
func (c *CellCanvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Clear implements chart.Canvas.
func (c *CellCanvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{ch: ' '}
	}
}

// FillRect implements chart.Canvas. Only the background color changes;
// glyphs drawn earlier stay visible through the fill.
func (c *CellCanvas) FillRect(x, y, w, h float64, color string, _ float64) {
	x0, y0 := toCell(x), toCell(y)
	x1, y1 := toCell(x+w), toCell(y+h)

	for cy := y0; cy < maxInt(y1, y0+1); cy++ {
		for cx := x0; cx < maxInt(x1, x0+1); cx++ {
			if cl := c.at(cx, cy); cl != nil {
				cl.bg = color
			}
		}
	}
}

// StrokeRect implements chart.Canvas.
func (c *CellCanvas) StrokeRect(x, y, w, h float64, color string, _ float64) {
	x0, y0 := toCell(x), toCell(y)
	x1, y1 := toCell(x+w)-1, toCell(y+h)-1

	if x1 < x0 {
		x1 = x0
	}

	if y1 < y0 {
		y1 = y0
	}

	for cx := x0; cx <= x1; cx++ {
		c.plot(cx, y0, '─', color)
		c.plot(cx, y1, '─', color)
	}

	for cy := y0; cy <= y1; cy++ {
		c.plot(x0, cy, '│', color)
		c.plot(x1, cy, '│', color)
	}

	c.plot(x0, y0, '┌', color)
	c.plot(x1, y0, '┐', color)
	c.plot(x0, y1, '└', color)
	c.plot(x1, y1, '┘', color)
}

// Line implements chart.Canvas via Bresenham over cells. Dashed lines skip
// every other pair of cells, dotted lines render as middle dots.
func (c *CellCanvas) Line(x1, y1, x2, y2 float64, color string, _ float64, style types.LineStyle) {
	cx1, cy1 := toCell(x1), toCell(y1)
	cx2, cy2 := toCell(x2), toCell(y2)

	ch := lineRune(cx1, cy1, cx2, cy2)
	if style == types.LineStyleDotted {
		ch = '·'
	}

	dx := absInt(cx2 - cx1)
	dy := -absInt(cy2 - cy1)

	sx, sy := 1, 1
	if cx1 > cx2 {
		sx = -1
	}

	if cy1 > cy2 {
		sy = -1
	}

	err := dx + dy
	x, y := cx1, cy1

	for i := 0; ; i++ {
		if style != types.LineStyleDashed || i%4 < 2 {
			c.plot(x, y, ch, color)
		}

		if x == cx2 && y == cy2 {
			break
		}

		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}

		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// Polyline implements chart.Canvas.
func (c *CellCanvas) Polyline(points []types.Point, color string, width float64) {
	for i := 1; i < len(points); i++ {
		c.Line(points[i-1].X, points[i-1].Y, points[i].X, points[i].Y, color, width, types.LineStyleSolid)
	}
}

// FillPolygon implements chart.Canvas with an even-odd scanline fill.
func (c *CellCanvas) FillPolygon(points []types.Point, color string, _ float64) {
	if len(points) < 3 {
		return
	}

	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	for cy := toCell(minY); cy <= toCell(maxY); cy++ {
		scanY := float64(cy)

		var crossings []float64

		for i := range points {
			a := points[i]
			b := points[(i+1)%len(points)]

			if (a.Y <= scanY) == (b.Y <= scanY) {
				continue
			}

			crossings = append(crossings, a.X+(scanY-a.Y)/(b.Y-a.Y)*(b.X-a.X))
		}

		sort.Float64s(crossings)

		for i := 0; i+1 < len(crossings); i += 2 {
			for cx := toCell(crossings[i]); cx <= toCell(crossings[i+1]); cx++ {
				if cl := c.at(cx, cy); cl != nil {
					cl.bg = color
				}
			}
		}
	}
}

// FillCircle implements chart.Canvas.
func (c *CellCanvas) FillCircle(cx, cy, r float64, color string, _ float64) {
	x0, y0 := toCell(cx), toCell(cy)

	ri := toCell(r)
	if ri == 0 {
		c.plot(x0, y0, '●', color)

		return
	}

	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if dx*dx+dy*dy <= ri*ri {
				c.plot(x0+dx, y0+dy, '●', color)
			}
		}
	}
}

// StrokeCircle implements chart.Canvas.
func (c *CellCanvas) StrokeCircle(cx, cy, r float64, color string, _ float64) {
	x0, y0 := toCell(cx), toCell(cy)

	ri := toCell(r)
	if ri == 0 {
		c.plot(x0, y0, '○', color)

		return
	}

	steps := 8 * ri
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		c.plot(x0+toCell(float64(ri)*math.Cos(angle)), y0+toCell(float64(ri)*math.Sin(angle)), '○', color)
	}
}

// Text implements chart.Canvas. The anchor is the first rune; text is
// clipped at the right edge.
func (c *CellCanvas) Text(x, y float64, text, color string) {
	cx, cy := toCell(x), toCell(y)

	for i, ch := range text {
		c.plot(cx+i, cy, ch, color)
	}
}

// Render flattens the grid into a lipgloss-styled multiline string, one
// line per cell row.
func (c *CellCanvas) Render() string {
	var b strings.Builder

	for cy := 0; cy < c.rows; cy++ {
		if cy > 0 {
			b.WriteByte('\n')
		}

		// Group consecutive cells sharing a style into one styled run.
		runStart := 0
		row := c.cells[cy*c.cols : (cy+1)*c.cols]

		for cx := 1; cx <= len(row); cx++ {
			if cx < len(row) && row[cx].fg == row[runStart].fg && row[cx].bg == row[runStart].bg {
				continue
			}

			var run strings.Builder
			for _, cl := range row[runStart:cx] {
				run.WriteRune(cl.ch)
			}

			b.WriteString(c.style(row[runStart].fg, row[runStart].bg).Render(run.String()))
			runStart = cx
		}
	}

	return b.String()
}

func (c *CellCanvas) style(fg, bg string) lipgloss.Style {
	key := fg + "|" + bg

	if s, ok := c.styles[key]; ok {
		return s
	}

	s := lipgloss.NewStyle()
	if fg != "" {
		s = s.Foreground(lipgloss.Color(fg))
	}

	if bg != "" {
		s = s.Background(lipgloss.Color(bg))
	}

	c.styles[key] = s

	return s
}

func (c *CellCanvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return nil
	}

	return &c.cells[y*c.cols+x]
}

func (c *CellCanvas) plot(x, y int, ch rune, color string) {
	if cl := c.at(x, y); cl != nil {
		cl.ch = ch
		cl.fg = color
	}
}

func lineRune(x1, y1, x2, y2 int) rune {
	switch {
	case y1 == y2:
		return '─'
	case x1 == x2:
		return '│'
	case (x2-x1 > 0) == (y2-y1 > 0):
		return '╲'
	default:
		return '╱'
	}
}

func toCell(v float64) int {
	return int(math.Round(v))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
