package chart

import "github.com/marketglass/chartcore/internal/types"

// DrawOp names one recorded canvas primitive.
type DrawOp string

const (
	OpClear        DrawOp = "clear"
	OpFillRect     DrawOp = "fill_rect"
	OpStrokeRect   DrawOp = "stroke_rect"
	OpLine         DrawOp = "line"
	OpPolyline     DrawOp = "polyline"
	OpFillPolygon  DrawOp = "fill_polygon"
	OpFillCircle   DrawOp = "fill_circle"
	OpStrokeCircle DrawOp = "stroke_circle"
	OpText         DrawOp = "text"
)

// DrawCall is one recorded primitive invocation.
type DrawCall struct {
	Op      DrawOp
	X, Y    float64
	W, H    float64
	X2, Y2  float64
	R       float64
	Points  []types.Point
	Color   string
	Width   float64
	Opacity float64
	Style   types.LineStyle
	Text    string
}

// RecordingCanvas captures draw calls instead of rasterizing them. Tests
// assert on call occurrence rather than pixel content.
type RecordingCanvas struct {
	Calls []DrawCall
}

// NewRecordingCanvas creates an empty recording canvas.
func NewRecordingCanvas() *RecordingCanvas {
	return &RecordingCanvas{}
}

// Reset discards all recorded calls.
func (rc *RecordingCanvas) Reset() {
	rc.Calls = rc.Calls[:0]
}

// Count returns the number of recorded calls for one primitive.
func (rc *RecordingCanvas) Count(op DrawOp) int {
	n := 0

	for _, c := range rc.Calls {
		if c.Op == op {
			n++
		}
	}

	return n
}

// CountColor returns the number of recorded calls for one primitive in one color.
func (rc *RecordingCanvas) CountColor(op DrawOp, color string) int {
	n := 0

	for _, c := range rc.Calls {
		if c.Op == op && c.Color == color {
			n++
		}
	}

	return n
}

func (rc *RecordingCanvas) Clear() {
	rc.Calls = append(rc.Calls, DrawCall{Op: OpClear})
}

func (rc *RecordingCanvas) FillRect(x, y, w, h float64, color string, opacity float64) {
	rc.Calls = append(rc.Calls, DrawCall{Op: OpFillRect, X: x, Y: y, W: w, H: h, Color: color, Opacity: opacity})
}

func (rc *RecordingCanvas) StrokeRect(x, y, w, h float64, color string, width float64) {
	rc.Calls = append(rc.Calls, DrawCall{Op: OpStrokeRect, X: x, Y: y, W: w, H: h, Color: color, Width: width})
}

func (rc *RecordingCanvas) Line(x1, y1, x2, y2 float64, color string, width float64, style types.LineStyle) {
	rc.Calls = append(rc.Calls, DrawCall{Op: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, Color: color, Width: width, Style: style})
}

func (rc *RecordingCanvas) Polyline(points []types.Point, color string, width float64) {
	rc.Calls = append(rc.Calls, DrawCall{Op: OpPolyline, Points: points, Color: color, Width: width})
}

func (rc *RecordingCanvas) FillPolygon(points []types.Point, color string, opacity float64) {
	rc.Calls = append(rc.Calls, DrawCall{Op: OpFillPolygon, Points: points, Color: color, Opacity: opacity})
}

func (rc *RecordingCanvas) FillCircle(cx, cy, r float64, color string, opacity float64) {
	rc.Calls = append(rc.Calls, DrawCall{Op: OpFillCircle, X: cx, Y: cy, R: r, Color: color, Opacity: opacity})
}

func (rc *RecordingCanvas) StrokeCircle(cx, cy, r float64, color string, width float64) {
	rc.Calls = append(rc.Calls, DrawCall{Op: OpStrokeCircle, X: cx, Y: cy, R: r, Color: color, Width: width})
}

func (rc *RecordingCanvas) Text(x, y float64, text, color string) {
	rc.Calls = append(rc.Calls, DrawCall{Op: OpText, X: x, Y: y, Text: text, Color: color})
}
