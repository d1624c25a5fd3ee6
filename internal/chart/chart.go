// Package chart implements a host-agnostic financial charting core: a
// price/time coordinate transform, a layered canvas rendering pipeline,
// a pointer-driven drawing tool state machine, and a frame-coalescing
// redraw scheduler. The chart consumes already-fetched candle, overlay and
// indicator data and emits user interaction events; it performs no I/O and
// computes no indicator values itself.
package chart

import (
	"github.com/marketglass/chartcore/internal/logger"
	"github.com/marketglass/chartcore/internal/types"
	"go.uber.org/zap"
)

// Chart is one chart component instance. All state is confined to the
// instance and mutated on the host's event thread; the canvas is only
// touched inside a paint pass.
type Chart struct {
	canvas    Canvas
	log       *logger.Logger
	scheduler *FrameScheduler
	input     *Interaction

	config     types.ChartConfig
	candles    []types.Candle
	overlays   []types.Overlay
	indicators []types.TechnicalIndicator
	toggles    OverlayToggles
	transform  Transform

	width  float64
	height float64

	pointer    types.Point
	hasPointer bool

	// OnClick receives plain clicks converted to domain coordinates.
	OnClick func(types.ClickEvent)
	// OnDrawing receives each finalized drawing exactly once.
	OnDrawing func(types.DrawingEvent)
	// OnTimeframe receives user timeframe selections.
	OnTimeframe func(types.TimeframeEvent)
}

// New creates a chart drawing onto canvas, scheduling repaints through
// frames. The chart starts empty with the default configuration.
func New(canvas Canvas, frames FrameRequester, log *logger.Logger) *Chart {
	c := &Chart{
		canvas:  canvas,
		log:     log,
		config:  types.DefaultChartConfig(),
		toggles: DefaultOverlayToggles(),
	}

	c.scheduler = NewFrameScheduler(frames, c.paint)
	c.input = NewInteraction(c.emitDrawing, c.emitClick, c.scheduler.Invalidate)

	return c
}

// SetCandles replaces the data window. The slice is copied, so later
// caller-side mutation does not leak into the chart; live tick updates go
// through ExtendLastCandle instead.
func (c *Chart) SetCandles(candles []types.Candle) {
	c.candles = append(c.candles[:0:0], candles...)
	c.recompute()
}

// ExtendLastCandle applies a live tick to the final candle: close moves to
// price, high/low stretch to cover it, and volumeDelta accumulates onto the
// bar volume. A no-op on an empty window.
func (c *Chart) ExtendLastCandle(price, volumeDelta float64) {
	if len(c.candles) == 0 {
		return
	}

	last := &c.candles[len(c.candles)-1]
	last.Close = price

	if price > last.High {
		last.High = price
	}

	if price < last.Low {
		last.Low = price
	}

	last.Volume += volumeDelta

	c.recompute()
}

// SetConfig applies a new configuration wholesale and schedules a full
// recompute; individual fields are not diffed.
func (c *Chart) SetConfig(config types.ChartConfig) {
	c.config = config
	c.recompute()
}

// Config returns the active configuration.
func (c *Chart) Config() types.ChartConfig {
	return c.config
}

// SetOverlays replaces the overlay list. Render order follows list order.
func (c *Chart) SetOverlays(overlays []types.Overlay) {
	c.overlays = append(c.overlays[:0:0], overlays...)
	c.scheduler.Invalidate()
}

// SetIndicators replaces the indicator metadata list.
func (c *Chart) SetIndicators(indicators []types.TechnicalIndicator) {
	c.indicators = append(c.indicators[:0:0], indicators...)
	c.scheduler.Invalidate()
}

// Indicators returns the indicator metadata list.
func (c *Chart) Indicators() []types.TechnicalIndicator {
	return c.indicators
}

// SetToggles replaces the per-category overlay visibility switches.
func (c *Chart) SetToggles(toggles OverlayToggles) {
	c.toggles = toggles
	c.scheduler.Invalidate()
}

// Toggles returns the active category switches.
func (c *Chart) Toggles() OverlayToggles {
	return c.toggles
}

// Resize reacts to a container size change. Zero dimensions are tolerated;
// the next nonzero resize self-heals through the same recompute path.
func (c *Chart) Resize(width, height float64) {
	c.width = width
	c.height = height
	c.recompute()
}

// Transform returns the current coordinate transform snapshot.
func (c *Chart) Transform() Transform {
	return c.transform
}

// SetTimeframe records a user timeframe selection and emits the
// corresponding event. Fetching candles for the new timeframe is the
// caller's responsibility.
func (c *Chart) SetTimeframe(tf types.Timeframe) {
	if tf == c.config.Timeframe {
		return
	}

	c.config.Timeframe = tf

	if c.OnTimeframe != nil {
		c.OnTimeframe(types.TimeframeEvent{Timeframe: tf})
	}

	c.scheduler.Invalidate()
}

// SelectTool arms or disarms a drawing tool.
func (c *Chart) SelectTool(tool types.DrawingToolType) {
	c.input.SelectTool(tool)
}

// ActiveTool returns the armed drawing tool, or empty when none.
func (c *Chart) ActiveTool() types.DrawingToolType {
	return c.input.ActiveTool()
}

// SetDrawingStyle changes the stroke style for new drawings.
func (c *Chart) SetDrawingStyle(style DrawingStyle) {
	c.input.SetStyle(style)
}

// PointerDown forwards a pointer press to the interaction controller.
func (c *Chart) PointerDown(x, y float64) {
	c.input.PointerDown(x, y)
}

// PointerMove forwards pointer motion. The position also feeds the
// crosshair when enabled.
func (c *Chart) PointerMove(x, y float64) {
	c.pointer = types.Point{X: x, Y: y}

	if !c.hasPointer {
		c.hasPointer = true
	}

	c.input.PointerMove(x, y)

	if c.config.ShowCrosshair {
		c.scheduler.Invalidate()
	}
}

// PointerUp forwards a pointer release.
func (c *Chart) PointerUp(x, y float64) {
	c.input.PointerUp(x, y)
}

// Invalidate schedules a repaint on the next frame.
func (c *Chart) Invalidate() {
	c.scheduler.Invalidate()
}

// Close cancels any pending frame request. The chart must not be used
// afterwards.
func (c *Chart) Close() {
	c.scheduler.Stop()
}

// recompute atomically replaces the transform snapshot and schedules a
// repaint. Called for every data, config and size change.
func (c *Chart) recompute() {
	c.transform = NewTransform(c.candles, c.width, c.height)
	c.scheduler.Invalidate()
}

// paint runs one full render pass in fixed order: static layer, series,
// overlays, then the in-progress drawing preview.
func (c *Chart) paint() {
	drawStatic(c.canvas, c.transform, c.config)
	drawSeries(c.canvas, c.transform, c.config, c.candles)
	drawOverlays(c.canvas, c.transform, c.overlays, c.toggles)

	if c.config.ShowCrosshair && c.hasPointer {
		c.drawCrosshair()
	}

	if d := c.input.Drawing(); d != nil {
		drawDrawing(c.canvas, c.transform, *d)
	}
}

func (c *Chart) drawCrosshair() {
	t := c.transform
	c.canvas.Line(t.Padding.Left, c.pointer.Y, t.Width-t.Padding.Right, c.pointer.Y, c.config.Palette.Grid, 1, types.LineStyleDotted)
	c.canvas.Line(c.pointer.X, t.Padding.Top, c.pointer.X, t.Height-t.Padding.Bottom, c.config.Palette.Grid, 1, types.LineStyleDotted)
}

func (c *Chart) emitDrawing(d types.Drawing) {
	if c.log != nil {
		c.log.Debug("drawing completed",
			zap.String("tool", string(d.Tool)),
			zap.String("id", d.ID),
		)
	}

	if c.OnDrawing != nil {
		c.OnDrawing(types.DrawingEvent{Drawing: d})
	}
}

// emitClick converts the click pixel position to domain coordinates
// through the current transform. Out-of-range positions convert without
// clamping; interpreting them is up to the caller.
func (c *Chart) emitClick(p types.Point) {
	if c.OnClick == nil {
		return
	}

	c.OnClick(types.ClickEvent{
		Time:  c.transform.PixelToTime(p.X),
		Price: c.transform.PixelToPrice(p.Y),
	})
}
