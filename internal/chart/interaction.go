package chart

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketglass/chartcore/internal/types"
)

type interactionState int

const (
	// stateIdle: no tool selected, pointer gestures are click candidates
	stateIdle interactionState = iota
	// stateToolSelected: a tool is armed, pointer-down starts a drawing
	stateToolSelected
	// stateDrawing: a drawing is in progress between down and up
	stateDrawing
)

// moveDebounce bounds how often move events schedule a redraw. Drawing
// state is still updated on every move; only the redraw is sampled, so the
// final position before pointer-up is never dropped.
const moveDebounce = 16 * time.Millisecond

// clickSlop is the maximum pointer travel for a down/up pair to count as a
// plain click.
const clickSlop = 3.0

// DrawingStyle is the stroke appearance applied to new drawings.
type DrawingStyle struct {
	Color string
	Width float64
	Style types.LineStyle
}

// DefaultDrawingStyle returns the stroke style for user drawings.
func DefaultDrawingStyle() DrawingStyle {
	return DrawingStyle{Color: "#f0b90b", Width: 1, Style: types.LineStyleSolid}
}

// Interaction is the pointer-event state machine. It owns the transient
// in-progress drawing and emits completed drawings and raw click positions
// through its callbacks. At most one drawing is active at a time; a
// pointer-down is only honored when no drawing is in progress.
type Interaction struct {
	state   interactionState
	tool    types.DrawingToolType
	current *types.Drawing
	style   DrawingStyle

	downActive bool
	downPoint  types.Point
	dragged    bool

	now            func() time.Time
	lastInvalidate time.Time

	// emitDrawing receives each finalized drawing exactly once
	emitDrawing func(types.Drawing)
	// emitClick receives the pixel position of a plain tool-less click
	emitClick func(types.Point)
	// invalidate schedules a redraw for live drawing previews
	invalidate func()
}

// NewInteraction creates an idle interaction controller.
func NewInteraction(emitDrawing func(types.Drawing), emitClick func(types.Point), invalidate func()) *Interaction {
	return &Interaction{
		state:       stateIdle,
		style:       DefaultDrawingStyle(),
		now:         time.Now,
		emitDrawing: emitDrawing,
		emitClick:   emitClick,
		invalidate:  invalidate,
	}
}

// SetStyle changes the stroke style applied to subsequently started drawings.
func (in *Interaction) SetStyle(style DrawingStyle) {
	in.style = style
}

// SelectTool arms a drawing tool. Selecting the armed tool again disarms
// it. Tool changes are ignored while a drawing is in progress so the
// active gesture finalizes with the tool it started with.
func (in *Interaction) SelectTool(tool types.DrawingToolType) {
	if in.state == stateDrawing {
		return
	}

	if in.state == stateToolSelected && in.tool == tool {
		in.state = stateIdle
		in.tool = ""

		return
	}

	in.state = stateToolSelected
	in.tool = tool
}

// ActiveTool returns the armed tool, or empty when idle.
func (in *Interaction) ActiveTool() types.DrawingToolType {
	return in.tool
}

// Drawing returns the in-progress drawing for live preview rendering, or
// nil when no drawing is active.
func (in *Interaction) Drawing() *types.Drawing {
	return in.current
}

// PointerDown begins a drawing when a tool is armed, or starts a click
// candidate otherwise. Ignored while a drawing is already in progress.
func (in *Interaction) PointerDown(x, y float64) {
	switch in.state {
	case stateDrawing:
		return
	case stateToolSelected:
		p := types.Point{X: x, Y: y}
		in.current = &types.Drawing{
			ID:    uuid.NewString(),
			Tool:  in.tool,
			Start: p,
			End:   p,
			Color: in.style.Color,
			Width: in.style.Width,
			Style: in.style.Style,
		}
		in.state = stateDrawing
		in.lastInvalidate = in.now()
		in.invalidate()
	case stateIdle:
		in.downActive = true
		in.downPoint = types.Point{X: x, Y: y}
		in.dragged = false
	}
}

// PointerMove updates the in-progress drawing's end point. Redraws are
// sampled with a short debounce to bound paint frequency during bursts.
func (in *Interaction) PointerMove(x, y float64) {
	if in.state == stateDrawing {
		in.current.End = types.Point{X: x, Y: y}

		if now := in.now(); now.Sub(in.lastInvalidate) >= moveDebounce {
			in.lastInvalidate = now
			in.invalidate()
		}

		return
	}

	if in.downActive && distanceExceeds(in.downPoint, types.Point{X: x, Y: y}, clickSlop) {
		in.dragged = true
	}
}

// PointerUp finalizes the in-progress drawing, or emits a click for a
// tool-less down/up pair without drag. After finalizing, the tool stays
// armed until the user deselects it.
func (in *Interaction) PointerUp(x, y float64) {
	if in.state == stateDrawing {
		in.current.End = types.Point{X: x, Y: y}
		done := *in.current
		in.current = nil
		in.state = stateToolSelected

		in.emitDrawing(done)
		in.invalidate()

		return
	}

	if in.downActive {
		up := types.Point{X: x, Y: y}
		if !in.dragged && !distanceExceeds(in.downPoint, up, clickSlop) && in.state == stateIdle {
			in.emitClick(up)
		}

		in.downActive = false
		in.dragged = false
	}
}

func distanceExceeds(a, b types.Point, limit float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y

	return dx*dx+dy*dy > limit*limit
}
