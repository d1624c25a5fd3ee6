package types

// DrawingToolType identifies a user drawing tool.
type DrawingToolType string

const (
	DrawingToolTrendline      DrawingToolType = "trendline"
	DrawingToolHorizontalLine DrawingToolType = "horizontal_line"
	DrawingToolVerticalLine   DrawingToolType = "vertical_line"
	DrawingToolRectangle      DrawingToolType = "rectangle"
	DrawingToolFibonacci      DrawingToolType = "fibonacci"
)

// Point is a pixel-space coordinate on the chart canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Drawing is one user-drawn annotation. Endpoints are captured in pixel
// space at draw time and are not re-projected if the transform changes.
type Drawing struct {
	// ID uniquely identifies the drawing
	ID string `json:"id"`
	// Tool is the drawing tool that produced this annotation
	Tool DrawingToolType `json:"tool"`
	// Start is the pixel position of the initial pointer-down
	Start Point `json:"start"`
	// End is the pixel position of the last pointer-move or pointer-up
	End Point `json:"end"`
	// Color is the stroke color
	Color string `json:"color"`
	// Width is the stroke width in pixels
	Width float64 `json:"width"`
	// Style is the stroke dash style
	Style LineStyle `json:"style"`
}
