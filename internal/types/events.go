package types

import "time"

// ClickEvent is emitted for a plain click with no drawing tool active.
// Coordinates are in domain space, converted through the chart transform.
type ClickEvent struct {
	// Time is the domain timestamp under the pointer
	Time time.Time `json:"time"`
	// Price is the domain price under the pointer
	Price float64 `json:"price"`
}

// DrawingEvent is emitted once per completed draw gesture.
type DrawingEvent struct {
	// Drawing is the finalized annotation
	Drawing Drawing `json:"drawing"`
}

// TimeframeEvent is emitted when the user selects a different timeframe.
type TimeframeEvent struct {
	// Timeframe is the newly selected timeframe
	Timeframe Timeframe `json:"timeframe"`
}
