package main

import (
	"github.com/marketglass/chartcore/internal/livefeed"
	"github.com/marketglass/chartcore/internal/types"
)

// CandlesLoadedMsg carries a freshly loaded candle window.
type CandlesLoadedMsg struct {
	Candles []types.Candle
}

// AnalysisMsg carries detector overlays for the current window.
type AnalysisMsg struct {
	Overlays []types.Overlay
}

// FeedUpdateMsg carries one live candle update from the stream.
type FeedUpdateMsg struct {
	Update livefeed.Update
}

// StreamStartedMsg signals that the live subscription is active and
// carries its stop function.
type StreamStartedMsg struct {
	Stop func()
}

// DataErrorMsg indicates a failed load, analysis or stream.
type DataErrorMsg struct {
	Err error
}
