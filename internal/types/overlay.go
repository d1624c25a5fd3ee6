package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// OverlayKind identifies the semantic type of a chart overlay.
type OverlayKind string

const (
	OverlayKindFairValueGap    OverlayKind = "fair_value_gap"
	OverlayKindOrderBlock      OverlayKind = "order_block"
	OverlayKindLiquidityPool   OverlayKind = "liquidity_pool"
	OverlayKindLiquiditySweep  OverlayKind = "liquidity_sweep"
	OverlayKindMarketStructure OverlayKind = "market_structure"
	OverlayKindTrendline       OverlayKind = "trendline"
)

// Direction is the bullish/bearish orientation of an overlay.
type Direction string

const (
	DirectionBullish Direction = "bullish"
	DirectionBearish Direction = "bearish"
)

// Side is the buy/sell side of a liquidity level.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// BreakType distinguishes the two market structure break classes.
type BreakType string

const (
	// BreakTypeBOS is a break of structure in the direction of the trend
	BreakTypeBOS BreakType = "bos"
	// BreakTypeCHoCH is a change of character against the prior trend
	BreakTypeCHoCH BreakType = "choch"
)

// OverlayData is the payload of one overlay variant. The set of
// implementations is closed: exhaustive type switches over OverlayData
// cover every renderable overlay kind.
type OverlayData interface {
	// Kind returns the overlay kind tag for this payload
	Kind() OverlayKind

	sealedOverlayData()
}

// FairValueGap is a price imbalance zone spanning a price band and a time band.
type FairValueGap struct {
	// Direction is bullish for gap-up imbalances, bearish for gap-down
	Direction Direction
	// Top is the upper price bound of the gap
	Top float64
	// Bottom is the lower price bound of the gap
	Bottom float64
	// StartTime is the opening time of the first pattern candle
	StartTime time.Time
	// EndTime is the opening time of the last pattern candle
	EndTime time.Time
	// Strength is the detection confidence in [0, 1]
	Strength float64
	// Active reports whether the gap is still unfilled
	Active bool
}

func (FairValueGap) Kind() OverlayKind  { return OverlayKindFairValueGap }
func (FairValueGap) sealedOverlayData() {}

// MidPrice returns the midpoint of the gap band.
func (f FairValueGap) MidPrice() float64 {
	return (f.Top + f.Bottom) / 2
}

// Size returns the height of the gap band in price units.
func (f FairValueGap) Size() float64 {
	if f.Top >= f.Bottom {
		return f.Top - f.Bottom
	}

	return f.Bottom - f.Top
}

// OrderBlock is a consolidation zone preceding a strong directional move.
// The rendered band always extends downward from the anchor price by
// RangeSize, matching the behavior of the system this renderer replaces.
type OrderBlock struct {
	// Direction is the orientation of the move that followed the block
	Direction Direction
	// Price is the anchor price of the block
	Price float64
	// RangeSize is the vertical extent of the block band in price units
	RangeSize float64
	// Volume is the traded volume of the block candle
	Volume float64
	// StartTime is the opening time of the block candle
	StartTime time.Time
	// EndTime is the end of the block's time band
	EndTime time.Time
	// Strength is the detection confidence in [0, 1]
	Strength float64
	// IsRejection reports whether the block candle shows a rejection wick
	IsRejection bool
	// WickRatio is the wick share of the block candle's total range
	WickRatio float64
}

func (OrderBlock) Kind() OverlayKind  { return OverlayKindOrderBlock }
func (OrderBlock) sealedOverlayData() {}

// LiquidityPool is a single price level where resting orders are
// hypothesized to cluster.
type LiquidityPool struct {
	// Price is the pool level
	Price float64
	// Strength is the detection confidence in [0, 1]
	Strength float64
	// Side is buy for levels above price, sell for levels below
	Side Side
	// CreatedAt is the time the pool formed
	CreatedAt time.Time
	// Touches counts how many times price has revisited the level
	Touches int
	// Swept reports whether the pool has been taken out
	Swept bool
}

func (LiquidityPool) Kind() OverlayKind  { return OverlayKindLiquidityPool }
func (LiquidityPool) sealedOverlayData() {}

// LiquiditySweep records price extending through a liquidity pool.
type LiquiditySweep struct {
	// Side is the side of the pool that was swept
	Side Side
	// PoolPrice is the level of the swept pool
	PoolPrice float64
	// SweepPrice is the extreme price reached during the sweep
	SweepPrice float64
	// SweepTime is when the sweep occurred
	SweepTime time.Time
	// Strength is the detection confidence in [0, 1]
	Strength float64
}

func (LiquiditySweep) Kind() OverlayKind  { return OverlayKindLiquiditySweep }
func (LiquiditySweep) sealedOverlayData() {}

// MarketStructure marks a single structure break point (BOS or CHoCH).
type MarketStructure struct {
	// Break is the structure break class
	Break BreakType
	// Direction is the orientation of the break
	Direction Direction
	// Price is the broken swing level
	Price float64
	// Time is when the break was confirmed
	Time time.Time
	// Strength is the strength of the broken swing point in [0, 1]
	Strength float64
}

func (MarketStructure) Kind() OverlayKind  { return OverlayKindMarketStructure }
func (MarketStructure) sealedOverlayData() {}

// Trendline is a straight segment between two domain-space points.
type Trendline struct {
	// StartTime and StartPrice anchor the first endpoint
	StartTime  time.Time
	StartPrice float64
	// EndTime and EndPrice anchor the second endpoint
	EndTime  time.Time
	EndPrice float64
}

func (Trendline) Kind() OverlayKind  { return OverlayKindTrendline }
func (Trendline) sealedOverlayData() {}

// Overlay is one renderable chart annotation. Overlays are keyed by ID
// within one overlay list and drawn in list order, later entries on top.
type Overlay struct {
	// ID uniquely identifies the overlay within one list
	ID string
	// Visible gates rendering together with the per-kind category toggle
	Visible bool
	// Color is the base draw color; empty selects the kind's default
	Color string
	// Opacity is the fill opacity in [0, 1]
	Opacity float64
	// Label is an optional short text drawn next to the overlay
	Label optional.Option[string]
	// Data is the kind-specific payload
	Data OverlayData
}

// Kind returns the kind tag of the overlay's payload.
func (o Overlay) Kind() OverlayKind {
	return o.Data.Kind()
}
