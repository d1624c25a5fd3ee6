package types

import "time"

// Timeframe identifies the bucket duration of a candle series.
type Timeframe string

const (
	TimeframeM1  Timeframe = "1m"
	TimeframeM5  Timeframe = "5m"
	TimeframeM15 Timeframe = "15m"
	TimeframeM30 Timeframe = "30m"
	TimeframeH1  Timeframe = "1h"
	TimeframeH4  Timeframe = "4h"
	TimeframeD1  Timeframe = "1d"
)

// Timeframes lists every supported timeframe in ascending bucket size.
func Timeframes() []Timeframe {
	return []Timeframe{
		TimeframeM1,
		TimeframeM5,
		TimeframeM15,
		TimeframeM30,
		TimeframeH1,
		TimeframeH4,
		TimeframeD1,
	}
}

// Candle represents a single OHLCV price bar.
type Candle struct {
	// Time is the opening time of the bar
	Time time.Time `json:"time" yaml:"time"`
	// Open is the opening price
	Open float64 `json:"open" yaml:"open"`
	// High is the highest traded price
	High float64 `json:"high" yaml:"high"`
	// Low is the lowest traded price
	Low float64 `json:"low" yaml:"low"`
	// Close is the closing price
	Close float64 `json:"close" yaml:"close"`
	// Volume is the traded volume during the bar
	Volume float64 `json:"volume" yaml:"volume"`
	// Timeframe is the bucket duration label of the bar
	Timeframe Timeframe `json:"timeframe" yaml:"timeframe"`
}

// IsBullish reports whether the candle closed above its open.
func (c Candle) IsBullish() bool {
	return c.Close > c.Open
}

// IsBearish reports whether the candle closed below its open.
func (c Candle) IsBearish() bool {
	return c.Close < c.Open
}

// BodySize returns the absolute distance between open and close.
func (c Candle) BodySize() float64 {
	if c.Close >= c.Open {
		return c.Close - c.Open
	}

	return c.Open - c.Close
}

// UpperWick returns the distance from the body top to the high.
func (c Candle) UpperWick() float64 {
	if c.Close >= c.Open {
		return c.High - c.Close
	}

	return c.High - c.Open
}

// LowerWick returns the distance from the body bottom to the low.
func (c Candle) LowerWick() float64 {
	if c.Close >= c.Open {
		return c.Open - c.Low
	}

	return c.Close - c.Low
}

// TotalRange returns the full high-to-low extent of the candle.
func (c Candle) TotalRange() float64 {
	return c.High - c.Low
}

// BodyPercent returns the body size as a percentage of the total range.
// A doji or flat candle returns 0.
func (c Candle) BodyPercent() float64 {
	totalRange := c.TotalRange()
	if totalRange <= 0 {
		return 0
	}

	return c.BodySize() / totalRange * 100
}

// Validate reports whether the OHLC values are internally consistent:
// high >= low and both open and close within [low, high].
func (c Candle) Validate() bool {
	if c.High < c.Low {
		return false
	}

	if c.Open < c.Low || c.Open > c.High {
		return false
	}

	if c.Close < c.Low || c.Close > c.High {
		return false
	}

	return true
}
