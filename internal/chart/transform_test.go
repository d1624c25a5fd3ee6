package chart

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/marketglass/chartcore/internal/types"
)

type TransformTestSuite struct {
	suite.Suite
}

func TestTransformSuite(t *testing.T) {
	suite.Run(t, new(TransformTestSuite))
}

func fixtureCandles(n int, base float64) []types.Candle {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	candles := make([]types.Candle, 0, n)

	for i := 0; i < n; i++ {
		open := base + float64(i)
		candles = append(candles, types.Candle{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   open,
			High:   open + 2,
			Low:    open - 2,
			Close:  open + 1,
			Volume: 1000 + float64(i)*10,
		})
	}

	return candles
}

func (suite *TransformTestSuite) TestPriceRoundTrip() {
	t := NewTransform(fixtureCandles(50, 2400), 800, 600)

	for _, price := range []float64{t.MinPrice, t.MinPrice + t.PriceRange/3, (t.MinPrice + t.MaxPrice) / 2, t.MaxPrice} {
		back := t.PixelToPrice(t.PriceToPixel(price))
		suite.InEpsilon(price, back, 1e-6)
	}
}

func (suite *TransformTestSuite) TestTimeRoundTrip() {
	t := NewTransform(fixtureCandles(50, 2400), 800, 600)

	for _, ms := range []int64{t.MinTime, t.MinTime + t.TimeRange/3, t.MinTime + t.TimeRange/2, t.MaxTime} {
		ts := time.UnixMilli(ms)
		back := t.PixelToTime(t.TimeToPixel(ts))
		suite.InDelta(float64(ms), float64(back.UnixMilli()), 1)
	}
}

func (suite *TransformTestSuite) TestPriceScaleSpansAllExtremes() {
	candles := fixtureCandles(10, 100)
	// An early candle holds the window high, a late one the window low.
	candles[2].High = 250
	candles[7].Low = 50

	t := NewTransform(candles, 800, 600)
	suite.InDelta(50, t.MinPrice, 1e-9)
	suite.InDelta(250, t.MaxPrice, 1e-9)
}

func (suite *TransformTestSuite) TestUnsortedInputUsesTrueExtremes() {
	candles := fixtureCandles(10, 100)
	// Swap so neither the first nor the last element bounds the time range.
	candles[0], candles[5] = candles[5], candles[0]
	candles[9], candles[3] = candles[3], candles[9]

	sorted := fixtureCandles(10, 100)
	t := NewTransform(candles, 800, 600)

	suite.Equal(sorted[0].Time.UnixMilli(), t.MinTime)
	suite.Equal(sorted[9].Time.UnixMilli(), t.MaxTime)
}

func (suite *TransformTestSuite) TestFlatDataFallsBackToCenter() {
	flat := []types.Candle{{
		Time: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Open: 100, High: 100, Low: 100, Close: 100,
	}}

	t := NewTransform(flat, 800, 600)

	centerY := t.Padding.Top + (600-t.Padding.Top-t.Padding.Bottom)/2
	suite.InDelta(centerY, t.PriceToPixel(100), 1e-9)
	suite.InDelta(centerY, t.PriceToPixel(123.45), 1e-9)

	centerX := t.Padding.Left + t.DrawableWidth()/2
	suite.InDelta(centerX, t.TimeToPixel(flat[0].Time), 1e-9)
}

func (suite *TransformTestSuite) TestDegenerateMappingsAreFinite() {
	cases := []Transform{
		NewTransform(nil, 800, 600),
		NewTransform(fixtureCandles(1, 100), 800, 600),
		NewTransform(fixtureCandles(10, 100), 0, 0),
	}

	for _, t := range cases {
		for _, v := range []float64{
			t.PriceToPixel(100),
			t.PixelToPrice(42),
			t.TimeToPixel(time.Now()),
			float64(t.PixelToTime(42).UnixMilli()),
		} {
			suite.False(math.IsNaN(v), "NaN coordinate")
			suite.False(math.IsInf(v, 0), "infinite coordinate")
		}
	}
}

func (suite *TransformTestSuite) TestEmptyCandlesHasNoData() {
	t := NewTransform(nil, 800, 600)
	suite.False(t.HasData())
	suite.Zero(t.PriceRange)
	suite.Zero(t.TimeRange)

	t = NewTransform(fixtureCandles(1, 100), 800, 600)
	suite.True(t.HasData())
}

func (suite *TransformTestSuite) TestOutOfRangeConversionDoesNotClamp() {
	t := NewTransform(fixtureCandles(50, 2400), 800, 600)

	aboveMax := t.MaxPrice + t.PriceRange
	y := t.PriceToPixel(aboveMax)
	suite.Less(y, t.Padding.Top)
	suite.InEpsilon(aboveMax, t.PixelToPrice(y), 1e-6)
}

func (suite *TransformTestSuite) TestSlotGeometry() {
	t := NewTransform(fixtureCandles(10, 100), 880, 600)

	suite.InDelta(80, t.SlotWidth(10), 1e-9)
	suite.InDelta(t.Padding.Left+40, t.SlotCenter(0, 10), 1e-9)
	suite.InDelta(t.Padding.Left+760, t.SlotCenter(9, 10), 1e-9)
	suite.Zero(t.SlotWidth(0))
}

func (suite *TransformTestSuite) TestZeroSizeThenResizeSelfHeals() {
	candles := fixtureCandles(10, 100)

	collapsed := NewTransform(candles, 0, 0)
	suite.False(math.IsNaN(collapsed.PriceToPixel(105)))

	restored := NewTransform(candles, 800, 600)
	back := restored.PixelToPrice(restored.PriceToPixel(105))
	suite.InEpsilon(105.0, back, 1e-6)
}
