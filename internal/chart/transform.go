package chart

import (
	"time"

	"github.com/marketglass/chartcore/internal/types"
)

// Insets are the fixed padding reserved inside the canvas for axis labels.
type Insets struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultInsets reserves 40px vertically and 80px horizontally for label
// clearance, split between the opposing edges.
func DefaultInsets() Insets {
	return Insets{Top: 20, Right: 20, Bottom: 20, Left: 60}
}

// Transform is an immutable snapshot of the domain-to-pixel mapping for one
// data window and canvas size. It is recomputed atomically whenever the
// candle array or the canvas dimensions change; fields are never patched
// individually, so the price and time scales cannot fall out of sync.
type Transform struct {
	// MinPrice and MaxPrice bound the visible price domain
	MinPrice float64
	MaxPrice float64
	// PriceRange is MaxPrice - MinPrice
	PriceRange float64
	// MinTime and MaxTime bound the visible time domain in epoch milliseconds
	MinTime int64
	MaxTime int64
	// TimeRange is MaxTime - MinTime in milliseconds
	TimeRange int64
	// Width and Height are the full canvas dimensions in pixels
	Width  float64
	Height float64
	// Padding is the fixed label-clearance inset
	Padding Insets

	pxPerPrice float64
	pxPerMilli float64
	hasData    bool
}

// HasData reports whether the transform was computed from a non-empty
// candle array.
func (t Transform) HasData() bool {
	return t.hasData
}

// NewTransform computes a transform snapshot for the given candles and
// canvas size. Empty candle arrays and zero dimensions yield a degenerate
// transform whose mappings fall back to the chart area center instead of
// dividing by zero.
func NewTransform(candles []types.Candle, width, height float64) Transform {
	t := Transform{
		Width:   width,
		Height:  height,
		Padding: DefaultInsets(),
	}

	if len(candles) == 0 {
		return t
	}

	t.hasData = true
	t.MinPrice = candles[0].Low
	t.MaxPrice = candles[0].High
	t.MinTime = candles[0].Time.UnixMilli()
	t.MaxTime = t.MinTime

	// Min/max are taken over the whole array rather than trusting the
	// first and last element, so unsorted input still maps correctly.
	for _, c := range candles {
		for _, p := range [4]float64{c.Open, c.High, c.Low, c.Close} {
			if p < t.MinPrice {
				t.MinPrice = p
			}

			if p > t.MaxPrice {
				t.MaxPrice = p
			}
		}

		ms := c.Time.UnixMilli()
		if ms < t.MinTime {
			t.MinTime = ms
		}

		if ms > t.MaxTime {
			t.MaxTime = ms
		}
	}

	t.PriceRange = t.MaxPrice - t.MinPrice
	t.TimeRange = t.MaxTime - t.MinTime

	if h := t.drawableHeight(); h > 0 && t.PriceRange > 0 {
		t.pxPerPrice = h / t.PriceRange
	}

	if w := t.DrawableWidth(); w > 0 && t.TimeRange > 0 {
		t.pxPerMilli = w / float64(t.TimeRange)
	}

	return t
}

// DrawableWidth returns the horizontal extent available to the series after
// the 80px label reserve.
func (t Transform) DrawableWidth() float64 {
	w := t.Width - t.Padding.Left - t.Padding.Right
	if w < 0 {
		return 0
	}

	return w
}

func (t Transform) drawableHeight() float64 {
	h := t.Height - t.Padding.Top - t.Padding.Bottom
	if h < 0 {
		return 0
	}

	return h
}

// PriceToPixel maps a domain price to a canvas y coordinate. Prices outside
// the visible range map linearly beyond the chart area without clamping.
// With a zero price range the vertical center of the chart area is returned.
func (t Transform) PriceToPixel(price float64) float64 {
	if t.pxPerPrice == 0 {
		return t.Padding.Top + t.drawableHeight()/2
	}

	return t.Padding.Top + t.drawableHeight() - (price-t.MinPrice)*t.pxPerPrice
}

// PixelToPrice is the inverse of PriceToPixel. With a zero price range it
// returns MinPrice.
func (t Transform) PixelToPrice(y float64) float64 {
	if t.pxPerPrice == 0 {
		return t.MinPrice
	}

	return t.MinPrice + (t.Padding.Top+t.drawableHeight()-y)/t.pxPerPrice
}

// TimeToPixel maps a domain timestamp to a canvas x coordinate. With a zero
// time range the horizontal center of the chart area is returned.
func (t Transform) TimeToPixel(ts time.Time) float64 {
	if t.pxPerMilli == 0 {
		return t.Padding.Left + t.DrawableWidth()/2
	}

	return t.Padding.Left + float64(ts.UnixMilli()-t.MinTime)*t.pxPerMilli
}

// PixelToTime is the inverse of TimeToPixel. With a zero time range it
// returns MinTime.
func (t Transform) PixelToTime(x float64) time.Time {
	if t.pxPerMilli == 0 {
		return time.UnixMilli(t.MinTime)
	}

	ms := float64(t.MinTime) + (x-t.Padding.Left)/t.pxPerMilli

	return time.UnixMilli(int64(ms + 0.5))
}

// SlotWidth returns the horizontal slot reserved for each of n candles.
func (t Transform) SlotWidth(n int) float64 {
	if n <= 0 {
		return 0
	}

	return t.DrawableWidth() / float64(n)
}

// SlotCenter returns the x coordinate of the center of slot i out of n.
func (t Transform) SlotCenter(i, n int) float64 {
	return t.Padding.Left + t.SlotWidth(n)*(float64(i)+0.5)
}
