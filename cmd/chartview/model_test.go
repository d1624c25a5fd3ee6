package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketglass/chartcore/internal/analysis"
	"github.com/marketglass/chartcore/internal/livefeed"
	"github.com/marketglass/chartcore/internal/logger"
	"github.com/marketglass/chartcore/internal/types"
)

// fakeFeed serves fixture candles without touching the network.
type fakeFeed struct {
	candles     []types.Candle
	streamStops int
}

func (f *fakeFeed) Fetch(_ context.Context, _ string, _ types.Timeframe, _ int) ([]types.Candle, error) {
	return f.candles, nil
}

func (f *fakeFeed) Stream(_ string, _ types.Timeframe, _ func(livefeed.Update)) (func(), error) {
	return func() { f.streamStops++ }, nil
}

func testCandles(n int) []types.Candle {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	candles := make([]types.Candle, 0, n)

	for i := 0; i < n; i++ {
		open := 100 + float64(i)
		candles = append(candles, types.Candle{
			Time:   base.Add(time.Duration(i) * time.Minute),
			Open:   open,
			High:   open + 2,
			Low:    open - 2,
			Close:  open + 1,
			Volume: 1000,
		})
	}

	return candles
}

func newLiveModel(t *testing.T, feed livefeed.Feed) Model {
	t.Helper()

	engine, err := analysis.NewEngine(analysis.DefaultConfig(), logger.NewNopLogger())
	require.NoError(t, err)

	return NewModel(nil, feed, engine, types.DefaultChartConfig(), "BTCUSDT", logger.NewNopLogger())
}

// apply runs one Update and unwraps the returned model.
func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	return next.(Model), cmd
}

// chartModel drives a fresh model into the chart state with fixture data.
func chartModel(t *testing.T, feed *fakeFeed) Model {
	t.Helper()

	m := newLiveModel(t, feed)
	m, _ = apply(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateTimeframeSelect, m.state)

	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateChart, m.state)
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, CandlesLoadedMsg{}, msg)

	m, _ = apply(t, m, msg)

	return m
}

func TestNewModel(t *testing.T) {
	m := newLiveModel(t, &fakeFeed{})

	assert.Equal(t, StateSymbolInput, m.state)
	assert.Equal(t, "BTCUSDT", m.symbol)
	assert.NotNil(t, m.session)
	assert.NotNil(t, m.session.chart)
}

func TestCycleChartType(t *testing.T) {
	assert.Equal(t, types.ChartTypeLine, cycleChartType(types.ChartTypeCandlestick))
	assert.Equal(t, types.ChartTypeArea, cycleChartType(types.ChartTypeLine))
	assert.Equal(t, types.ChartTypeCandlestick, cycleChartType(types.ChartTypeArea))
}

func TestToolForKey(t *testing.T) {
	tests := []struct {
		key      string
		expected types.DrawingToolType
		ok       bool
	}{
		{key: "d", expected: types.DrawingToolTrendline, ok: true},
		{key: "r", expected: types.DrawingToolRectangle, ok: true},
		{key: "h", expected: types.DrawingToolHorizontalLine, ok: true},
		{key: "u", expected: types.DrawingToolVerticalLine, ok: true},
		{key: "f", expected: types.DrawingToolFibonacci, ok: true},
		{key: "z", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			tool, ok := toolForKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, tool)
		})
	}
}

func TestTimeframeForKey(t *testing.T) {
	tf, ok := timeframeForKey("1")
	assert.True(t, ok)
	assert.Equal(t, types.TimeframeM1, tf)

	tf, ok = timeframeForKey("7")
	assert.True(t, ok)
	assert.Equal(t, types.TimeframeD1, tf)

	_, ok = timeframeForKey("8")
	assert.False(t, ok)

	_, ok = timeframeForKey("g")
	assert.False(t, ok)
}

func TestFormatTimeframeStrip(t *testing.T) {
	strip := FormatTimeframeStrip(types.TimeframeM15)

	for _, tf := range types.Timeframes() {
		assert.Contains(t, strip, string(tf))
	}
}

func TestWindowSizeResizesCanvas(t *testing.T) {
	m := newLiveModel(t, &fakeFeed{candles: testCandles(60)})

	m, _ = apply(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	cols, rows := m.session.canvas.Size()
	assert.Equal(t, 80, cols)
	assert.Equal(t, 24-footerRows, rows)
}

func TestCandlesLoadedRendersChart(t *testing.T) {
	m := chartModel(t, &fakeFeed{candles: testCandles(60)})

	view := m.View()
	assert.Contains(t, view, "BTCUSDT")
	assert.Contains(t, view, "q: quit")
	assert.Len(t, m.session.candles, 60)
}

func TestChartKeyToggles(t *testing.T) {
	m := chartModel(t, &fakeFeed{candles: testCandles(60)})

	before := m.session.chart.Config().ShowGrid
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Equal(t, !before, m.session.chart.Config().ShowGrid)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	assert.Equal(t, types.ChartTypeLine, m.session.chart.Config().Type)

	toggles := m.session.chart.Toggles()
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, !toggles.ShowFVG, m.session.chart.Toggles().ShowFVG)
}

func TestToolSelectionAndDisarm(t *testing.T) {
	m := chartModel(t, &fakeFeed{candles: testCandles(60)})

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	assert.Equal(t, types.DrawingToolTrendline, m.session.chart.ActiveTool())

	// Esc disarms the tool but stays on the chart.
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, types.DrawingToolType(""), m.session.chart.ActiveTool())
	assert.Equal(t, StateChart, m.state)

	// A second esc leaves the chart.
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateTimeframeSelect, m.state)
}

func TestMouseClickUpdatesStatus(t *testing.T) {
	m := chartModel(t, &fakeFeed{candles: testCandles(60)})

	m, _ = apply(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = apply(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	assert.Contains(t, m.session.lastClick, "click")
	assert.Contains(t, m.View(), "click")
}

func TestMouseDrawingGesture(t *testing.T) {
	m := chartModel(t, &fakeFeed{candles: testCandles(60)})

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m, _ = apply(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = apply(t, m, tea.MouseMsg{X: 30, Y: 8, Action: tea.MouseActionMotion})
	m, _ = apply(t, m, tea.MouseMsg{X: 30, Y: 8, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	assert.Contains(t, m.session.lastDrawing, "trendline")
}

func TestMouseBelowCanvasIgnored(t *testing.T) {
	m := chartModel(t, &fakeFeed{candles: testCandles(60)})

	m, _ = apply(t, m, tea.MouseMsg{X: 5, Y: 23, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = apply(t, m, tea.MouseMsg{X: 5, Y: 23, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	assert.Empty(t, m.session.lastClick)
}

func TestFeedUpdateExtendsOrAppends(t *testing.T) {
	candles := testCandles(60)
	m := chartModel(t, &fakeFeed{candles: candles})

	last := candles[len(candles)-1]

	// Revision of the forming bar keeps the window length.
	revised := last
	revised.Close = last.Close + 3
	revised.High = last.Close + 3
	revised.Volume = last.Volume + 50

	m, _ = apply(t, m, FeedUpdateMsg{Update: livefeed.Update{Candle: revised}})
	assert.Len(t, m.session.candles, 60)
	assert.InDelta(t, revised.Close, m.session.candles[59].Close, 1e-9)

	// A new bar appends.
	next := last
	next.Time = last.Time.Add(time.Minute)

	m, _ = apply(t, m, FeedUpdateMsg{Update: livefeed.Update{Candle: next, Final: false}})
	assert.Len(t, m.session.candles, 61)
}

func TestEscFromChartStopsStream(t *testing.T) {
	m := chartModel(t, &fakeFeed{candles: testCandles(60)})

	stops := 0
	m, _ = apply(t, m, StreamStartedMsg{Stop: func() { stops++ }})

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateTimeframeSelect, m.state)
	assert.Equal(t, 1, stops)
}

func TestDataErrorShownInStatus(t *testing.T) {
	m := chartModel(t, &fakeFeed{candles: testCandles(60)})

	m, _ = apply(t, m, DataErrorMsg{Err: assert.AnError})
	assert.Contains(t, m.View(), assert.AnError.Error())
}

func TestSymbolToChartFlow(t *testing.T) {
	m := newLiveModel(t, &fakeFeed{candles: testCandles(60)})
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	// Wait for symbol prompt with the pre-filled symbol
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Enter Symbol"))
	}, teatest.WithDuration(2*time.Second))

	// Confirm symbol
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Select Timeframe"))
	}, teatest.WithDuration(2*time.Second))

	// Select the first timeframe and land on the chart
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("BTCUSDT")) &&
			bytes.Contains(bts, []byte("q: quit"))
	}, teatest.WithDuration(2*time.Second))

	err := tm.Quit()
	assert.NoError(t, err)
}
