package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/moznion/go-optional"

	"github.com/marketglass/chartcore/internal/analysis"
	"github.com/marketglass/chartcore/internal/chart"
	"github.com/marketglass/chartcore/internal/datasource"
	"github.com/marketglass/chartcore/internal/livefeed"
	"github.com/marketglass/chartcore/internal/logger"
	"github.com/marketglass/chartcore/internal/types"
	"github.com/marketglass/chartcore/pkg/errors"
)

// Application states.
const (
	StateSymbolInput = iota
	StateTimeframeSelect
	StateChart
)

// seedCandleCount is the window size loaded when entering the chart.
const seedCandleCount = 200

// footerRows below the canvas: timeframe strip, status line, help line.
const footerRows = 3

// frameRequest is one pending paint callback.
type frameRequest struct {
	fn        func()
	cancelled bool
}

// frameQueue implements chart.FrameRequester on the Bubble Tea event loop:
// requests accumulate during Update and flush runs them before the next
// View, which stands in for the host animation frame.
type frameQueue struct {
	pending []*frameRequest
}

func (q *frameQueue) RequestFrame(fn func()) (cancel func()) {
	req := &frameRequest{fn: fn}
	q.pending = append(q.pending, req)

	return func() { req.cancelled = true }
}

func (q *frameQueue) flush() {
	for len(q.pending) > 0 {
		req := q.pending[0]
		q.pending = q.pending[1:]

		if !req.cancelled {
			req.fn()
		}
	}
}

// session holds the chart core and data plumbing shared across Model
// copies. Chart event callbacks write into it so the next View sees them.
type session struct {
	chart  *chart.Chart
	canvas *CellCanvas
	frames *frameQueue
	engine *analysis.Engine

	// Exactly one of source (file mode) and feed (live mode) is set.
	source datasource.CandleSource
	feed   livefeed.Feed

	candles    []types.Candle
	stopStream func()

	lastClick   string
	lastDrawing string

	program *tea.Program
}

// Model is the main Bubble Tea model for the chart viewer.
type Model struct {
	state         int
	symbolInput   textinput.Model
	timeframeList list.Model
	session       *session
	symbol        string
	err           error
	width         int
	height        int
	streaming     bool
}

// NewModel creates a Model in the symbol input state. Exactly one of
// source and feed must be non-nil; symbol pre-fills the input when set.
func NewModel(source datasource.CandleSource, feed livefeed.Feed, engine *analysis.Engine, config types.ChartConfig, symbol string, log *logger.Logger) Model {
	frames := &frameQueue{}
	canvas := NewCellCanvas(0, 0)

	s := &session{
		canvas: canvas,
		frames: frames,
		engine: engine,
		source: source,
		feed:   feed,
	}

	s.chart = chart.New(canvas, frames, log)
	s.chart.SetConfig(config)
	s.chart.OnClick = func(e types.ClickEvent) { s.lastClick = FormatClick(e) }
	s.chart.OnDrawing = func(e types.DrawingEvent) { s.lastDrawing = FormatDrawing(e) }

	input := NewSymbolInput()
	input.SetValue(symbol)

	return Model{
		state:         StateSymbolInput,
		symbolInput:   input,
		timeframeList: NewTimeframeList(),
		session:       s,
		symbol:        symbol,
	}
}

// SetProgram sets the tea.Program reference for sending messages from the
// stream goroutine.
func (m *Model) SetProgram(p *tea.Program) {
	m.session.program = p
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m.quit()
		case "q":
			// Only quit on 'q' if not in text input mode
			if m.state != StateSymbolInput {
				return m.quit()
			}
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.timeframeList.SetSize(msg.Width, msg.Height-4)
		m.session.canvas.Resize(msg.Width, msg.Height-footerRows)
		m.session.chart.Resize(float64(msg.Width), float64(msg.Height-footerRows))

		return m, nil

	case tea.MouseMsg:
		if m.state == StateChart {
			m.handleMouse(msg)
		}

		return m, nil

	case CandlesLoadedMsg:
		m.err = nil
		m.session.candles = msg.Candles
		m.session.chart.SetCandles(msg.Candles)

		cmds := []tea.Cmd{m.analyze()}
		if m.session.feed != nil && !m.streaming {
			cmds = append(cmds, m.startStreaming())
		}

		return m, tea.Batch(cmds...)

	case AnalysisMsg:
		m.session.chart.SetOverlays(msg.Overlays)

		return m, nil

	case FeedUpdateMsg:
		m.session.applyUpdate(msg.Update)

		if msg.Update.Final {
			return m, m.analyze()
		}

		return m, nil

	case StreamStartedMsg:
		m.streaming = true
		m.session.stopStream = msg.Stop

		return m, nil

	case DataErrorMsg:
		m.err = msg.Err

		return m, nil
	}

	// Delegate to state-specific update
	switch m.state {
	case StateSymbolInput:
		return m.updateSymbolInput(msg)
	case StateTimeframeSelect:
		return m.updateTimeframeSelect(msg)
	case StateChart:
		return m.updateChart(msg)
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.stopStreaming()
	m.session.chart.Close()

	return m, tea.Quit
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateTimeframeSelect:
		m.state = StateSymbolInput
		m.symbolInput.Focus()
	case StateChart:
		// First esc disarms an armed drawing tool, second leaves the chart.
		if tool := m.session.chart.ActiveTool(); tool != "" {
			m.session.chart.SelectTool(tool)

			return m, nil
		}

		m.stopStreaming()
		m.state = StateTimeframeSelect
	}

	return m, nil
}

func (m Model) updateSymbolInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		symbol := strings.ToUpper(strings.TrimSpace(m.symbolInput.Value()))
		if symbol == "" {
			symbol = m.symbolInput.Placeholder
		}

		m.symbol = symbol
		m.state = StateTimeframeSelect

		return m, nil
	}

	var cmd tea.Cmd
	m.symbolInput, cmd = m.symbolInput.Update(msg)

	return m, cmd
}

func (m Model) updateTimeframeSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		if item, ok := m.timeframeList.SelectedItem().(listItem); ok {
			return m.enterChart(types.Timeframe(item.name))
		}
	}

	var cmd tea.Cmd
	m.timeframeList, cmd = m.timeframeList.Update(msg)

	return m, cmd
}

func (m Model) updateChart(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	s := m.session

	switch key.String() {
	case "t":
		config := s.chart.Config()
		config.Type = cycleChartType(config.Type)
		s.chart.SetConfig(config)
	case "g":
		config := s.chart.Config()
		config.ShowGrid = !config.ShowGrid
		s.chart.SetConfig(config)
	case "v":
		config := s.chart.Config()
		config.ShowVolume = !config.ShowVolume
		s.chart.SetConfig(config)
	case "c":
		config := s.chart.Config()
		config.ShowCrosshair = !config.ShowCrosshair
		s.chart.SetConfig(config)
	case "x":
		toggles := s.chart.Toggles()
		toggles.ShowFVG = !toggles.ShowFVG
		s.chart.SetToggles(toggles)
	case "b":
		toggles := s.chart.Toggles()
		toggles.ShowOrderBlocks = !toggles.ShowOrderBlocks
		s.chart.SetToggles(toggles)
	case "l":
		toggles := s.chart.Toggles()
		toggles.ShowLiquidity = !toggles.ShowLiquidity
		s.chart.SetToggles(toggles)
	default:
		if tool, ok := toolForKey(key.String()); ok {
			s.chart.SelectTool(tool)

			break
		}

		if tf, ok := timeframeForKey(key.String()); ok {
			return m.enterChart(tf)
		}
	}

	return m, nil
}

// enterChart switches the active timeframe and (re)loads the window. Any
// running stream is stopped first; it restarts once the seed load lands.
func (m Model) enterChart(tf types.Timeframe) (tea.Model, tea.Cmd) {
	m.stopStreaming()
	m.session.chart.SetTimeframe(tf)
	m.state = StateChart

	return m, m.loadCandles()
}

func (m *Model) stopStreaming() {
	if m.session.stopStream != nil {
		m.session.stopStream()
		m.session.stopStream = nil
	}

	m.streaming = false
}

func (m Model) handleMouse(e tea.MouseMsg) {
	_, rows := m.session.canvas.Size()
	if e.Y >= rows {
		return
	}

	x, y := float64(e.X), float64(e.Y)

	switch e.Action {
	case tea.MouseActionPress:
		if e.Button == tea.MouseButtonLeft {
			m.session.chart.PointerDown(x, y)
		}
	case tea.MouseActionMotion:
		m.session.chart.PointerMove(x, y)
	case tea.MouseActionRelease:
		m.session.chart.PointerUp(x, y)
	}
}

// loadCandles fetches the seed window for the current symbol and
// timeframe: the newest rows in file mode, a kline fetch in live mode.
func (m Model) loadCandles() tea.Cmd {
	s := m.session
	symbol := m.symbol
	tf := s.chart.Config().Timeframe

	return func() tea.Msg {
		var (
			candles []types.Candle
			err     error
		)

		if s.feed != nil {
			candles, err = s.feed.Fetch(context.Background(), symbol, tf, seedCandleCount)
		} else {
			candles, err = s.source.ReadLatest(seedCandleCount, optional.Some(symbol))
		}

		if err != nil {
			return DataErrorMsg{Err: err}
		}

		return CandlesLoadedMsg{Candles: candles}
	}
}

// analyze runs the detector engine over a snapshot of the current window.
// A window below the analysis minimum simply clears the overlays.
func (m Model) analyze() tea.Cmd {
	s := m.session
	candles := append([]types.Candle(nil), s.candles...)

	return func() tea.Msg {
		overlays, err := s.engine.Analyze(candles)
		if err != nil {
			if errors.IsInsufficientDataError(err) {
				return AnalysisMsg{}
			}

			return DataErrorMsg{Err: err}
		}

		return AnalysisMsg{Overlays: overlays}
	}
}

func (m Model) startStreaming() tea.Cmd {
	s := m.session
	symbol := m.symbol
	tf := s.chart.Config().Timeframe

	return func() tea.Msg {
		stop, err := s.feed.Stream(symbol, tf, func(u livefeed.Update) {
			if s.program != nil {
				s.program.Send(FeedUpdateMsg{Update: u})
			}
		})
		if err != nil {
			return DataErrorMsg{Err: err}
		}

		return StreamStartedMsg{Stop: stop}
	}
}

// applyUpdate folds one stream update into the candle window: a revision
// of the forming bar extends the last candle, a new bar appends.
func (s *session) applyUpdate(u livefeed.Update) {
	if n := len(s.candles); n > 0 && s.candles[n-1].Time.Equal(u.Candle.Time) {
		volumeDelta := u.Candle.Volume - s.candles[n-1].Volume
		s.candles[n-1] = u.Candle
		s.chart.ExtendLastCandle(u.Candle.Close, volumeDelta)

		return
	}

	s.candles = append(s.candles, u.Candle)
	s.chart.SetCandles(s.candles)
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.state {
	case StateSymbolInput:
		return TitleStyle.Render("Enter Symbol") + "\n\n" +
			m.symbolInput.View() + "\n\n" +
			HelpStyle.Render("enter: confirm • ctrl+c: quit")
	case StateTimeframeSelect:
		return m.timeframeList.View()
	case StateChart:
		return m.chartView()
	}

	return ""
}

func (m Model) chartView() string {
	s := m.session

	// Pending paints run here so the canvas below is current.
	s.frames.flush()

	status := []string{TitleStyle.Render(m.symbol)}

	if m.err != nil {
		status = append(status, ErrorStyle.Render(m.err.Error()))
	}

	if tool := s.chart.ActiveTool(); tool != "" {
		status = append(status, "tool: "+string(tool))
	}

	if s.lastDrawing != "" {
		status = append(status, s.lastDrawing)
	}

	if s.lastClick != "" {
		status = append(status, s.lastClick)
	}

	help := HelpStyle.Render("t: type • g: grid • v: volume • x/b/l: overlays • d/r/h/u/f: draw • esc: back • q: quit")

	return s.canvas.Render() + "\n" +
		FormatTimeframeStrip(s.chart.Config().Timeframe) + "\n" +
		strings.Join(status, "  ") + "\n" +
		help
}

// cycleChartType steps candlestick -> line -> area -> candlestick.
func cycleChartType(t types.ChartType) types.ChartType {
	switch t {
	case types.ChartTypeCandlestick:
		return types.ChartTypeLine
	case types.ChartTypeLine:
		return types.ChartTypeArea
	default:
		return types.ChartTypeCandlestick
	}
}

// toolForKey maps a drawing hotkey to its tool.
func toolForKey(key string) (types.DrawingToolType, bool) {
	switch key {
	case "d":
		return types.DrawingToolTrendline, true
	case "r":
		return types.DrawingToolRectangle, true
	case "h":
		return types.DrawingToolHorizontalLine, true
	case "u":
		return types.DrawingToolVerticalLine, true
	case "f":
		return types.DrawingToolFibonacci, true
	}

	return "", false
}

// timeframeForKey maps the digit row onto the timeframe strip.
func timeframeForKey(key string) (types.Timeframe, bool) {
	timeframes := types.Timeframes()

	if len(key) != 1 || key[0] < '1' || key[0] > byte('0'+len(timeframes)) {
		return "", false
	}

	return timeframes[key[0]-'1'], true
}
