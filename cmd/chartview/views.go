package main

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/marketglass/chartcore/internal/types"
)

// listItem implements list.Item for the timeframe list.
type listItem struct {
	name        string
	description string
}

func (i listItem) Title() string       { return i.name }
func (i listItem) Description() string { return i.description }
func (i listItem) FilterValue() string { return i.name }

// timeframeDescriptions maps each supported timeframe to a list label.
var timeframeDescriptions = map[types.Timeframe]string{
	types.TimeframeM1:  "1 minute candles",
	types.TimeframeM5:  "5 minute candles",
	types.TimeframeM15: "15 minute candles",
	types.TimeframeM30: "30 minute candles",
	types.TimeframeH1:  "1 hour candles",
	types.TimeframeH4:  "4 hour candles",
	types.TimeframeD1:  "1 day candles",
}

// NewTimeframeList creates the timeframe selection list.
func NewTimeframeList() list.Model {
	items := make([]list.Item, 0, len(types.Timeframes()))

	for _, tf := range types.Timeframes() {
		items = append(items, listItem{name: string(tf), description: timeframeDescriptions[tf]})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select Timeframe"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewSymbolInput creates the symbol entry input.
func NewSymbolInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "BTCUSDT"
	ti.CharLimit = 20
	ti.Width = 30
	ti.Focus()

	return ti
}
