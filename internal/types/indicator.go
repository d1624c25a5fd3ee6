package types

// IndicatorType identifies a technical indicator family.
type IndicatorType string

const (
	IndicatorTypeMA         IndicatorType = "moving_average"
	IndicatorTypeRSI        IndicatorType = "rsi"
	IndicatorTypeMACD       IndicatorType = "macd"
	IndicatorTypeBollinger  IndicatorType = "bollinger_bands"
	IndicatorTypeStochastic IndicatorType = "stochastic_oscillator"
)

// RenderStyle selects how an indicator series is drawn.
type RenderStyle string

const (
	RenderStyleLine      RenderStyle = "line"
	RenderStyleArea      RenderStyle = "area"
	RenderStyleHistogram RenderStyle = "histogram"
)

// TechnicalIndicator is display metadata for one indicator series. The
// chart tracks visibility and styling only; indicator values are computed
// by the caller and never by the chart itself.
type TechnicalIndicator struct {
	// Name is the display name, e.g. "EMA 20"
	Name string `json:"name" yaml:"name"`
	// Type is the indicator family
	Type IndicatorType `json:"type" yaml:"type"`
	// Params holds the indicator parameters, e.g. {"period": 20}
	Params map[string]float64 `json:"params" yaml:"params"`
	// Visible gates rendering of the series
	Visible bool `json:"visible" yaml:"visible"`
	// Color is the draw color
	Color string `json:"color" yaml:"color"`
	// Style selects the rendering mode
	Style RenderStyle `json:"style" yaml:"style"`
}
