package types

import (
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ChartType selects how the primary price series is rendered.
type ChartType string

const (
	ChartTypeCandlestick ChartType = "candlestick"
	ChartTypeLine        ChartType = "line"
	ChartTypeArea        ChartType = "area"
)

// LineStyle selects how strokes are dashed.
type LineStyle string

const (
	LineStyleSolid  LineStyle = "solid"
	LineStyleDashed LineStyle = "dashed"
	LineStyleDotted LineStyle = "dotted"
)

// Palette holds the fixed color set used by the chart renderer.
// Colors are opaque strings interpreted by the host canvas.
type Palette struct {
	// Background is the chart background fill color
	Background string `json:"background" yaml:"background" validate:"required"`
	// Grid is the grid line color
	Grid string `json:"grid" yaml:"grid" validate:"required"`
	// Up is the body color of bullish candles
	Up string `json:"up" yaml:"up" validate:"required"`
	// Down is the body color of bearish candles
	Down string `json:"down" yaml:"down" validate:"required"`
	// Volume is the fixed volume histogram color
	Volume string `json:"volume" yaml:"volume" validate:"required"`
}

// ChartConfig is the caller-supplied rendering configuration. It is applied
// wholesale on every change; the chart does not diff individual fields.
type ChartConfig struct {
	// Type selects the primary series rendering mode
	Type ChartType `json:"type" yaml:"type" validate:"required,oneof=candlestick line area"`
	// Timeframe is the active candle bucket size
	Timeframe Timeframe `json:"timeframe" yaml:"timeframe" validate:"required,oneof=1m 5m 15m 30m 1h 4h 1d"`
	// ShowVolume enables the volume histogram band
	ShowVolume bool `json:"show_volume" yaml:"show_volume"`
	// ShowGrid enables the dashed background grid
	ShowGrid bool `json:"show_grid" yaml:"show_grid"`
	// ShowCrosshair enables the pointer crosshair
	ShowCrosshair bool `json:"show_crosshair" yaml:"show_crosshair"`
	// AutoScale fits the price scale to the visible data window
	AutoScale bool `json:"auto_scale" yaml:"auto_scale"`
	// Palette is the fixed color set
	Palette Palette `json:"palette" yaml:"palette" validate:"required"`
}

// DefaultChartConfig returns a candlestick configuration with the standard
// dark palette, volume and grid enabled.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Type:          ChartTypeCandlestick,
		Timeframe:     TimeframeM15,
		ShowVolume:    true,
		ShowGrid:      true,
		ShowCrosshair: true,
		AutoScale:     true,
		Palette: Palette{
			Background: "#131722",
			Grid:       "#2a2e39",
			Up:         "#26a69a",
			Down:       "#ef5350",
			Volume:     "#5d606b",
		},
	}
}

// Validate validates the ChartConfig fields.
func (c *ChartConfig) Validate() error {
	validate := validator.New()

	return validate.Struct(c)
}

// ParseChartConfig parses YAML into a ChartConfig and validates it.
func ParseChartConfig(yamlConfig string) (*ChartConfig, error) {
	config := DefaultChartConfig()
	if err := yaml.Unmarshal([]byte(yamlConfig), &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
