package analysis

import (
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FVGConfig controls fair value gap detection.
type FVGConfig struct {
	// MinSize is the smallest gap height in price units that scores full
	// size strength
	MinSize float64 `yaml:"min_size" validate:"gte=0"`
	// MaxSize is the largest gap height that scores full size strength
	MaxSize float64 `yaml:"max_size" validate:"gtefield=MinSize"`
	// MinStrength filters out gaps below this confidence
	MinStrength float64 `yaml:"min_strength" validate:"gte=0,lte=1"`
	// RequireVolumeSpike scores the gap candle's volume against the average
	RequireVolumeSpike bool `yaml:"require_volume_spike"`
	// VolumeMultiplier is the spike ratio that scores full volume strength
	VolumeMultiplier float64 `yaml:"volume_multiplier" validate:"gte=1"`
}

// OrderBlockConfig controls order block detection.
type OrderBlockConfig struct {
	// MinCandleRange is the smallest total range a block candle may have
	MinCandleRange float64 `yaml:"min_candle_range" validate:"gte=0"`
	// MaxBodyPercent is the largest body share (0-100) of a consolidation candle
	MaxBodyPercent float64 `yaml:"max_body_percent" validate:"gt=0,lte=100"`
	// VolumeMultiplier is the spike ratio that scores full volume strength
	VolumeMultiplier float64 `yaml:"volume_multiplier" validate:"gte=1"`
	// AvgVolumePeriods is the window for the average volume baseline
	AvgVolumePeriods int `yaml:"avg_volume_periods" validate:"gte=1"`
	// MinStrength filters out blocks below this confidence
	MinStrength float64 `yaml:"min_strength" validate:"gte=0,lte=1"`
}

// LiquidityConfig controls liquidity pool and sweep detection.
type LiquidityConfig struct {
	// SwingPeriod is the number of candles on each side that a swing
	// extreme must dominate
	SwingPeriod int `yaml:"swing_period" validate:"gte=1"`
	// PoolRange is the price proximity within which swing points cluster
	// into one pool
	PoolRange float64 `yaml:"pool_range" validate:"gt=0"`
	// MinPoolTouches is the touch count that scores full pool strength
	MinPoolTouches int `yaml:"min_pool_touches" validate:"gte=1"`
	// SweepExtension is how far price must extend beyond a pool to count
	// as a sweep
	SweepExtension float64 `yaml:"sweep_extension" validate:"gte=0"`
}

// StructureConfig controls market structure break detection.
type StructureConfig struct {
	// SwingPeriod is the number of candles on each side that a swing
	// extreme must dominate
	SwingPeriod int `yaml:"swing_period" validate:"gte=1"`
	// MinSwingPoints is the minimum swing highs and lows required before a
	// trend is called
	MinSwingPoints int `yaml:"min_swing_points" validate:"gte=2"`
}

// Config aggregates the per-detector settings.
type Config struct {
	// MinCandles is the smallest window Analyze accepts
	MinCandles int `yaml:"min_candles" validate:"gte=3"`

	FVG        FVGConfig        `yaml:"fvg"`
	OrderBlock OrderBlockConfig `yaml:"order_block"`
	Liquidity  LiquidityConfig  `yaml:"liquidity"`
	Structure  StructureConfig  `yaml:"structure"`
}

// DefaultConfig returns detection settings tuned for intraday gold data,
// matching the production defaults of the system this package derives from.
func DefaultConfig() Config {
	return Config{
		MinCandles: 50,
		FVG: FVGConfig{
			MinSize:            0.5,
			MaxSize:            10,
			MinStrength:        0.3,
			RequireVolumeSpike: false,
			VolumeMultiplier:   1.5,
		},
		OrderBlock: OrderBlockConfig{
			MinCandleRange:   0.5,
			MaxBodyPercent:   40,
			VolumeMultiplier: 1.5,
			AvgVolumePeriods: 20,
			MinStrength:      0.3,
		},
		Liquidity: LiquidityConfig{
			SwingPeriod:    10,
			PoolRange:      1.0,
			MinPoolTouches: 3,
			SweepExtension: 0.5,
		},
		Structure: StructureConfig{
			SwingPeriod:    10,
			MinSwingPoints: 3,
		},
	}
}

// Validate validates the config fields.
func (c *Config) Validate() error {
	validate := validator.New()

	return validate.Struct(c)
}

// ParseConfig parses YAML into a Config and validates it. Omitted fields
// keep their defaults.
func ParseConfig(yamlConfig string) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(yamlConfig), &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
