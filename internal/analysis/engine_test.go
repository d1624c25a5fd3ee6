package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/marketglass/chartcore/internal/logger"
	"github.com/marketglass/chartcore/internal/types"
	"github.com/marketglass/chartcore/pkg/errors"
)

type EngineTestSuite struct {
	suite.Suite

	engine *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) SetupTest() {
	engine, err := NewEngine(DefaultConfig(), logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.engine = engine
}

// wavyCandles generates an oscillating series long enough for every
// detector to produce swing structure.
func wavyCandles(n int) []types.Candle {
	candles := make([]types.Candle, 0, n)

	for i := 0; i < n; i++ {
		mid := 2400 + 10*math.Sin(float64(i)/5) + float64(i)*0.1
		candles = append(candles, candleAt(i, mid-0.5, mid+1.5, mid-1.5, mid+0.5, 1000+float64(i%7)*100))
	}

	return candles
}

func (suite *EngineTestSuite) TestAnalyzeRunsAllDetectors() {
	overlays, err := suite.engine.Analyze(wavyCandles(120))
	suite.Require().NoError(err)

	for _, o := range overlays {
		suite.NotEmpty(o.ID)
		suite.True(o.Visible)
		suite.NotNil(o.Data)
	}
}

func (suite *EngineTestSuite) TestAnalyzeRejectsSmallWindow() {
	_, err := suite.engine.Analyze(wavyCandles(10))
	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *EngineTestSuite) TestDetectorLookup() {
	d, err := suite.engine.Detector("fair_value_gap")
	suite.NoError(err)
	suite.NotNil(d)

	_, err = suite.engine.Detector("nonexistent")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDetectorNotFound))
}

func (suite *EngineTestSuite) TestRegisterDuplicate() {
	err := suite.engine.Register(NewFVGDetector(DefaultConfig().FVG))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDetectorAlreadyExists))
}

func (suite *EngineTestSuite) TestNewEngineRejectsInvalidConfig() {
	cfg := DefaultConfig()
	cfg.FVG.MinStrength = 2

	_, err := NewEngine(cfg, nil)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *EngineTestSuite) TestNilLoggerDefaultsToNop() {
	engine, err := NewEngine(DefaultConfig(), nil)
	suite.NoError(err)
	suite.NotNil(engine)
}

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaultConfigIsValid() {
	cfg := DefaultConfig()
	suite.NoError(cfg.Validate())
}

func (suite *ConfigTestSuite) TestParseConfigOverridesDefaults() {
	cfg, err := ParseConfig(`
min_candles: 30
fvg:
  min_size: 1.5
  max_size: 20
liquidity:
  pool_range: 2.5
`)
	suite.Require().NoError(err)

	suite.Equal(30, cfg.MinCandles)
	suite.InDelta(1.5, cfg.FVG.MinSize, 1e-9)
	suite.InDelta(2.5, cfg.Liquidity.PoolRange, 1e-9)
	// Untouched sections keep defaults.
	suite.Equal(DefaultConfig().Structure, cfg.Structure)
}

func (suite *ConfigTestSuite) TestParseConfigRejectsInvalidValues() {
	_, err := ParseConfig(`
fvg:
  min_strength: 3
`)
	suite.Error(err)
}

func (suite *ConfigTestSuite) TestParseConfigRejectsMalformedYAML() {
	_, err := ParseConfig("fvg: [")
	suite.Error(err)
}
