package analysis

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/marketglass/chartcore/internal/types"
)

type StructureTestSuite struct {
	suite.Suite

	detector *StructureDetector
}

func TestStructureSuite(t *testing.T) {
	suite.Run(t, new(StructureTestSuite))
}

func (suite *StructureTestSuite) SetupTest() {
	suite.detector = NewStructureDetector(StructureConfig{
		SwingPeriod:    2,
		MinSwingPoints: 2,
	})
}

func (suite *StructureTestSuite) TestBreakClassMapping() {
	suite.Equal(types.BreakTypeBOS, breakClass(trendUp, types.DirectionBullish))
	suite.Equal(types.BreakTypeBOS, breakClass(trendDown, types.DirectionBearish))
	suite.Equal(types.BreakTypeCHoCH, breakClass(trendUp, types.DirectionBearish))
	suite.Equal(types.BreakTypeCHoCH, breakClass(trendDown, types.DirectionBullish))
	suite.Equal(types.BreakTypeCHoCH, breakClass(trendRanging, types.DirectionBullish))
	suite.Equal(types.BreakTypeCHoCH, breakClass(trendRanging, types.DirectionBearish))
}

func (suite *StructureTestSuite) TestTrendFromSwingProgression() {
	up := []swingPoint{{price: 100}, {price: 102}}
	upLows := []swingPoint{{price: 95}, {price: 97}}
	suite.Equal(trendUp, suite.detector.trend(up, upLows))

	down := []swingPoint{{price: 102}, {price: 100}}
	downLows := []swingPoint{{price: 97}, {price: 95}}
	suite.Equal(trendDown, suite.detector.trend(down, downLows))

	// Higher high but lower low is mixed.
	suite.Equal(trendRanging, suite.detector.trend(up, downLows))

	// Too few points of either kind.
	suite.Equal(trendRanging, suite.detector.trend(up[:1], upLows))
}

// swingBreakCandles builds one swing high near 105 whose level is later
// broken by a close above it.
func swingBreakCandles() []types.Candle {
	highs := []float64{100, 101, 105, 101, 100, 102, 106}

	candles := make([]types.Candle, 0, len(highs))
	for i, h := range highs {
		candles = append(candles, candleAt(i, h-1, h, h-2, h-0.5, 1000))
	}

	return candles
}

func (suite *StructureTestSuite) TestBullishBreakEmitted() {
	candles := swingBreakCandles()

	overlays, err := suite.detector.Detect(candles)
	suite.Require().NoError(err)
	suite.Require().Len(overlays, 1)

	ms, ok := overlays[0].Data.(types.MarketStructure)
	suite.Require().True(ok)

	suite.Equal(types.DirectionBullish, ms.Direction)
	suite.InDelta(105, ms.Price, 1e-9)
	// Break confirmed on the candle closing above the level.
	suite.Equal(candles[6].Time, ms.Time)
	// A single swing pair cannot establish a trend.
	suite.Equal(types.BreakTypeCHoCH, ms.Break)
	suite.Positive(ms.Strength)
}

func (suite *StructureTestSuite) TestEachLevelBreaksOnce() {
	highs := []float64{100, 101, 105, 101, 100, 102, 106, 107, 108}

	candles := make([]types.Candle, 0, len(highs))
	for i, h := range highs {
		candles = append(candles, candleAt(i, h-1, h, h-2, h-0.5, 1000))
	}

	overlays, err := suite.detector.Detect(candles)
	suite.Require().NoError(err)

	bullish := 0
	for _, o := range overlays {
		if ms, ok := o.Data.(types.MarketStructure); ok && ms.Direction == types.DirectionBullish {
			bullish++
		}
	}

	suite.Equal(1, bullish)
}

func (suite *StructureTestSuite) TestNoSwingsNoBreaks() {
	overlays, err := suite.detector.Detect(swingBreakCandles()[:3])
	suite.NoError(err)
	suite.Nil(overlays)
}
