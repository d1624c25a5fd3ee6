package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ChartConfigTestSuite struct {
	suite.Suite
}

func TestChartConfigSuite(t *testing.T) {
	suite.Run(t, new(ChartConfigTestSuite))
}

func (suite *ChartConfigTestSuite) TestDefaultConfigIsValid() {
	config := DefaultChartConfig()
	suite.NoError(config.Validate())
	suite.Equal(ChartTypeCandlestick, config.Type)
	suite.True(config.ShowVolume)
	suite.True(config.ShowGrid)
}

func (suite *ChartConfigTestSuite) TestInvalidChartType() {
	config := DefaultChartConfig()
	config.Type = "heikin_ashi"
	suite.Error(config.Validate())
}

func (suite *ChartConfigTestSuite) TestInvalidTimeframe() {
	config := DefaultChartConfig()
	config.Timeframe = "2h"
	suite.Error(config.Validate())
}

func (suite *ChartConfigTestSuite) TestMissingPaletteColor() {
	config := DefaultChartConfig()
	config.Palette.Background = ""
	suite.Error(config.Validate())
}

func (suite *ChartConfigTestSuite) TestParseChartConfig() {
	config, err := ParseChartConfig(`
type: line
timeframe: 1h
show_volume: false
`)
	suite.NoError(err)
	suite.Equal(ChartTypeLine, config.Type)
	suite.Equal(TimeframeH1, config.Timeframe)
	suite.False(config.ShowVolume)
	// Unset fields keep their defaults
	suite.True(config.ShowGrid)
	suite.Equal("#131722", config.Palette.Background)
}

func (suite *ChartConfigTestSuite) TestParseChartConfigInvalidYaml() {
	_, err := ParseChartConfig(`type: [`)
	suite.Error(err)
}

func (suite *ChartConfigTestSuite) TestParseChartConfigFailsValidation() {
	_, err := ParseChartConfig(`type: renko`)
	suite.Error(err)
}
