package livefeed

import (
	"testing"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/suite"

	"github.com/marketglass/chartcore/internal/types"
	"github.com/marketglass/chartcore/pkg/errors"
)

type BinanceFeedTestSuite struct {
	suite.Suite
}

func TestBinanceFeedSuite(t *testing.T) {
	suite.Run(t, new(BinanceFeedTestSuite))
}

func (suite *BinanceFeedTestSuite) TestIntervalMapping() {
	for _, tf := range types.Timeframes() {
		interval, err := binanceInterval(tf)
		suite.NoError(err)
		suite.Equal(string(tf), interval)
	}
}

func (suite *BinanceFeedTestSuite) TestIntervalRejectsUnknownTimeframe() {
	_, err := binanceInterval(types.Timeframe("2h"))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidInterval))
}

func (suite *BinanceFeedTestSuite) TestConvertKline() {
	openTime := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC).UnixMilli()

	candle, err := convertKline(&binance.Kline{
		OpenTime: openTime,
		Open:     "2400.50",
		High:     "2405.00",
		Low:      "2398.25",
		Close:    "2404.75",
		Volume:   "1532.8",
	}, types.TimeframeM15)
	suite.Require().NoError(err)

	suite.Equal(time.UnixMilli(openTime), candle.Time)
	suite.InDelta(2400.50, candle.Open, 1e-9)
	suite.InDelta(2405.00, candle.High, 1e-9)
	suite.InDelta(2398.25, candle.Low, 1e-9)
	suite.InDelta(2404.75, candle.Close, 1e-9)
	suite.InDelta(1532.8, candle.Volume, 1e-9)
	suite.Equal(types.TimeframeM15, candle.Timeframe)
	suite.True(candle.Validate())
}

func (suite *BinanceFeedTestSuite) TestConvertWsKline() {
	openTime := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC).UnixMilli()

	candle, err := convertWsKline(binance.WsKline{
		StartTime: openTime,
		Open:      "101.0",
		High:      "102.5",
		Low:       "100.5",
		Close:     "102.0",
		Volume:    "10.5",
	}, types.TimeframeM1)
	suite.Require().NoError(err)

	suite.Equal(time.UnixMilli(openTime), candle.Time)
	suite.InDelta(102.0, candle.Close, 1e-9)
}

func (suite *BinanceFeedTestSuite) TestConvertKlineMalformedField() {
	_, err := convertKline(&binance.Kline{
		Open:   "not-a-number",
		High:   "1",
		Low:    "1",
		Close:  "1",
		Volume: "1",
	}, types.TimeframeM1)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}
