package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/marketglass/chartcore/internal/logger"
	"github.com/marketglass/chartcore/pkg/errors"
)

type CandleSourceTestSuite struct {
	suite.Suite

	source   CandleSource
	baseTime time.Time
}

func TestCandleSourceSuite(t *testing.T) {
	suite.Run(t, new(CandleSourceTestSuite))
}

func (suite *CandleSourceTestSuite) SetupSuite() {
	suite.baseTime = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	csvPath := filepath.Join(suite.T().TempDir(), "candles.csv")
	suite.Require().NoError(os.WriteFile(csvPath, []byte(suite.testCSV()), 0o644))

	source, err := NewCandleSource(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.Require().NoError(source.Initialize(csvPath))

	suite.source = source
}

func (suite *CandleSourceTestSuite) TearDownSuite() {
	if suite.source != nil {
		suite.NoError(suite.source.Close())
	}
}

// testCSV builds 100 one-minute XAUUSD candles and 10 EURUSD candles.
func (suite *CandleSourceTestSuite) testCSV() string {
	var b strings.Builder

	b.WriteString("time,symbol,open,high,low,close,volume\n")

	for i := 0; i < 100; i++ {
		ts := suite.baseTime.Add(time.Duration(i) * time.Minute)
		fmt.Fprintf(&b, "%s,XAUUSD,%.2f,%.2f,%.2f,%.2f,%.0f\n",
			ts.Format(time.RFC3339), 2400.0+float64(i), 2401.0+float64(i),
			2399.0+float64(i), 2400.5+float64(i), 1000.0+float64(i*10))
	}

	for i := 0; i < 10; i++ {
		ts := suite.baseTime.Add(time.Duration(i) * time.Minute)
		fmt.Fprintf(&b, "%s,EURUSD,%.4f,%.4f,%.4f,%.4f,%.0f\n",
			ts.Format(time.RFC3339), 1.09, 1.0910, 1.0890, 1.0905, 500.0)
	}

	return b.String()
}

func (suite *CandleSourceTestSuite) TestCountAll() {
	count, err := suite.source.Count(optional.None[time.Time](), optional.None[time.Time]())
	suite.NoError(err)
	suite.Equal(110, count)
}

func (suite *CandleSourceTestSuite) TestCountBounded() {
	start := suite.baseTime.Add(50 * time.Minute)
	end := suite.baseTime.Add(59 * time.Minute)

	count, err := suite.source.Count(optional.Some(start), optional.Some(end))
	suite.NoError(err)
	suite.Equal(10, count)
}

func (suite *CandleSourceTestSuite) TestGetRangeAscending() {
	start := suite.baseTime.Add(10 * time.Minute)
	end := suite.baseTime.Add(19 * time.Minute)

	candles, err := suite.source.GetRange(start, end, optional.Some("XAUUSD"))
	suite.Require().NoError(err)
	suite.Require().Len(candles, 10)

	suite.Equal(start, candles[0].Time.UTC())
	suite.InDelta(2410.0, candles[0].Open, 1e-9)

	for i := 1; i < len(candles); i++ {
		suite.True(candles[i].Time.After(candles[i-1].Time))
	}
}

func (suite *CandleSourceTestSuite) TestGetRangeEmptyWindow() {
	start := suite.baseTime.Add(-2 * time.Hour)
	end := suite.baseTime.Add(-1 * time.Hour)

	candles, err := suite.source.GetRange(start, end, optional.None[string]())
	suite.NoError(err)
	suite.Empty(candles)
}

func (suite *CandleSourceTestSuite) TestReadLatestAscending() {
	candles, err := suite.source.ReadLatest(5, optional.Some("XAUUSD"))
	suite.Require().NoError(err)
	suite.Require().Len(candles, 5)

	// Newest five bars, back in chronological order.
	suite.Equal(suite.baseTime.Add(95*time.Minute), candles[0].Time.UTC())
	suite.Equal(suite.baseTime.Add(99*time.Minute), candles[4].Time.UTC())
}

func (suite *CandleSourceTestSuite) TestReadLatestRejectsNonPositiveCount() {
	_, err := suite.source.ReadLatest(0, optional.None[string]())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *CandleSourceTestSuite) TestSymbols() {
	symbols, err := suite.source.Symbols()
	suite.NoError(err)
	suite.Equal([]string{"EURUSD", "XAUUSD"}, symbols)
}

func (suite *CandleSourceTestSuite) TestInitializeMissingFile() {
	source, err := NewCandleSource(":memory:", nil)
	suite.Require().NoError(err)

	defer func() { suite.NoError(source.Close()) }()

	err = source.Initialize(filepath.Join(suite.T().TempDir(), "missing.csv"))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataSourceUnavailable))
}
