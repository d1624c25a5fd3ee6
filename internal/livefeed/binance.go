// Package livefeed streams candles from Binance for live charting: a
// historical kline fetch to seed the chart window, and a websocket kline
// subscription whose in-progress updates drive the last-candle extension.
package livefeed

import (
	"context"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"go.uber.org/zap"

	"github.com/marketglass/chartcore/internal/logger"
	"github.com/marketglass/chartcore/internal/types"
	"github.com/marketglass/chartcore/pkg/errors"
)

// Update is one streamed candle state. Final marks the bar as closed; a
// non-final update revises the still-forming bar.
type Update struct {
	Candle types.Candle
	Final  bool
}

// Feed provides seed history and live candle updates for one venue.
type Feed interface {
	// Fetch returns the most recent limit candles, ascending by time
	Fetch(ctx context.Context, symbol string, tf types.Timeframe, limit int) ([]types.Candle, error)
	// Stream subscribes to live candle updates until stop is called
	Stream(symbol string, tf types.Timeframe, onUpdate func(Update)) (stop func(), err error)
}

// BinanceFeed implements Feed against the Binance spot API.
type BinanceFeed struct {
	client *binance.Client
	log    *logger.Logger
}

// NewBinanceFeed creates a feed using unauthenticated market data access.
func NewBinanceFeed(log *logger.Logger) *BinanceFeed {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BinanceFeed{
		client: binance.NewClient("", ""),
		log:    log,
	}
}

// Fetch implements Feed.
func (f *BinanceFeed) Fetch(ctx context.Context, symbol string, tf types.Timeframe, limit int) ([]types.Candle, error) {
	interval, err := binanceInterval(tf)
	if err != nil {
		return nil, err
	}

	klines, err := f.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch %s klines for %s", interval, symbol)
	}

	candles := make([]types.Candle, 0, len(klines))

	for _, k := range klines {
		candle, err := convertKline(k, tf)
		if err != nil {
			return nil, err
		}

		candles = append(candles, candle)
	}

	return candles, nil
}

// Stream implements Feed. Updates arrive on the websocket goroutine; the
// caller is responsible for marshaling them onto its own event loop.
func (f *BinanceFeed) Stream(symbol string, tf types.Timeframe, onUpdate func(Update)) (func(), error) {
	interval, err := binanceInterval(tf)
	if err != nil {
		return nil, err
	}

	wsHandler := func(event *binance.WsKlineEvent) {
		candle, err := convertWsKline(event.Kline, tf)
		if err != nil {
			f.log.Warn("dropping malformed kline event",
				zap.String("symbol", symbol),
				zap.Error(err),
			)

			return
		}

		onUpdate(Update{Candle: candle, Final: event.Kline.IsFinal})
	}

	errHandler := func(err error) {
		f.log.Error("kline stream error",
			zap.String("symbol", symbol),
			zap.Error(err),
		)
	}

	doneC, stopC, err := binance.WsKlineServe(symbol, interval, wsHandler, errHandler)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to open kline stream for %s", symbol)
	}

	stop := func() {
		close(stopC)
		<-doneC
	}

	return stop, nil
}

// binanceInterval maps a chart timeframe onto the Binance kline interval
// label. The labels happen to coincide for every supported timeframe.
func binanceInterval(tf types.Timeframe) (string, error) {
	for _, known := range types.Timeframes() {
		if tf == known {
			return string(tf), nil
		}
	}

	return "", errors.Newf(errors.ErrCodeInvalidInterval, "unsupported timeframe: %s", tf)
}

func convertKline(k *binance.Kline, tf types.Timeframe) (types.Candle, error) {
	return parseCandle(k.OpenTime, k.Open, k.High, k.Low, k.Close, k.Volume, tf)
}

func convertWsKline(k binance.WsKline, tf types.Timeframe) (types.Candle, error) {
	return parseCandle(k.StartTime, k.Open, k.High, k.Low, k.Close, k.Volume, tf)
}

// parseCandle converts Binance's stringly-typed OHLCV fields. The bar is
// stamped with its open time.
func parseCandle(openTime int64, open, high, low, closePrice, volume string, tf types.Timeframe) (types.Candle, error) {
	fields := [5]string{open, high, low, closePrice, volume}

	var values [5]float64

	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return types.Candle{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "malformed kline field %q", field)
		}

		values[i] = v
	}

	return types.Candle{
		Time:      time.UnixMilli(openTime),
		Open:      values[0],
		High:      values[1],
		Low:       values[2],
		Close:     values[3],
		Volume:    values[4],
		Timeframe: tf,
	}, nil
}
