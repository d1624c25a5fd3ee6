// Package datasource loads candle windows from a DuckDB-backed store. The
// store is a view over a parquet or CSV file, so historical exports can be
// charted without an import step.
package datasource

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/marketglass/chartcore/internal/logger"
	"github.com/marketglass/chartcore/internal/types"
	"github.com/marketglass/chartcore/pkg/errors"
)

// CandleSource reads candle windows for the chart.
type CandleSource interface {
	// Initialize points the source at a parquet or CSV candle file
	Initialize(path string) error
	// Count returns the number of candles, optionally bounded in time
	Count(start, end optional.Option[time.Time]) (int, error)
	// GetRange returns candles in [start, end] ascending by time
	GetRange(start, end time.Time, symbol optional.Option[string]) ([]types.Candle, error)
	// ReadLatest returns the last n candles ascending by time
	ReadLatest(n int, symbol optional.Option[string]) ([]types.Candle, error)
	// Symbols returns the distinct symbols present in the store
	Symbols() ([]string, error)
	// Close releases the underlying database
	Close() error
}

// DuckDBCandleSource implements CandleSource over an embedded DuckDB.
type DuckDBCandleSource struct {
	db  *sql.DB
	log *logger.Logger
	sq  squirrel.StatementBuilderType
}

// NewCandleSource opens a DuckDB database at path. An empty path opens an
// in-memory database; Initialize then loads the candle file.
func NewCandleSource(path string, log *logger.Logger) (CandleSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &DuckDBCandleSource{
		db:  db,
		log: log,
		sq:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements CandleSource. The file format is picked by
// extension; anything that is not parquet goes through DuckDB's CSV
// auto-detection.
func (d *DuckDBCandleSource) Initialize(path string) error {
	d.log.Debug("initializing candle view", zap.String("path", path))

	if _, err := d.db.Exec(`DROP VIEW IF EXISTS candles;`); err != nil {
		return errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to drop existing view", err)
	}

	reader := "read_csv_auto"
	if strings.HasSuffix(path, ".parquet") {
		reader = "read_parquet"
	}

	// CREATE VIEW is raw SQL; squirrel has no DDL support.
	query := fmt.Sprintf(`CREATE VIEW candles AS SELECT * FROM %s('%s');`, reader, path)
	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to create candle view over %s", path)
	}

	return nil
}

// Count implements CandleSource.
func (d *DuckDBCandleSource) Count(start, end optional.Option[time.Time]) (int, error) {
	builder := d.sq.Select("COUNT(*)").From("candles")

	if s, err := start.Take(); err == nil {
		builder = builder.Where(squirrel.GtOrEq{"time": s})
	}

	if e, err := end.Take(); err == nil {
		builder = builder.Where(squirrel.LtOrEq{"time": e})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build count query", err)
	}

	var count int
	if err := d.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count candles", err)
	}

	return count, nil
}

// GetRange implements CandleSource.
func (d *DuckDBCandleSource) GetRange(start, end time.Time, symbol optional.Option[string]) ([]types.Candle, error) {
	builder := d.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From("candles").
		Where(squirrel.GtOrEq{"time": start}).
		Where(squirrel.LtOrEq{"time": end}).
		OrderBy("time ASC")

	if s, err := symbol.Take(); err == nil {
		builder = builder.Where(squirrel.Eq{"symbol": s})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build range query", err)
	}

	return d.queryCandles(query, args...)
}

// ReadLatest implements CandleSource. The inner query selects the newest n
// rows; the outer one restores ascending order for the renderer.
func (d *DuckDBCandleSource) ReadLatest(n int, symbol optional.Option[string]) ([]types.Candle, error) {
	if n <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "candle count must be positive, got %d", n)
	}

	inner := d.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From("candles").
		OrderBy("time DESC").
		Limit(uint64(n))

	if s, err := symbol.Take(); err == nil {
		inner = inner.Where(squirrel.Eq{"symbol": s})
	}

	innerSQL, args, err := inner.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build latest query", err)
	}

	query := fmt.Sprintf("SELECT * FROM (%s) ORDER BY time ASC", innerSQL)

	return d.queryCandles(query, args...)
}

// Symbols implements CandleSource.
func (d *DuckDBCandleSource) Symbols() ([]string, error) {
	rows, err := d.db.Query(`SELECT DISTINCT symbol FROM candles ORDER BY symbol;`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query symbols", err)
	}
	defer rows.Close()

	var symbols []string

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan symbol", err)
		}

		symbols = append(symbols, symbol)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating symbols", err)
	}

	return symbols, nil
}

// Close implements CandleSource.
func (d *DuckDBCandleSource) Close() error {
	return d.db.Close()
}

func (d *DuckDBCandleSource) queryCandles(query string, args ...any) ([]types.Candle, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query candles", err)
	}
	defer rows.Close()

	candles := make([]types.Candle, 0, 256)

	for rows.Next() {
		var (
			ts                             time.Time
			open, high, low, close, volume float64
		)

		if err := rows.Scan(&ts, &open, &high, &low, &close, &volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan candle row", err)
		}

		candles = append(candles, types.Candle{
			Time:   ts,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating candle rows", err)
	}

	return candles, nil
}
