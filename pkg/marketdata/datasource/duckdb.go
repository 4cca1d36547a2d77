package datasource

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/alphaforge-lab/swingtrader/internal/logger"
	"github.com/alphaforge-lab/swingtrader/internal/types"
	"github.com/alphaforge-lab/swingtrader/pkg/errors"
)

type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDataSource creates a DuckDB-backed data source. The path parameter is
// the DuckDB database location, usually ":memory:". Initialize() must be
// called afterwards to attach a Parquet file of daily bars.
func NewDataSource(path string, log *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to open DuckDB connection", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource. It recreates the daily_bars view over the
// given Parquet file.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	_, err := d.db.Exec(`DROP VIEW IF EXISTS daily_bars;`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	// Squirrel doesn't support CREATE VIEW, so raw SQL here
	query := fmt.Sprintf(`
		CREATE VIEW daily_bars AS
		SELECT * FROM read_parquet('%s');
	`, path)

	_, err = d.db.Exec(query)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to create view over %s", path)
	}

	return nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	builder := d.sq.Select("COUNT(*)").From("daily_bars")
	builder = applyDateRange(builder, start, end)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build count query", err)
	}

	var count int
	if err := d.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count daily bars", err)
	}

	return count, nil
}

// ReadBars implements DataSource.
func (d *DuckDBDataSource) ReadBars(symbol optional.Option[string], start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.DailyBar, error) {
	builder := d.sq.Select("symbol", "date", "open", "high", "low", "close", "volume").
		From("daily_bars")

	if symbol.IsSome() {
		builder = builder.Where(squirrel.Eq{"symbol": symbol.Unwrap()})
	}

	builder = applyDateRange(builder, start, end).OrderBy("date ASC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build bar query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query daily bars", err)
	}
	defer rows.Close()

	var bars []types.DailyBar

	for rows.Next() {
		var bar types.DailyBar
		if err := rows.Scan(&bar.Symbol, &bar.Date, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan daily bar", err)
		}

		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating daily bars", err)
	}

	return bars, nil
}

// ReadPriceSeries implements DataSource.
func (d *DuckDBDataSource) ReadPriceSeries(symbol string) (types.PriceSeries, error) {
	query, args, err := d.sq.Select("date", "close").
		From("daily_bars").
		Where(squirrel.Eq{"symbol": symbol}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build price series query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query price series", err)
	}
	defer rows.Close()

	var series types.PriceSeries

	for rows.Next() {
		var point types.PricePoint
		if err := rows.Scan(&point.Date, &point.Close); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan price point", err)
		}

		point.Date = point.Date.UTC()
		series = append(series, point)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating price points", err)
	}

	d.logger.Debug("Loaded price series", zap.String("symbol", symbol), zap.Int("points", len(series)))

	return series, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	if d.db == nil {
		return errors.New(errors.ErrCodeDataSourceClosed, "data source already closed")
	}

	err := d.db.Close()
	d.db = nil

	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to close DuckDB connection", err)
	}

	return nil
}

func applyDateRange(builder squirrel.SelectBuilder, start optional.Option[time.Time], end optional.Option[time.Time]) squirrel.SelectBuilder {
	if start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"date": start.Unwrap()})
	}

	if end.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"date": end.Unwrap()})
	}

	return builder
}
