// Package datasource loads persisted daily bars back into price series
// consumable by the backtest engine.
package datasource

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/alphaforge-lab/swingtrader/internal/types"
)

// DataSource reads daily bars from a persisted store.
type DataSource interface {
	// Initialize points the data source at the given Parquet file.
	Initialize(path string) error
	// Count returns the number of bars within the optional date range.
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// ReadBars returns the bars within the optional date range in ascending
	// date order, optionally filtered by symbol.
	ReadBars(symbol optional.Option[string], start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.DailyBar, error)
	// ReadPriceSeries returns the close series for the symbol in ascending
	// date order.
	ReadPriceSeries(symbol string) (types.PriceSeries, error)
	// Close releases the underlying database resources.
	Close() error
}
