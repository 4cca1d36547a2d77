package types

import (
	"time"

	"github.com/alphaforge-lab/swingtrader/pkg/errors"
)

// PricePoint is a single daily closing price.
type PricePoint struct {
	Date  time.Time `yaml:"date" json:"date"`
	Close float64   `yaml:"close" json:"close"`
}

// PriceSeries is an ordered sequence of daily closes with strictly increasing
// dates. The trading-day calendar is whatever the data source provides; gaps
// are allowed. A series is immutable once loaded for a run.
type PriceSeries []PricePoint

// DailyBar is a full OHLCV bar as stored by the market data layer. The
// strategy core only consumes the close; the richer shape is kept so the
// candle store remains reusable.
type DailyBar struct {
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Closes returns the close values of the series in order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}

	return closes
}

// Validate checks that dates are strictly increasing.
func (s PriceSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Date.After(s[i-1].Date) {
			return errors.Newf(errors.ErrCodeInvalidPriceSeries,
				"price series dates must be strictly increasing: %s followed by %s",
				s[i-1].Date.Format(DateLayout), s[i].Date.Format(DateLayout))
		}
	}

	return nil
}

// Since returns the sub-series with dates on or after from.
// The underlying points are shared, not copied.
func (s PriceSeries) Since(from time.Time) PriceSeries {
	for i, p := range s {
		if !p.Date.Before(from) {
			return s[i:]
		}
	}

	return nil
}

// DateLayout is the calendar date format used throughout the project.
const DateLayout = "2006-01-02"
