// Package testutil generates synthetic daily price series for tests.
package testutil

import (
	"time"

	"github.com/alphaforge-lab/swingtrader/internal/types"
)

// GenerateSeries produces count weekday-only price points starting on or
// after start, with the close of the i-th point given by priceAt(i).
// Weekends are skipped so weekly resampling sees realistic trading calendars.
func GenerateSeries(start time.Time, count int, priceAt func(i int) float64) types.PriceSeries {
	series := make(types.PriceSeries, 0, count)
	date := start

	for len(series) < count {
		if date.Weekday() != time.Saturday && date.Weekday() != time.Sunday {
			series = append(series, types.PricePoint{
				Date:  date,
				Close: priceAt(len(series)),
			})
		}

		date = date.AddDate(0, 0, 1)
	}

	return series
}

// Constant returns a price function that always yields v.
func Constant(v float64) func(int) float64 {
	return func(int) float64 { return v }
}

// Linear returns a price function starting at base and changing by step per day.
func Linear(base, step float64) func(int) float64 {
	return func(i int) float64 { return base + step*float64(i) }
}
