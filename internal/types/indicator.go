package types

import "time"

// IndicatorPoint is one daily row of the indicator-augmented series.
// DailyOsc and WeeklyOsc may be NaN when the gain/loss ratio is undefined
// (flat window); a NaN reading never satisfies a threshold comparison, so it
// acts as "no signal" downstream.
type IndicatorPoint struct {
	Date      time.Time `json:"date"`
	Close     float64   `json:"close"`
	MA        float64   `json:"ma"`
	DailyOsc  float64   `json:"daily_osc"`
	WeeklyOsc float64   `json:"weekly_osc"`
}

// IndicatorSeries is the indicator-augmented price series. Rows before the
// longest warm-up window have already been dropped; the series starts at the
// first date where the moving average, daily oscillator, and weekly
// oscillator are all structurally defined.
type IndicatorSeries []IndicatorPoint

// Since returns the sub-series with dates on or after from.
func (s IndicatorSeries) Since(from time.Time) IndicatorSeries {
	for i, p := range s {
		if !p.Date.Before(from) {
			return s[i:]
		}
	}

	return nil
}
