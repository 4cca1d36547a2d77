package indicator

import (
	"math"
	"time"

	"github.com/alphaforge-lab/swingtrader/internal/types"
	"github.com/alphaforge-lab/swingtrader/pkg/errors"
)

// WeekEnd returns the Friday that closes the week containing d
// (weeks run Saturday through Friday).
func WeekEnd(d time.Time) time.Time {
	offset := (int(time.Friday) - int(d.Weekday()) + 7) % 7

	return d.AddDate(0, 0, offset)
}

// WeeklyOscillator resamples the price series to one close per week (the last
// close on or before each Friday boundary), computes the oscillator over
// period weeks on the resampled closes, and broadcasts each weekly value
// forward onto the daily dates.
//
// The broadcast is an explicit last-known-value carry keyed on the Friday
// label: a daily row picks up a weekly value only when its own date is that
// week's labeled Friday, and carries it until superseded. A day therefore
// never sees a value computed from a week ending after it, and weeks whose
// labeled Friday is not a trading day contribute nothing (the prior value
// carries), matching the resample/forward-fill behavior this strategy was
// tuned against.
//
// It returns the per-day values plus per-day flags marking where the weekly
// warm-up window is structurally satisfied. A warmed row can still hold NaN
// when the gain/loss ratio is 0/0.
func WeeklyOscillator(series types.PriceSeries, period int) ([]float64, []bool, error) {
	if period <= 0 {
		return nil, nil, errors.Newf(errors.ErrCodeInvalidPeriod, "weekly oscillator period must be a positive integer, got %d", period)
	}

	// Resample to weekly closes. The series is date-ordered, so each bucket's
	// last write wins.
	var (
		labels  []string
		closes  []float64
		weekIdx = make(map[string]int, len(series)/5+1)
	)

	for _, p := range series {
		label := WeekEnd(p.Date).Format(types.DateLayout)
		if idx, ok := weekIdx[label]; ok {
			closes[idx] = p.Close
		} else {
			weekIdx[label] = len(closes)
			labels = append(labels, label)
			closes = append(closes, p.Close)
		}
	}

	weekly, err := Oscillator(closes, period)
	if err != nil {
		return nil, nil, err
	}

	values := make([]float64, len(series))
	warm := make([]bool, len(series))
	last := math.NaN()
	lastWarm := false

	for i, p := range series {
		if idx, ok := weekIdx[p.Date.Format(types.DateLayout)]; ok {
			// This day is itself a labeled Friday: its own week has closed.
			last = weekly[idx]
			if idx >= period {
				lastWarm = true
			}
		}

		values[i] = last
		warm[i] = lastWarm
	}

	return values, warm, nil
}
