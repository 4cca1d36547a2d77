// Package indicator derives the moving average and momentum oscillators the
// strategy trades on. All functions are pure: the output depends only on the
// input series and periods, with no hidden state. Values inside warm-up
// windows are NaN.
package indicator

import (
	"math"

	"github.com/alphaforge-lab/swingtrader/pkg/errors"
)

// SMA returns the trailing simple moving average of values over period.
// The first period-1 entries are NaN.
func SMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "sma period must be a positive integer, got %d", period)
	}

	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}

	var sum float64

	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}

		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}

	return out, nil
}
