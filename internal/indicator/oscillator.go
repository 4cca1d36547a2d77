package indicator

import (
	"math"

	"github.com/alphaforge-lab/swingtrader/pkg/errors"
)

// Oscillator computes the 0-100 bounded momentum oscillator used for both the
// daily and weekly signals: trailing simple means of gains and losses over
// period changes, mapped through 100 - 100/(1+rs).
//
// The first defined entry is at index period, since the window needs period
// day-over-day changes. With losses averaging zero and gains positive the
// oscillator saturates at 100; when both means are zero the reading is NaN,
// which downstream threshold comparisons treat as "no signal".
func Oscillator(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "oscillator period must be a positive integer, got %d", period)
	}

	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}

	if len(values) <= period {
		return out, nil
	}

	gains := make([]float64, len(values))
	losses := make([]float64, len(values))

	for i := 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	for i := period; i < len(values); i++ {
		var gainSum, lossSum float64
		for j := i - period + 1; j <= i; j++ {
			gainSum += gains[j]
			lossSum += losses[j]
		}

		gainMean := gainSum / float64(period)
		lossMean := lossSum / float64(period)

		switch {
		case lossMean == 0 && gainMean == 0:
			// 0/0 ratio: undefined reading.
			out[i] = math.NaN()
		case lossMean == 0:
			out[i] = 100
		default:
			rs := gainMean / lossMean
			out[i] = 100 - 100/(1+rs)
		}
	}

	return out, nil
}
