package indicator

import (
	"github.com/alphaforge-lab/swingtrader/internal/types"
	"github.com/alphaforge-lab/swingtrader/pkg/errors"
)

// Build computes the full indicator-augmented series for the price series and
// drops the rows that lack full warm-up. The usable series starts at the
// first day where the moving average, the daily oscillator, and a completed
// weekly oscillator window are all structurally available; NaN readings past
// that point (flat gain/loss windows) are retained as "no signal" rows.
func Build(prices types.PriceSeries, params types.Parameters) (types.IndicatorSeries, error) {
	closes := prices.Closes()

	ma, err := SMA(closes, params.MAPeriod)
	if err != nil {
		return nil, err
	}

	daily, err := Oscillator(closes, params.DailyPeriod)
	if err != nil {
		return nil, err
	}

	weekly, weeklyWarm, err := WeeklyOscillator(prices, params.WeeklyPeriod)
	if err != nil {
		return nil, err
	}

	start := -1

	for i := range prices {
		if i >= params.MAPeriod-1 && i >= params.DailyPeriod && weeklyWarm[i] {
			start = i
			break
		}
	}

	if start < 0 {
		return nil, errors.Wrapf(errors.ErrCodeInsufficientHistory,
			errors.NewInsufficientHistoryErrorf(params.MAPeriod, len(prices), "",
				"no rows survive indicator warm-up: %d price rows for ma_period=%d, w_period=%d weeks",
				len(prices), params.MAPeriod, params.WeeklyPeriod),
			"insufficient price history")
	}

	series := make(types.IndicatorSeries, 0, len(prices)-start)
	for i := start; i < len(prices); i++ {
		series = append(series, types.IndicatorPoint{
			Date:      prices[i].Date,
			Close:     prices[i].Close,
			MA:        ma[i],
			DailyOsc:  daily[i],
			WeeklyOsc: weekly[i],
		})
	}

	return series, nil
}
