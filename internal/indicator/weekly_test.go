package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphaforge-lab/swingtrader/internal/testutil"
	"github.com/alphaforge-lab/swingtrader/internal/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekEnd(t *testing.T) {
	// 2024-01-01 is a Monday; its week closes on Friday the 5th.
	assert.Equal(t, date(2024, 1, 5), WeekEnd(date(2024, 1, 1)))
	// A Friday closes its own week.
	assert.Equal(t, date(2024, 1, 5), WeekEnd(date(2024, 1, 5)))
	// Saturday and Sunday belong to the following week.
	assert.Equal(t, date(2024, 1, 12), WeekEnd(date(2024, 1, 6)))
	assert.Equal(t, date(2024, 1, 12), WeekEnd(date(2024, 1, 7)))
}

// fourWeekSeries builds 20 weekdays starting Monday 2024-01-01 whose weekly
// closes (Fridays Jan 5, 12, 19, 26) are the given values.
func fourWeekSeries(fridayCloses [4]float64) types.PriceSeries {
	return testutil.GenerateSeries(date(2024, 1, 1), 20, func(i int) float64 {
		if (i+1)%5 == 0 {
			return fridayCloses[(i+1)/5-1]
		}

		return 10
	})
}

func TestWeeklyOscillatorForwardFill(t *testing.T) {
	series := fourWeekSeries([4]float64{10, 12, 11, 14})

	values, warm, err := WeeklyOscillator(series, 2)
	require.NoError(t, err)
	require.Len(t, values, 20)

	// Warm-up needs two weekly changes, so the first defined weekly value is
	// labeled at the third Friday (Jan 19, daily index 14).
	for i := 0; i < 14; i++ {
		assert.False(t, warm[i], "index %d should not be warm", i)
	}

	for i := 14; i < 20; i++ {
		assert.True(t, warm[i], "index %d should be warm", i)
	}

	// Weekly changes [+2, -1]: gain mean 1, loss mean 0.5, rs 2.
	want3rd := 100 - 100/(1+2.0)
	// Weekly changes [-1, +3]: gain mean 1.5, loss mean 0.5, rs 3.
	want4th := 100 - 100/(1+3.0)

	// The third week's value appears on its Friday and carries through the
	// following week until superseded on the next Friday.
	assert.InDelta(t, want3rd, values[14], 1e-9) // Fri Jan 19
	for i := 15; i < 19; i++ {                   // Mon Jan 22 .. Thu Jan 25
		assert.InDelta(t, want3rd, values[i], 1e-9, "index %d", i)
	}
	assert.InDelta(t, want4th, values[19], 1e-9) // Fri Jan 26
}

func TestWeeklyOscillatorNoLookAhead(t *testing.T) {
	series := fourWeekSeries([4]float64{10, 12, 11, 14})

	values, _, err := WeeklyOscillator(series, 2)
	require.NoError(t, err)

	// Mid-week days of the third week must not see the value of the week
	// still in progress.
	for i := 10; i < 14; i++ { // Mon Jan 15 .. Thu Jan 18
		assert.True(t, math.IsNaN(values[i]), "index %d leaked an unfinished week", i)
	}
}

func TestWeeklyOscillatorHolidayFriday(t *testing.T) {
	full := fourWeekSeries([4]float64{10, 12, 11, 14})

	// Remove Friday Jan 19: that week's value is never labeled onto a trading
	// day, so the prior state carries until the next Friday.
	series := make(types.PriceSeries, 0, len(full)-1)
	for _, p := range full {
		if p.Date.Equal(date(2024, 1, 19)) {
			continue
		}

		series = append(series, p)
	}

	values, warm, err := WeeklyOscillator(series, 2)
	require.NoError(t, err)

	lastIdx := len(series) - 1
	require.Equal(t, date(2024, 1, 26), series[lastIdx].Date)

	for i := 0; i < lastIdx; i++ {
		assert.False(t, warm[i], "index %d should not be warm without its Friday", i)
	}

	assert.True(t, warm[lastIdx])
	assert.False(t, math.IsNaN(values[lastIdx]))
}
