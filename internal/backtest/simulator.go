// Package backtest runs the day-by-day strategy simulation and aggregates
// its performance. The whole package is a pure, single-pass function of the
// indicator series and parameters: no I/O, no shared state between runs.
package backtest

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/alphaforge-lab/swingtrader/internal/types"
)

// Simulation is the raw output of one simulated run.
type Simulation struct {
	// Curve has exactly one point per simulated day.
	Curve []types.EquityPoint
	// Trades is chronological and strictly alternates Buy, Sell, Buy, ...
	Trades []types.Trade
	// OpenEntry is the buy still open at the end of the range, if any.
	OpenEntry optional.Option[types.Trade]
}

// EndedInvested reports whether the run finished holding a position.
func (s *Simulation) EndedInvested() bool {
	return s.OpenEntry.IsSome()
}

// Simulate walks the indicator series one day at a time, maintaining the
// single-position state machine.
//
// Signals are evaluated from yesterday's and today's oscillator readings,
// never a single day in isolation. The first day has no prior reading: it is
// emitted with equity at the initial capital, zeroed oscillator fields, and
// no signal evaluation. Entries fire only in an uptrend (close above the
// moving average) while flat; exits fire when any exit condition holds, and
// the recorded reason follows the ProfitMax > StopLoss > MaBreak >
// TrendBroken priority. NaN oscillator readings satisfy no condition.
//
// The position is fully-invested-or-fully-cash: at every day's end exactly
// one of the cash balance and the share count is nonzero.
func Simulate(series types.IndicatorSeries, params types.Parameters, initialCapital float64) Simulation {
	sim := Simulation{
		Curve:     make([]types.EquityPoint, 0, len(series)),
		Trades:    nil,
		OpenEntry: nil,
	}

	balance := initialCapital

	var (
		invested   bool
		shares     float64
		entryPrice float64
		entryDate  time.Time
	)

	for i, row := range series {
		if i == 0 {
			sim.Curve = append(sim.Curve, types.EquityPoint{
				Date:      row.Date,
				Equity:    balance,
				Close:     row.Close,
				MA:        row.MA,
				DailyOsc:  0,
				WeeklyOsc: 0,
				Status:    types.DayStatusWait,
			})

			continue
		}

		prev := series[i-1]
		uptrend := row.Close > row.MA

		status := types.DayStatusWait

		switch {
		case invested:
			status = types.DayStatusHold
		case !uptrend:
			status = types.DayStatusBearish
		}

		if !invested {
			crossedUp := prev.DailyOsc < params.DailyBuyCross && row.DailyOsc >= params.DailyBuyCross
			if uptrend && row.WeeklyOsc < params.WeeklyBuyMax && crossedUp {
				shares = balance / row.Close
				balance = 0
				entryPrice = row.Close
				entryDate = row.Date
				invested = true
				status = types.DayStatusBuy

				buy := types.Trade{
					Side:   types.TradeSideBuy,
					Date:   row.Date,
					Price:  row.Close,
					Shares: shares,
				}
				sim.Trades = append(sim.Trades, buy)
			}
		} else {
			condProfit := row.WeeklyOsc >= params.WeeklyProfitMax
			condStop := (row.Close-entryPrice)/entryPrice < -params.StopLoss
			condMa := !uptrend
			condTrend := prev.WeeklyOsc > params.WeeklySellCross && row.WeeklyOsc <= params.WeeklySellCross

			if condProfit || condStop || condMa || condTrend {
				var reason types.ExitReason

				switch {
				case condProfit:
					reason = types.ExitReasonProfitMax
					status = types.DayStatusProfitMax
				case condStop:
					reason = types.ExitReasonStopLoss
					status = types.DayStatusStopLoss
				case condMa:
					reason = types.ExitReasonMaBreak
					status = types.DayStatusMaBreak
				default:
					reason = types.ExitReasonTrendBroken
					status = types.DayStatusTrendBroken
				}

				balance = shares * row.Close
				shares = 0
				invested = false

				holdingDays := int(row.Date.Sub(entryDate).Hours() / 24)
				profitPct := (row.Close - entryPrice) / entryPrice * 100

				sim.Trades = append(sim.Trades, types.Trade{
					Side:        types.TradeSideSell,
					Date:        row.Date,
					Price:       row.Close,
					Reason:      reason,
					HoldingDays: holdingDays,
					ProfitPct:   profitPct,
					Balance:     balance,
				})
			}
		}

		equity := balance
		if invested {
			equity = shares * row.Close
		}

		sim.Curve = append(sim.Curve, types.EquityPoint{
			Date:      row.Date,
			Equity:    equity,
			Close:     row.Close,
			MA:        row.MA,
			DailyOsc:  row.DailyOsc,
			WeeklyOsc: row.WeeklyOsc,
			Status:    status,
		})
	}

	if invested {
		sim.OpenEntry = optional.Some(sim.Trades[len(sim.Trades)-1])
	}

	return sim
}
