package backtest

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/alphaforge-lab/swingtrader/internal/types"
)

// Stats is the aggregated performance of one simulated run.
type Stats struct {
	FinalEquity         float64
	CAGRPct             float64
	MaxDrawdownPct      float64
	WinRatePct          float64
	TradeCount          int
	WinCount            int
	BuyHoldFromStart    float64
	BuyHoldFromFirstBuy float64
	RealizedPnL         float64
	BestTradePct        float64
	WorstTradePct       float64
	HoldingTime         types.HoldingTime
}

const daysPerYear = 365.25

// Aggregate computes the performance statistics for an equity curve and
// trade log. TradeCount counts completed (sell) trades only.
func Aggregate(curve []types.EquityPoint, trades []types.Trade, initialCapital float64) Stats {
	stats := Stats{}
	if len(curve) == 0 {
		return stats
	}

	first := curve[0]
	last := curve[len(curve)-1]
	stats.FinalEquity = last.Equity

	stats.CAGRPct = cagrPct(initialCapital, last.Equity, last.Date.Sub(first.Date).Hours()/24)
	stats.MaxDrawdownPct = maxDrawdownPct(curve)

	aggregateTrades(&stats, trades)

	if stats.TradeCount > 0 {
		stats.WinRatePct = float64(stats.WinCount) / float64(stats.TradeCount) * 100
	}

	// Buy-and-hold baselines: all-in at the first simulated close, and all-in
	// at the first actual entry price.
	if first.Close > 0 {
		stats.BuyHoldFromStart = initialCapital / first.Close * last.Close
	}

	for _, t := range trades {
		if t.Side == types.TradeSideBuy {
			if t.Price > 0 {
				stats.BuyHoldFromFirstBuy = initialCapital / t.Price * last.Close
			}

			break
		}
	}

	return stats
}

func cagrPct(initial, final, elapsedDays float64) float64 {
	if elapsedDays <= 0 || initial <= 0 {
		return 0
	}

	years := elapsedDays / daysPerYear

	return (math.Pow(final/initial, 1/years) - 1) * 100
}

func maxDrawdownPct(curve []types.EquityPoint) float64 {
	var (
		runningMax = math.Inf(-1)
		mdd        float64
	)

	for _, p := range curve {
		if p.Equity > runningMax {
			runningMax = p.Equity
		}

		if runningMax > 0 {
			drawdown := (p.Equity - runningMax) / runningMax
			if drawdown < mdd {
				mdd = drawdown
			}
		}
	}

	return mdd * 100
}

// aggregateTrades pairs each sell with its preceding buy and accumulates the
// realized trade statistics. Realized PnL is summed in decimals the way the
// position ledger does.
func aggregateTrades(stats *Stats, trades []types.Trade) {
	realized := decimal.Zero

	var (
		lastBuy      types.Trade
		haveBuy      bool
		totalHolding int
	)

	for _, t := range trades {
		switch t.Side {
		case types.TradeSideBuy:
			lastBuy = t
			haveBuy = true
		case types.TradeSideSell:
			stats.TradeCount++
			if t.IsWin() {
				stats.WinCount++
			}

			if haveBuy {
				cost := decimal.NewFromFloat(lastBuy.Shares).Mul(decimal.NewFromFloat(lastBuy.Price))
				proceeds := decimal.NewFromFloat(t.Balance)
				realized = realized.Add(proceeds.Sub(cost))
				haveBuy = false
			}

			totalHolding += t.HoldingDays
			if stats.TradeCount == 1 {
				stats.BestTradePct = t.ProfitPct
				stats.WorstTradePct = t.ProfitPct
				stats.HoldingTime.Min = t.HoldingDays
				stats.HoldingTime.Max = t.HoldingDays
			} else {
				stats.BestTradePct = math.Max(stats.BestTradePct, t.ProfitPct)
				stats.WorstTradePct = math.Min(stats.WorstTradePct, t.ProfitPct)
				if t.HoldingDays < stats.HoldingTime.Min {
					stats.HoldingTime.Min = t.HoldingDays
				}

				if t.HoldingDays > stats.HoldingTime.Max {
					stats.HoldingTime.Max = t.HoldingDays
				}
			}
		}
	}

	if stats.TradeCount > 0 {
		stats.HoldingTime.Avg = totalHolding / stats.TradeCount
	}

	stats.RealizedPnL, _ = realized.Float64()
}
