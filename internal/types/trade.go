package types

import "time"

// TradeSide distinguishes entries from exits.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "Buy"
	TradeSideSell TradeSide = "Sell"
)

// ExitReason tags why a position was closed. When several exit conditions are
// true on the same day the recorded reason follows the fixed priority
// ProfitMax > StopLoss > MaBreak > TrendBroken; the priority only decides the
// label, any true condition exits.
type ExitReason string

const (
	// ExitReasonProfitMax: the weekly oscillator reached the profit ceiling.
	ExitReasonProfitMax ExitReason = "Profit Max"
	// ExitReasonStopLoss: the close fell below the stop-loss fraction of the entry price.
	ExitReasonStopLoss ExitReason = "Stop Loss"
	// ExitReasonMaBreak: the close fell to or below the long moving average.
	ExitReasonMaBreak ExitReason = "MA Break"
	// ExitReasonTrendBroken: the weekly oscillator crossed down through the sell level.
	ExitReasonTrendBroken ExitReason = "Trend Broken"
)

// Trade is an immutable record of one entry or one exit.
type Trade struct {
	Side  TradeSide `yaml:"type" json:"type"`
	Date  time.Time `yaml:"date" json:"date"`
	Price float64   `yaml:"price" json:"price"`
	// Shares is the position size opened by a buy.
	Shares float64 `yaml:"size,omitempty" json:"size,omitempty"`
	// The fields below are set on sells only.
	Reason      ExitReason `yaml:"reason,omitempty" json:"reason,omitempty"`
	HoldingDays int        `yaml:"holding_days,omitempty" json:"holding_days,omitempty"`
	ProfitPct   float64    `yaml:"profit_pct,omitempty" json:"profit_pct,omitempty"`
	// Balance is the cash balance after the exit.
	Balance float64 `yaml:"balance,omitempty" json:"balance,omitempty"`
}

// IsWin reports whether a completed exit closed above its entry price.
func (t Trade) IsWin() bool {
	return t.Side == TradeSideSell && t.ProfitPct > 0
}
