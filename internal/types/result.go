package types

import (
	"fmt"
	"os"
	"time"

	"github.com/moznion/go-optional"
	"gopkg.in/yaml.v3"
)

// DiagnosisStatus is the human-facing classification of "today".
type DiagnosisStatus string

const (
	DiagnosisStatusBearish    DiagnosisStatus = "Bearish / stay out"
	DiagnosisStatusTrendBreak DiagnosisStatus = "Sell signal (trend break)"
	DiagnosisStatusProfitMax  DiagnosisStatus = "Take profit (overheated)"
	DiagnosisStatusStrongBuy  DiagnosisStatus = "Strong buy"
	DiagnosisStatusHold       DiagnosisStatus = "Keep holding"
	DiagnosisStatusWait       DiagnosisStatus = "Wait"
)

// DiagnosisColor is the display color tag attached to a diagnosis status.
type DiagnosisColor string

const (
	DiagnosisColorRed    DiagnosisColor = "red"
	DiagnosisColorOrange DiagnosisColor = "orange"
	DiagnosisColorGold   DiagnosisColor = "gold"
	DiagnosisColorGreen  DiagnosisColor = "green"
	DiagnosisColorBlue   DiagnosisColor = "blue"
	DiagnosisColorGray   DiagnosisColor = "gray"
)

// Diagnosis classifies the most recent bar using the same boolean conditions
// as the simulator's entry/exit logic. Presentation only; it never feeds back
// into the simulation.
type Diagnosis struct {
	Price     float64 `yaml:"price" json:"price"`
	MA        float64 `yaml:"ma" json:"ma"`
	WeeklyOsc float64 `yaml:"rsi_w" json:"rsi_w"`
	DailyOsc  float64 `yaml:"rsi_d" json:"rsi_d"`

	Status  DiagnosisStatus `yaml:"status" json:"status"`
	Color   DiagnosisColor  `yaml:"status_color" json:"status_color"`
	Message string          `yaml:"message" json:"message"`

	// Condition flags for icon rendering.
	IsBull         bool `yaml:"is_bull" json:"is_bull"`
	IsWeeklySafe   bool `yaml:"is_rsi_w_safe" json:"is_rsi_w_safe"`
	IsDailyCross   bool `yaml:"is_rsi_d_cross" json:"is_rsi_d_cross"`
	CondBuy        bool `yaml:"cond_buy" json:"cond_buy"`
	CondTrendBreak bool `yaml:"cond_trend_break" json:"cond_trend_break"`
	CondProfitMax  bool `yaml:"cond_profit_max" json:"cond_profit_max"`
}

// HoldingTime summarizes the holding periods of completed trades, in calendar days.
type HoldingTime struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
	Avg int `yaml:"avg" json:"avg"`
}

// Result is the complete outcome of one strategy run.
type Result struct {
	// ID uniquely identifies this run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	Symbol    string    `yaml:"symbol" json:"symbol"`

	FirstDate time.Time `yaml:"start_date" json:"start_date"`
	LastDate  time.Time `yaml:"last_date" json:"last_date"`

	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital"`
	FinalEquity    float64 `yaml:"final_balance" json:"final_balance"`
	// Buy-and-hold baselines: all-in at the first simulated close, and all-in
	// at the strategy's first actual entry price. Zero when the anchor price
	// is absent.
	BuyHoldFromStart    float64 `yaml:"bnh_start" json:"bnh_start"`
	BuyHoldFromFirstBuy float64 `yaml:"bnh_first_buy" json:"bnh_first_buy"`

	CAGRPct        float64 `yaml:"cagr" json:"cagr"`
	MaxDrawdownPct float64 `yaml:"mdd" json:"mdd"`
	WinRatePct     float64 `yaml:"win_rate" json:"win_rate"`
	TradeCount     int     `yaml:"total_trades" json:"total_trades"`
	WinCount       int     `yaml:"win_count" json:"win_count"`

	RealizedPnL   float64     `yaml:"realized_pnl" json:"realized_pnl"`
	BestTradePct  float64     `yaml:"best_trade_pct" json:"best_trade_pct"`
	WorstTradePct float64     `yaml:"worst_trade_pct" json:"worst_trade_pct"`
	HoldingTime   HoldingTime `yaml:"holding_time" json:"holding_time"`

	Diagnosis Diagnosis `yaml:"diagnosis" json:"diagnosis"`

	// Trades is chronological; callers that want newest-first use TradesNewestFirst.
	Trades      []Trade       `yaml:"trades" json:"trades"`
	EquityCurve []EquityPoint `yaml:"equity_curve" json:"equity_curve"`

	// OpenPosition is the entry trade still open at the end of the simulation,
	// if the run ended invested.
	OpenPosition optional.Option[Trade] `yaml:"-" json:"-"`
}

// TradesNewestFirst returns a reversed copy of the trade log.
func (r *Result) TradesNewestFirst() []Trade {
	out := make([]Trade, len(r.Trades))
	for i, t := range r.Trades {
		out[len(r.Trades)-1-i] = t
	}

	return out
}

// EndedInvested reports whether the simulation ended holding a position.
func (r *Result) EndedInvested() bool {
	return r.OpenPosition.IsSome()
}

// WriteResult writes the result as a YAML report.
func WriteResult(path string, result *Result) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result to file: %w", err)
	}

	return nil
}
