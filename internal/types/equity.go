package types

import "time"

// DayStatus classifies the action taken (or not taken) on a simulated day.
type DayStatus string

const (
	// DayStatusBearish: flat and the close is at or below the moving average.
	DayStatusBearish DayStatus = "bearish"
	// DayStatusWait: flat in an uptrend with no entry signal.
	DayStatusWait DayStatus = "wait"
	// DayStatusBuy: the entry fired today.
	DayStatusBuy DayStatus = "buy"
	// DayStatusHold: invested with no exit today.
	DayStatusHold DayStatus = "hold"
	// Exit statuses, tagged by the recorded reason.
	DayStatusProfitMax   DayStatus = "profit_max"
	DayStatusStopLoss    DayStatus = "stop_loss"
	DayStatusMaBreak     DayStatus = "ma_break"
	DayStatusTrendBroken DayStatus = "trend_broken"
)

// Code returns the compact numeric bucket used by consuming displays.
// The two trend exits share a bucket, matching the original display contract.
func (s DayStatus) Code() int {
	switch s {
	case DayStatusBearish:
		return 0
	case DayStatusWait:
		return 1
	case DayStatusBuy:
		return 2
	case DayStatusHold:
		return 3
	case DayStatusProfitMax:
		return 4
	case DayStatusStopLoss:
		return 5
	case DayStatusMaBreak, DayStatusTrendBroken:
		return 6
	default:
		return 1
	}
}

// IsExit reports whether the status marks a position close.
func (s DayStatus) IsExit() bool {
	switch s {
	case DayStatusProfitMax, DayStatusStopLoss, DayStatusMaBreak, DayStatusTrendBroken:
		return true
	default:
		return false
	}
}

// EquityPoint is the mark-to-market state at the end of one simulated day.
type EquityPoint struct {
	Date      time.Time `yaml:"date" json:"date"`
	Equity    float64   `yaml:"equity" json:"equity"`
	Close     float64   `yaml:"price" json:"price"`
	MA        float64   `yaml:"ma" json:"ma"`
	DailyOsc  float64   `yaml:"rsi_d" json:"rsi_d"`
	WeeklyOsc float64   `yaml:"rsi_w" json:"rsi_w"`
	Status    DayStatus `yaml:"status" json:"status"`
}
