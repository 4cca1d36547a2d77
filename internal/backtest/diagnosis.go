package backtest

import (
	"github.com/alphaforge-lab/swingtrader/internal/types"
)

// Diagnose classifies "today" from the two most recent indicator rows using
// the same boolean conditions the simulator trades on.
//
// Resolution priority: a downtrend overrides everything, then the weekly
// trend-break exit, then the profit-max exit, then a fresh entry signal, then
// "keep holding" when the simulation ended invested, and finally a neutral
// wait. The classification is presentation only.
func Diagnose(prev, curr types.IndicatorPoint, params types.Parameters, endedInvested bool) types.Diagnosis {
	diag := types.Diagnosis{
		Price:     curr.Close,
		MA:        curr.MA,
		WeeklyOsc: curr.WeeklyOsc,
		DailyOsc:  curr.DailyOsc,
	}

	diag.IsBull = curr.Close > curr.MA
	diag.IsWeeklySafe = curr.WeeklyOsc < params.WeeklyBuyMax
	diag.IsDailyCross = prev.DailyOsc < params.DailyBuyCross && curr.DailyOsc >= params.DailyBuyCross
	diag.CondBuy = diag.IsWeeklySafe && diag.IsDailyCross
	diag.CondTrendBreak = prev.WeeklyOsc > params.WeeklySellCross && curr.WeeklyOsc <= params.WeeklySellCross
	diag.CondProfitMax = curr.WeeklyOsc >= params.WeeklyProfitMax

	switch {
	case !diag.IsBull:
		diag.Status = types.DiagnosisStatusBearish
		diag.Color = types.DiagnosisColorRed
		diag.Message = "Price is below the long moving average. Stay fully in cash."
	case diag.CondTrendBreak:
		diag.Status = types.DiagnosisStatusTrendBreak
		diag.Color = types.DiagnosisColorOrange
		diag.Message = "Weekly momentum broke down. Reduce risk."
	case diag.CondProfitMax:
		diag.Status = types.DiagnosisStatusProfitMax
		diag.Color = types.DiagnosisColorGold
		diag.Message = "Weekly momentum is overheated. Consider taking profit."
	case diag.CondBuy:
		diag.Status = types.DiagnosisStatusStrongBuy
		diag.Color = types.DiagnosisColorGreen
		diag.Message = "Pullback rebound in an uptrend. Entry conditions met."
	case endedInvested:
		diag.Status = types.DiagnosisStatusHold
		diag.Color = types.DiagnosisColorBlue
		diag.Message = "Uptrend intact. Keep holding."
	default:
		diag.Status = types.DiagnosisStatusWait
		diag.Color = types.DiagnosisColorGray
		diag.Message = "Nothing actionable today."
	}

	return diag
}
