package types

import (
	"encoding/json"
	"math"
)

// nullableFloat renders an undefined (NaN) reading as JSON null. encoding/json
// rejects NaN outright, and warmed-up rows with flat gain/loss windows
// legitimately carry NaN oscillators.
func nullableFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}

	return &v
}

// MarshalJSON implements json.Marshaler.
func (p EquityPoint) MarshalJSON() ([]byte, error) {
	type alias EquityPoint

	return json.Marshal(struct {
		alias
		DailyOsc  *float64 `json:"rsi_d"`
		WeeklyOsc *float64 `json:"rsi_w"`
	}{
		alias:     alias(p),
		DailyOsc:  nullableFloat(p.DailyOsc),
		WeeklyOsc: nullableFloat(p.WeeklyOsc),
	})
}

// MarshalJSON implements json.Marshaler.
func (d Diagnosis) MarshalJSON() ([]byte, error) {
	type alias Diagnosis

	return json.Marshal(struct {
		alias
		DailyOsc  *float64 `json:"rsi_d"`
		WeeklyOsc *float64 `json:"rsi_w"`
	}{
		alias:     alias(d),
		DailyOsc:  nullableFloat(d.DailyOsc),
		WeeklyOsc: nullableFloat(d.WeeklyOsc),
	})
}
