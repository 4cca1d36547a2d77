package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/alphaforge-lab/swingtrader/pkg/errors"
)

// Parameters is the immutable configuration for one strategy run. There is no
// process-wide default state; every call receives an explicit value.
type Parameters struct {
	// MAPeriod is the trailing window of the long moving average, in trading days.
	MAPeriod int `yaml:"ma_period" json:"ma_period" jsonschema:"title=MA Period,description=Trailing window of the long moving average in trading days" validate:"required,gt=0"`
	// DailyPeriod is the trailing window of the daily oscillator, in trading days.
	DailyPeriod int `yaml:"d_period" json:"d_period" jsonschema:"title=Daily Oscillator Period" validate:"required,gt=0"`
	// WeeklyPeriod is the trailing window of the weekly oscillator, in weeks.
	WeeklyPeriod int `yaml:"w_period" json:"w_period" jsonschema:"title=Weekly Oscillator Period" validate:"required,gt=0"`
	// WeeklyBuyMax: entries only fire while the weekly oscillator is below this.
	WeeklyBuyMax float64 `yaml:"w_buy_max" json:"w_buy_max" jsonschema:"title=Weekly Buy Ceiling" validate:"gte=0,lte=100"`
	// DailyBuyCross: entries fire on an upward cross of the daily oscillator through this.
	DailyBuyCross float64 `yaml:"d_buy_cross" json:"d_buy_cross" jsonschema:"title=Daily Buy Cross" validate:"gte=0,lte=100"`
	// WeeklySellCross: a downward cross of the weekly oscillator through this exits.
	WeeklySellCross float64 `yaml:"w_sell_cross" json:"w_sell_cross" jsonschema:"title=Weekly Sell Cross" validate:"gte=0,lte=100"`
	// WeeklyProfitMax: the weekly oscillator reaching this takes profit.
	WeeklyProfitMax float64 `yaml:"w_profit_max" json:"w_profit_max" jsonschema:"title=Weekly Profit Ceiling" validate:"gte=0,lte=100"`
	// StopLoss is the fractional loss from the entry price that forces an exit.
	StopLoss float64 `yaml:"stop_loss" json:"stop_loss" jsonschema:"title=Stop Loss Fraction" validate:"gt=0,lt=1"`
	// StartDate is the first simulated calendar date, formatted as 2006-01-02.
	// Price history must extend far enough before it to satisfy warm-up.
	StartDate string `yaml:"start_date" json:"start_date" jsonschema:"title=Start Date,format=date" validate:"required"`
}

// DefaultParameters returns the tuned default configuration.
func DefaultParameters() Parameters {
	return Parameters{
		MAPeriod:        192,
		DailyPeriod:     3,
		WeeklyPeriod:    23,
		WeeklyBuyMax:    63,
		DailyBuyCross:   28,
		WeeklySellCross: 68,
		WeeklyProfitMax: 83,
		StopLoss:        0.18,
		StartDate:       "2010-02-01",
	}
}

// Validate checks field ranges and the start date format. It never panics on
// malformed values; all violations surface as ErrCodeInvalidParameters.
func (p Parameters) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameters, "invalid strategy parameters", err)
	}

	if _, err := p.StartTime(); err != nil {
		return err
	}

	return nil
}

// StartTime parses StartDate into a UTC calendar date.
func (p Parameters) StartTime() (time.Time, error) {
	t, err := time.Parse(DateLayout, p.StartDate)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrCodeInvalidStartDate, err,
			"start_date %q is not a valid %s date", p.StartDate, DateLayout)
	}

	return t, nil
}

// ParseParameters parses a YAML document into Parameters and validates it.
func ParseParameters(raw []byte) (Parameters, error) {
	params := DefaultParameters()
	if err := yaml.Unmarshal(raw, &params); err != nil {
		return Parameters{}, errors.Wrap(errors.ErrCodeInvalidParameters, "failed to parse parameters", err)
	}

	if err := params.Validate(); err != nil {
		return Parameters{}, err
	}

	return params, nil
}
