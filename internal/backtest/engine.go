package backtest

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alphaforge-lab/swingtrader/internal/indicator"
	"github.com/alphaforge-lab/swingtrader/internal/logger"
	"github.com/alphaforge-lab/swingtrader/internal/types"
	"github.com/alphaforge-lab/swingtrader/pkg/errors"
)

// Engine evaluates the strategy over a pre-loaded price series. It holds no
// state between runs; concurrent Run calls on independent inputs are safe.
type Engine struct {
	config Config
	log    *logger.Logger
}

// NewEngine creates an engine with the given configuration.
func NewEngine(config Config, log *logger.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Engine{
		config: config,
		log:    log,
	}, nil
}

// Run evaluates the strategy for one symbol. The price series must span the
// symbol's history from before the warm-up window through "today"; fetching
// it is the caller's job.
//
// On failure the returned error carries one of the typed codes
// (InvalidParameters, DataUnavailable, InsufficientHistory) and no partial
// result is produced.
func (e *Engine) Run(symbol string, prices types.PriceSeries, params types.Parameters) (*types.Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if len(prices) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataUnavailable, "no price data for symbol %s", symbol)
	}

	if err := prices.Validate(); err != nil {
		return nil, err
	}

	series, err := indicator.Build(prices, params)
	if err != nil {
		return nil, err
	}

	// The diagnosis needs yesterday's and today's readings.
	if len(series) < 2 {
		return nil, errors.Wrapf(errors.ErrCodeInsufficientHistory,
			errors.NewInsufficientHistoryErrorf(2, len(series), symbol,
				"only %d usable rows after indicator warm-up", len(series)),
			"insufficient history for %s", symbol)
	}

	start, err := params.StartTime()
	if err != nil {
		return nil, err
	}

	simRange := series.Since(start)
	if len(simRange) == 0 {
		return nil, errors.Newf(errors.ErrCodeEmptyRange,
			"no usable rows on or after start date %s for %s", params.StartDate, symbol)
	}

	sim := Simulate(simRange, params, e.config.InitialCapital)
	stats := Aggregate(sim.Curve, sim.Trades, e.config.InitialCapital)
	diag := Diagnose(series[len(series)-2], series[len(series)-1], params, sim.EndedInvested())

	result := &types.Result{
		ID:                  uuid.New().String(),
		Timestamp:           time.Now().UTC(),
		Symbol:              symbol,
		FirstDate:           sim.Curve[0].Date,
		LastDate:            sim.Curve[len(sim.Curve)-1].Date,
		InitialCapital:      e.config.InitialCapital,
		FinalEquity:         stats.FinalEquity,
		BuyHoldFromStart:    stats.BuyHoldFromStart,
		BuyHoldFromFirstBuy: stats.BuyHoldFromFirstBuy,
		CAGRPct:             stats.CAGRPct,
		MaxDrawdownPct:      stats.MaxDrawdownPct,
		WinRatePct:          stats.WinRatePct,
		TradeCount:          stats.TradeCount,
		WinCount:            stats.WinCount,
		RealizedPnL:         stats.RealizedPnL,
		BestTradePct:        stats.BestTradePct,
		WorstTradePct:       stats.WorstTradePct,
		HoldingTime:         stats.HoldingTime,
		Diagnosis:           diag,
		Trades:              sim.Trades,
		EquityCurve:         sim.Curve,
		OpenPosition:        sim.OpenEntry,
	}

	e.log.Info("backtest completed",
		zap.String("symbol", symbol),
		zap.String("run_id", result.ID),
		zap.Int("days", len(sim.Curve)),
		zap.Int("trades", stats.TradeCount),
		zap.Float64("final_equity", stats.FinalEquity),
		zap.Float64("cagr_pct", stats.CAGRPct),
		zap.Float64("mdd_pct", stats.MaxDrawdownPct),
	)

	return result, nil
}
