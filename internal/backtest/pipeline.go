// Package backtest replays strategy signals against prices and runs batches of backtests.
package backtest

import (
	"github.com/rxtech-lab/argo-signals/internal/metrics"
	"github.com/rxtech-lab/argo-signals/internal/strategy"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// DefaultInitialCapital is the starting cash of a run.
const DefaultInitialCapital = 100000.0

// Options configures a single pipeline run.
type Options struct {
	InitialCapital float64
	// Sizing decides buy quantities. Nil spends all cash.
	Sizing SizingPolicy
}

// DefaultOptions starts with 100000 and all-cash sizing.
func DefaultOptions() Options {
	return Options{
		InitialCapital: DefaultInitialCapital,
		Sizing:         NewAllCashSizing(),
	}
}

// RunResult is everything one pipeline run produces.
type RunResult struct {
	Signals *strategy.Result
	Ledger  *types.Ledger
	Metrics types.PerformanceMetrics
	Table   types.SignalTable
}

// Run generates signals for series, replays them and computes metrics.
// It is pure: the same inputs give the same outputs and series is not modified.
func Run(series types.PriceSeries, s strategy.Strategy, opts Options) (*RunResult, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeStrategyNotFound, "no strategy given")
	}

	signals, err := s.Generate(series)
	if err != nil {
		return nil, err
	}

	ledger, err := Replay(series, signals.Deltas, opts.InitialCapital, opts.Sizing)
	if err != nil {
		return nil, err
	}

	m, err := metrics.Calculate(ledger, opts.InitialCapital)
	if err != nil {
		return nil, err
	}

	return &RunResult{
		Signals: signals,
		Ledger:  ledger,
		Metrics: m,
		Table:   types.NewSignalTable(series, signals.Strategy, signals.Indicators, signals.Signals, ledger),
	}, nil
}
