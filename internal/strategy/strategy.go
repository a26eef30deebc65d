// Package strategy turns price series into signals using the built-in indicator strategies.
package strategy

import (
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// Strategy maps a price series to one signal per bar.
type Strategy interface {
	// Name returns the strategy's identifier.
	Name() types.StrategyType
	// Domain returns every signal value Generate may emit.
	Domain() types.SignalDomain
	// MinBars returns the shortest series Generate accepts.
	MinBars() int
	// Generate computes indicators, signals and position deltas. It does not modify series.
	Generate(series types.PriceSeries) (*Result, error)
}

// Result is the output of a strategy run.
type Result struct {
	Strategy types.StrategyType
	Signals  []types.Signal
	// Deltas holds signal[t] - signal[t-1] with a flat signal before the first bar.
	Deltas     []int
	Indicators []types.IndicatorSeries
}

// Indicator returns the named indicator series, or nil if the strategy does not produce it.
func (r *Result) Indicator(name types.IndicatorType) []float64 {
	for _, ind := range r.Indicators {
		if ind.Name == name {
			return ind.Values
		}
	}

	return nil
}

// validateSeries rejects series a strategy cannot process before any computation starts.
func validateSeries(s Strategy, series types.PriceSeries, needHighLow bool) error {
	if err := series.Validate(); err != nil {
		return err
	}

	if series.Len() < s.MinBars() {
		return errors.NewInsufficientDataErrorf(s.MinBars(), series.Len(), series.Symbol,
			"%s needs at least %d bars", s.Name(), s.MinBars())
	}

	if needHighLow && !series.HasHighLow() {
		return errors.Newf(errors.ErrCodeMissingHighLow, "%s requires high and low prices for %q", s.Name(), series.Symbol)
	}

	return nil
}

// newResult checks every signal against the strategy's domain and attaches position deltas.
func newResult(s Strategy, signals []types.Signal, indicators ...types.IndicatorSeries) (*Result, error) {
	domain := s.Domain()
	for i, sig := range signals {
		if !domain.Contains(sig) {
			return nil, errors.Newf(errors.ErrCodeSignalOutOfDomain, "%s emitted %s at bar %d", s.Name(), sig, i)
		}
	}

	return &Result{
		Strategy:   s.Name(),
		Signals:    signals,
		Deltas:     types.PositionDeltas(signals),
		Indicators: indicators,
	}, nil
}

// anyUndefined reports whether any input is NaN or infinite. Strategies emit a flat signal for
// such bars instead of comparing undefined values.
func anyUndefined(values ...float64) bool {
	for _, v := range values {
		if types.IsUndefined(v) {
			return true
		}
	}

	return false
}
