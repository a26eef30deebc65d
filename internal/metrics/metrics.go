// Package metrics summarises a backtest ledger into performance figures.
package metrics

import (
	"math"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear annualises the Sharpe ratio.
const TradingDaysPerYear = 252

// Calculate computes the performance record of a ledger against initialCapital.
func Calculate(ledger *types.Ledger, initialCapital float64) (types.PerformanceMetrics, error) {
	if ledger == nil || len(ledger.Entries) == 0 {
		return types.PerformanceMetrics{}, errors.New(errors.ErrCodeEmptySeries, "ledger has no entries")
	}

	if types.IsUndefined(initialCapital) || initialCapital <= 0 {
		return types.PerformanceMetrics{}, errors.Newf(errors.ErrCodeInvalidCapital, "initial capital must be positive, got %v", initialCapital)
	}

	values := ledger.TotalValues()
	final := values[len(values)-1]
	last := ledger.Entries[len(ledger.Entries)-1]

	m := types.PerformanceMetrics{
		InitialInvestment:   initialCapital,
		FinalValue:          final,
		TotalReturnPct:      (final/initialCapital - 1) * 100,
		NumTrades:           CountTrades(ledger.Deltas()),
		SharpeRatio:         SharpeRatio(values),
		MaxDrawdownPct:      MaxDrawdownPct(values),
		ExecutedTrades:      len(ledger.Trades),
		BuyAndHoldReturnPct: (last.BuyAndHoldValue/initialCapital - 1) * 100,
	}

	m.WinRate, m.RealizedPnL = realized(ledger.Trades)

	return m, nil
}

// CountTrades counts bars whose position delta is non-zero.
func CountTrades(deltas []int) int {
	n := 0
	for _, d := range deltas {
		if d != 0 {
			n++
		}
	}

	return n
}

// SharpeRatio is sqrt(252) * mean / sample stdev of the per-bar percentage change of values.
// Undefined changes are dropped. Returns NaN with fewer than two changes or zero deviation.
func SharpeRatio(values []float64) float64 {
	returns := PctChanges(values)
	if len(returns) < 2 {
		return math.NaN()
	}

	mean, std := stat.MeanStdDev(returns, nil)
	if std == 0 || math.IsNaN(std) {
		return math.NaN()
	}

	return math.Sqrt(TradingDaysPerYear) * mean / std
}

// PctChanges returns the defined per-bar percentage changes of values.
func PctChanges(values []float64) []float64 {
	out := make([]float64, 0, len(values))

	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			continue
		}

		r := values[i]/prev - 1
		if !types.IsUndefined(r) {
			out = append(out, r)
		}
	}

	return out
}

// MaxDrawdownPct is the worst decline from a running maximum, in percent. It is never positive.
func MaxDrawdownPct(values []float64) float64 {
	worst := 0.0
	peak := math.Inf(-1)

	for _, v := range values {
		if types.IsUndefined(v) {
			continue
		}

		if v > peak {
			peak = v
		}

		if peak <= 0 {
			continue
		}

		if dd := (v - peak) / peak; dd < worst {
			worst = dd
		}
	}

	return worst * 100
}

// realized returns the share of profitable sells and their summed PnL.
func realized(trades []types.Trade) (float64, float64) {
	var (
		sells int
		wins  int
		total = decimal.Zero
	)

	for _, t := range trades {
		if t.Side != types.TradeSideSell {
			continue
		}

		sells++

		if t.RealizedPnL.IsPositive() {
			wins++
		}

		total = total.Add(t.RealizedPnL)
	}

	if sells == 0 {
		return 0, 0
	}

	return float64(wins) / float64(sells), total.InexactFloat64()
}
