package strategy

import (
	"math"

	"github.com/rxtech-lab/argo-signals/internal/indicator"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// MACD goes long while the MACD line is above its signal line.
type MACD struct {
	cfg MACDConfig
}

// NewMACD validates cfg and creates the strategy.
func NewMACD(cfg MACDConfig) (Strategy, error) {
	if err := validateConfig(types.StrategyTypeMACD, cfg); err != nil {
		return nil, err
	}

	return &MACD{cfg: cfg}, nil
}

func (m *MACD) Name() types.StrategyType {
	return types.StrategyTypeMACD
}

func (m *MACD) Domain() types.SignalDomain {
	return m.cfg.Mode.Domain()
}

// MinBars is the longest of the three periods; earlier bars are reported as undefined.
func (m *MACD) MinBars() int {
	return max(m.cfg.FastPeriod, m.cfg.SlowPeriod, m.cfg.SignalPeriod)
}

func (m *MACD) Generate(series types.PriceSeries) (*Result, error) {
	if err := validateSeries(m, series, false); err != nil {
		return nil, err
	}

	closes := series.Closes()

	macd, err := indicator.MACD(closes, m.cfg.FastPeriod, m.cfg.SlowPeriod, m.cfg.SignalPeriod)
	if err != nil {
		return nil, err
	}

	// The recursive averages start at bar 0 but are not meaningful until every period has elapsed.
	warmup := m.MinBars() - 1
	line := maskPrefix(macd.MACD, warmup)
	signalLine := maskPrefix(macd.Signal, warmup)
	hist := maskPrefix(macd.Histogram, warmup)

	signals := make([]types.Signal, len(closes))
	for i := range closes {
		switch {
		case anyUndefined(line[i], signalLine[i]):
			signals[i] = types.SignalFlat
		case line[i] > signalLine[i]:
			signals[i] = types.SignalLong
		default:
			signals[i] = m.cfg.Mode.Otherwise()
		}
	}

	return newResult(m, signals,
		types.IndicatorSeries{Name: types.IndicatorTypeMACD, Values: line},
		types.IndicatorSeries{Name: types.IndicatorTypeMACDSignal, Values: signalLine},
		types.IndicatorSeries{Name: types.IndicatorTypeMACDHistogram, Values: hist},
	)
}

func maskPrefix(values []float64, n int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if i < n {
			out[i] = math.NaN()

			continue
		}

		out[i] = v
	}

	return out
}
