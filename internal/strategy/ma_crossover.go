package strategy

import (
	"github.com/rxtech-lab/argo-signals/internal/indicator"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// MACrossover goes long while the short moving average is above the long one.
type MACrossover struct {
	cfg MACrossoverConfig
}

// NewMACrossover validates cfg and creates the strategy.
func NewMACrossover(cfg MACrossoverConfig) (Strategy, error) {
	if err := validateConfig(types.StrategyTypeMACrossover, cfg); err != nil {
		return nil, err
	}

	return &MACrossover{cfg: cfg}, nil
}

func (m *MACrossover) Name() types.StrategyType {
	return types.StrategyTypeMACrossover
}

func (m *MACrossover) Domain() types.SignalDomain {
	return m.cfg.Mode.Domain()
}

func (m *MACrossover) MinBars() int {
	return min(m.cfg.MinPeriods, m.cfg.ShortWindow)
}

func (m *MACrossover) Generate(series types.PriceSeries) (*Result, error) {
	if err := validateSeries(m, series, false); err != nil {
		return nil, err
	}

	closes := series.Closes()

	short, err := indicator.SMA(closes, m.cfg.ShortWindow, min(m.cfg.MinPeriods, m.cfg.ShortWindow))
	if err != nil {
		return nil, err
	}

	long, err := indicator.SMA(closes, m.cfg.LongWindow, min(m.cfg.MinPeriods, m.cfg.LongWindow))
	if err != nil {
		return nil, err
	}

	signals := make([]types.Signal, len(closes))
	for i := range closes {
		switch {
		case anyUndefined(short[i], long[i]):
			signals[i] = types.SignalFlat
		case short[i] > long[i]:
			signals[i] = types.SignalLong
		default:
			signals[i] = m.cfg.Mode.Otherwise()
		}
	}

	return newResult(m, signals,
		types.IndicatorSeries{Name: types.IndicatorTypeShortMA, Values: short},
		types.IndicatorSeries{Name: types.IndicatorTypeLongMA, Values: long},
	)
}
