package strategy

import (
	"github.com/rxtech-lab/argo-signals/internal/indicator"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// Stochastic buys when both %K and %D are oversold and sells when both are overbought.
type Stochastic struct {
	cfg StochasticConfig
}

// NewStochastic validates cfg and creates the strategy.
func NewStochastic(cfg StochasticConfig) (Strategy, error) {
	if err := validateConfig(types.StrategyTypeStochastic, cfg); err != nil {
		return nil, err
	}

	return &Stochastic{cfg: cfg}, nil
}

func (s *Stochastic) Name() types.StrategyType {
	return types.StrategyTypeStochastic
}

func (s *Stochastic) Domain() types.SignalDomain {
	return types.DomainLongShort
}

// MinBars is the length at which %D is first defined.
func (s *Stochastic) MinBars() int {
	return s.cfg.KPeriod + s.cfg.DPeriod - 1
}

func (s *Stochastic) Generate(series types.PriceSeries) (*Result, error) {
	if err := validateSeries(s, series, true); err != nil {
		return nil, err
	}

	osc, err := indicator.Stochastic(series.Highs(), series.Lows(), series.Closes(), s.cfg.KPeriod, s.cfg.DPeriod)
	if err != nil {
		return nil, err
	}

	signals := make([]types.Signal, series.Len())
	for i := range signals {
		k, d := osc.K[i], osc.D[i]

		switch {
		case anyUndefined(k, d):
			signals[i] = types.SignalFlat
		case k < s.cfg.Oversold && d < s.cfg.Oversold:
			signals[i] = types.SignalLong
		case k > s.cfg.Overbought && d > s.cfg.Overbought:
			signals[i] = types.SignalShort
		default:
			signals[i] = types.SignalFlat
		}
	}

	return newResult(s, signals,
		types.IndicatorSeries{Name: types.IndicatorTypeStochasticK, Values: osc.K},
		types.IndicatorSeries{Name: types.IndicatorTypeStochasticD, Values: osc.D},
	)
}
