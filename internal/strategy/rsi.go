package strategy

import (
	"github.com/rxtech-lab/argo-signals/internal/indicator"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// RSI buys oversold and sells overbought markets.
type RSI struct {
	cfg RSIConfig
}

// NewRSI validates cfg and creates the strategy.
func NewRSI(cfg RSIConfig) (Strategy, error) {
	if err := validateConfig(types.StrategyTypeRSI, cfg); err != nil {
		return nil, err
	}

	return &RSI{cfg: cfg}, nil
}

func (r *RSI) Name() types.StrategyType {
	return types.StrategyTypeRSI
}

func (r *RSI) Domain() types.SignalDomain {
	return types.DomainLongShort
}

func (r *RSI) MinBars() int {
	return r.cfg.Window
}

func (r *RSI) Generate(series types.PriceSeries) (*Result, error) {
	if err := validateSeries(r, series, false); err != nil {
		return nil, err
	}

	rsi, err := indicator.RSI(series.Closes(), r.cfg.Window)
	if err != nil {
		return nil, err
	}

	signals := make([]types.Signal, len(rsi))
	for i, v := range rsi {
		switch {
		case anyUndefined(v):
			signals[i] = types.SignalFlat
		case v < r.cfg.Oversold:
			signals[i] = types.SignalLong
		case v > r.cfg.Overbought:
			signals[i] = types.SignalShort
		default:
			signals[i] = types.SignalFlat
		}
	}

	return newResult(r, signals, types.IndicatorSeries{Name: types.IndicatorTypeRSI, Values: rsi})
}
