package strategy

import (
	"github.com/rxtech-lab/argo-signals/internal/indicator"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// Bollinger buys below the lower band and sells above the upper band.
type Bollinger struct {
	cfg BollingerConfig
}

// NewBollinger validates cfg and creates the strategy.
func NewBollinger(cfg BollingerConfig) (Strategy, error) {
	if err := validateConfig(types.StrategyTypeBollinger, cfg); err != nil {
		return nil, err
	}

	return &Bollinger{cfg: cfg}, nil
}

func (b *Bollinger) Name() types.StrategyType {
	return types.StrategyTypeBollinger
}

func (b *Bollinger) Domain() types.SignalDomain {
	return types.DomainLongShort
}

func (b *Bollinger) MinBars() int {
	return b.cfg.Window
}

func (b *Bollinger) Generate(series types.PriceSeries) (*Result, error) {
	if err := validateSeries(b, series, false); err != nil {
		return nil, err
	}

	closes := series.Closes()

	bands, err := indicator.BollingerBands(closes, b.cfg.Window, b.cfg.NumStd)
	if err != nil {
		return nil, err
	}

	signals := make([]types.Signal, len(closes))
	for i, price := range closes {
		switch {
		case anyUndefined(price, bands.Upper[i], bands.Lower[i]):
			signals[i] = types.SignalFlat
		case price < bands.Lower[i]:
			signals[i] = types.SignalLong
		case price > bands.Upper[i]:
			signals[i] = types.SignalShort
		default:
			signals[i] = types.SignalFlat
		}
	}

	return newResult(b, signals,
		types.IndicatorSeries{Name: types.IndicatorTypeBollingerMid, Values: bands.Middle},
		types.IndicatorSeries{Name: types.IndicatorTypeBollingerUpper, Values: bands.Upper},
		types.IndicatorSeries{Name: types.IndicatorTypeBollingerLower, Values: bands.Lower},
	)
}
