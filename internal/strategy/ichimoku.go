package strategy

import (
	"math"

	"github.com/rxtech-lab/argo-signals/internal/indicator"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// Ichimoku trades breakouts from the cloud confirmed by the conversion/base cross.
type Ichimoku struct {
	cfg IchimokuConfig
}

// NewIchimoku validates cfg and creates the strategy.
func NewIchimoku(cfg IchimokuConfig) (Strategy, error) {
	if err := validateConfig(types.StrategyTypeIchimoku, cfg); err != nil {
		return nil, err
	}

	return &Ichimoku{cfg: cfg}, nil
}

func (c *Ichimoku) Name() types.StrategyType {
	return types.StrategyTypeIchimoku
}

func (c *Ichimoku) Domain() types.SignalDomain {
	return types.DomainLongShort
}

// MinBars is the length at which both leading spans are first defined.
func (c *Ichimoku) MinBars() int {
	return max(c.cfg.ConversionPeriod, c.cfg.BasePeriod, c.cfg.SpanBPeriod) + c.cfg.BasePeriod
}

func (c *Ichimoku) Generate(series types.PriceSeries) (*Result, error) {
	if err := validateSeries(c, series, true); err != nil {
		return nil, err
	}

	closes := series.Closes()

	cloud, err := indicator.Ichimoku(series.Highs(), series.Lows(), closes,
		c.cfg.ConversionPeriod, c.cfg.BasePeriod, c.cfg.SpanBPeriod, c.cfg.LaggingPeriod)
	if err != nil {
		return nil, err
	}

	signals := make([]types.Signal, len(closes))
	for i, price := range closes {
		conv, base := cloud.Conversion[i], cloud.Base[i]
		spanA, spanB := cloud.SpanA[i], cloud.SpanB[i]

		switch {
		case anyUndefined(price, conv, base, spanA, spanB):
			signals[i] = types.SignalFlat
		case price > math.Max(spanA, spanB) && conv > base:
			signals[i] = types.SignalLong
		case price < math.Min(spanA, spanB) && conv < base:
			signals[i] = types.SignalShort
		default:
			signals[i] = types.SignalFlat
		}
	}

	return newResult(c, signals,
		types.IndicatorSeries{Name: types.IndicatorTypeTenkanSen, Values: cloud.Conversion},
		types.IndicatorSeries{Name: types.IndicatorTypeKijunSen, Values: cloud.Base},
		types.IndicatorSeries{Name: types.IndicatorTypeSenkouSpanA, Values: cloud.SpanA},
		types.IndicatorSeries{Name: types.IndicatorTypeSenkouSpanB, Values: cloud.SpanB},
		types.IndicatorSeries{Name: types.IndicatorTypeChikouSpan, Values: cloud.Lagging},
	)
}
