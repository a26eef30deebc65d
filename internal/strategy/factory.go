package strategy

import (
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// New builds the named strategy from its section of cfgs.
func New(name types.StrategyType, cfgs Configs) (Strategy, error) {
	switch name {
	case types.StrategyTypeMACrossover:
		return NewMACrossover(cfgs.MACrossover)
	case types.StrategyTypeRSI:
		return NewRSI(cfgs.RSI)
	case types.StrategyTypeBollinger:
		return NewBollinger(cfgs.Bollinger)
	case types.StrategyTypeMACD:
		return NewMACD(cfgs.MACD)
	case types.StrategyTypeIchimoku:
		return NewIchimoku(cfgs.Ichimoku)
	case types.StrategyTypeStochastic:
		return NewStochastic(cfgs.Stochastic)
	case types.StrategyTypeML:
		return NewML(cfgs.ML, nil)
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy %q", name)
	}
}
