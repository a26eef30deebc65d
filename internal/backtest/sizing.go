package backtest

import (
	"math"

	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// SizingPolicy decides how many whole shares a buy acquires.
type SizingPolicy interface {
	// SharesToBuy returns a non-negative whole number of shares affordable with cash at price.
	SharesToBuy(cash, price, totalValue float64) float64
}

// SizingPolicyType names a sizing policy.
type SizingPolicyType string

const (
	// SizingAllCash spends all available cash on each buy.
	SizingAllCash SizingPolicyType = "all_cash"
	// SizingRiskBased sizes the position so a stop-loss hit loses a fixed share of portfolio value.
	SizingRiskBased SizingPolicyType = "risk_based"
)

var AllSizingPolicies = []any{
	SizingAllCash,
	SizingRiskBased,
}

// SizingConfig selects a sizing policy. Risk parameters are used by risk_based only.
type SizingConfig struct {
	Policy          SizingPolicyType `yaml:"policy" json:"policy" validate:"required,oneof=all_cash risk_based" jsonschema:"enum=all_cash,enum=risk_based,default=all_cash"`
	RiskPerTrade    float64          `yaml:"risk_per_trade,omitempty" json:"risk_per_trade,omitempty" validate:"gte=0,lte=1" jsonschema:"minimum=0,maximum=1"`
	StopLossPercent float64          `yaml:"stop_loss_percent,omitempty" json:"stop_loss_percent,omitempty" validate:"gte=0,lte=1" jsonschema:"minimum=0,maximum=1"`
}

// DefaultSizingConfig spends all cash.
func DefaultSizingConfig() SizingConfig {
	return SizingConfig{
		Policy:          SizingAllCash,
		RiskPerTrade:    0.02,
		StopLossPercent: 0.05,
	}
}

// GetSizingPolicy builds the policy named in cfg.
func GetSizingPolicy(cfg SizingConfig) (SizingPolicy, error) {
	switch cfg.Policy {
	case SizingAllCash, "":
		return NewAllCashSizing(), nil
	case SizingRiskBased:
		return NewRiskBasedSizing(cfg.RiskPerTrade, cfg.StopLossPercent)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidSizingPolicy, "unknown sizing policy %q", cfg.Policy)
	}
}

type AllCashSizing struct{}

func NewAllCashSizing() SizingPolicy {
	return &AllCashSizing{}
}

func (s *AllCashSizing) SharesToBuy(cash, price, _ float64) float64 {
	return affordable(cash, price)
}

// RiskBasedSizing targets a position value of totalValue * riskPerTrade / stopLossPercent, capped by cash.
type RiskBasedSizing struct {
	riskPerTrade    float64
	stopLossPercent float64
}

func NewRiskBasedSizing(riskPerTrade, stopLossPercent float64) (SizingPolicy, error) {
	if !(riskPerTrade > 0 && riskPerTrade <= 1) {
		return nil, errors.Newf(errors.ErrCodeInvalidSizingPolicy, "risk_per_trade must be in (0, 1], got %v", riskPerTrade)
	}

	if !(stopLossPercent > 0 && stopLossPercent <= 1) {
		return nil, errors.Newf(errors.ErrCodeInvalidSizingPolicy, "stop_loss_percent must be in (0, 1], got %v", stopLossPercent)
	}

	return &RiskBasedSizing{riskPerTrade: riskPerTrade, stopLossPercent: stopLossPercent}, nil
}

func (s *RiskBasedSizing) SharesToBuy(cash, price, totalValue float64) float64 {
	target := totalValue * s.riskPerTrade / s.stopLossPercent

	return affordable(math.Min(cash, target), price)
}

func affordable(budget, price float64) float64 {
	if !(price > 0) || !(budget > 0) || math.IsInf(budget, 0) {
		return 0
	}

	n := math.Floor(budget / price)
	// floor of a rounded quotient can still overspend by one share
	for n > 0 && n*price > budget {
		n--
	}

	return n
}
