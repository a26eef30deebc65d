package types

// StrategyType identifies one of the built-in signal strategies.
type StrategyType string

const (
	StrategyTypeMACrossover StrategyType = "moving_average_crossover"
	StrategyTypeRSI         StrategyType = "rsi"
	StrategyTypeBollinger   StrategyType = "bollinger_bands"
	StrategyTypeMACD        StrategyType = "macd"
	StrategyTypeIchimoku    StrategyType = "ichimoku_cloud"
	StrategyTypeStochastic  StrategyType = "stochastic_oscillator"
	StrategyTypeML          StrategyType = "ml_classifier"
)

// AllStrategies lists every built-in strategy in menu order.
var AllStrategies = []StrategyType{
	StrategyTypeMACrossover,
	StrategyTypeRSI,
	StrategyTypeBollinger,
	StrategyTypeMACD,
	StrategyTypeIchimoku,
	StrategyTypeStochastic,
	StrategyTypeML,
}
