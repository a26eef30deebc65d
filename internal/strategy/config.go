package strategy

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// MACrossoverConfig configures the moving-average crossover strategy.
type MACrossoverConfig struct {
	ShortWindow int `yaml:"short_window" json:"short_window" validate:"required,gt=0" jsonschema:"default=50"`
	LongWindow  int `yaml:"long_window" json:"long_window" validate:"required,gtfield=ShortWindow" jsonschema:"default=200"`
	// MinPeriods is the number of bars a moving average needs before it is defined.
	// 1 averages over whatever history exists from the first bar.
	MinPeriods int              `yaml:"min_periods" json:"min_periods" validate:"gte=1" jsonschema:"default=1"`
	Mode       types.SignalMode `yaml:"mode" json:"mode" validate:"oneof=long_short long_flat" jsonschema:"enum=long_short,enum=long_flat"`
}

// RSIConfig configures the RSI threshold strategy.
type RSIConfig struct {
	Window     int     `yaml:"window" json:"window" validate:"required,gt=0" jsonschema:"default=14"`
	Overbought float64 `yaml:"overbought" json:"overbought" validate:"gt=0,lt=100,gtfield=Oversold" jsonschema:"default=70"`
	Oversold   float64 `yaml:"oversold" json:"oversold" validate:"gt=0,lt=100" jsonschema:"default=30"`
}

// BollingerConfig configures the Bollinger Bands mean-reversion strategy.
type BollingerConfig struct {
	Window int     `yaml:"window" json:"window" validate:"required,gt=0" jsonschema:"default=20"`
	NumStd float64 `yaml:"num_std" json:"num_std" validate:"gt=0" jsonschema:"default=2"`
}

// MACDConfig configures the MACD crossover strategy.
type MACDConfig struct {
	FastPeriod   int              `yaml:"fast_period" json:"fast_period" validate:"required,gt=0" jsonschema:"default=12"`
	SlowPeriod   int              `yaml:"slow_period" json:"slow_period" validate:"required,gtfield=FastPeriod" jsonschema:"default=26"`
	SignalPeriod int              `yaml:"signal_period" json:"signal_period" validate:"required,gt=0" jsonschema:"default=9"`
	Mode         types.SignalMode `yaml:"mode" json:"mode" validate:"oneof=long_short long_flat" jsonschema:"enum=long_short,enum=long_flat"`
}

// IchimokuConfig configures the Ichimoku cloud strategy.
type IchimokuConfig struct {
	ConversionPeriod int `yaml:"conversion_period" json:"conversion_period" validate:"required,gt=0" jsonschema:"default=9"`
	BasePeriod       int `yaml:"base_period" json:"base_period" validate:"required,gt=0" jsonschema:"default=26"`
	SpanBPeriod      int `yaml:"span_b_period" json:"span_b_period" validate:"required,gt=0" jsonschema:"default=52"`
	LaggingPeriod    int `yaml:"lagging_period" json:"lagging_period" validate:"required,gt=0" jsonschema:"default=26"`
}

// StochasticConfig configures the stochastic oscillator strategy.
type StochasticConfig struct {
	KPeriod    int     `yaml:"k_period" json:"k_period" validate:"required,gt=0" jsonschema:"default=14"`
	DPeriod    int     `yaml:"d_period" json:"d_period" validate:"required,gt=0" jsonschema:"default=3"`
	Overbought float64 `yaml:"overbought" json:"overbought" validate:"gt=0,lt=100,gtfield=Oversold" jsonschema:"default=80"`
	Oversold   float64 `yaml:"oversold" json:"oversold" validate:"gt=0,lt=100" jsonschema:"default=20"`
}

// MLConfig configures the classifier strategy.
type MLConfig struct {
	// Lookback is the minimum history; the series must be strictly longer.
	Lookback int `yaml:"lookback" json:"lookback" validate:"required,gt=0" jsonschema:"default=30"`
	// TestSize is the trailing fraction of labelled rows held out for out-of-sample signals.
	TestSize float64          `yaml:"test_size" json:"test_size" validate:"gt=0,lt=1" jsonschema:"default=0.2"`
	Seed     int64            `yaml:"seed" json:"seed" jsonschema:"default=42"`
	Epochs   int              `yaml:"epochs" json:"epochs" validate:"required,gt=0" jsonschema:"default=100"`
	Mode     types.SignalMode `yaml:"mode" json:"mode" validate:"oneof=long_short long_flat" jsonschema:"enum=long_short,enum=long_flat"`
}

// Configs holds the parameters of every built-in strategy.
type Configs struct {
	MACrossover MACrossoverConfig `yaml:"moving_average_crossover" json:"moving_average_crossover"`
	RSI         RSIConfig         `yaml:"rsi" json:"rsi"`
	Bollinger   BollingerConfig   `yaml:"bollinger_bands" json:"bollinger_bands"`
	MACD        MACDConfig        `yaml:"macd" json:"macd"`
	Ichimoku    IchimokuConfig    `yaml:"ichimoku_cloud" json:"ichimoku_cloud"`
	Stochastic  StochasticConfig  `yaml:"stochastic_oscillator" json:"stochastic_oscillator"`
	ML          MLConfig          `yaml:"ml_classifier" json:"ml_classifier"`
}

// DefaultConfigs returns the standard parameters for every strategy.
func DefaultConfigs() Configs {
	return Configs{
		MACrossover: MACrossoverConfig{ShortWindow: 50, LongWindow: 200, MinPeriods: 1, Mode: types.SignalModeLongShort},
		RSI:         RSIConfig{Window: 14, Overbought: 70, Oversold: 30},
		Bollinger:   BollingerConfig{Window: 20, NumStd: 2},
		MACD:        MACDConfig{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9, Mode: types.SignalModeLongShort},
		Ichimoku:    IchimokuConfig{ConversionPeriod: 9, BasePeriod: 26, SpanBPeriod: 52, LaggingPeriod: 26},
		Stochastic:  StochasticConfig{KPeriod: 14, DPeriod: 3, Overbought: 80, Oversold: 20},
		ML:          MLConfig{Lookback: 30, TestSize: 0.2, Seed: 42, Epochs: 100, Mode: types.SignalModeLongFlat},
	}
}

// For returns the parameter set of the named strategy, or nil for an unknown name.
func (c Configs) For(name types.StrategyType) any {
	switch name {
	case types.StrategyTypeMACrossover:
		return c.MACrossover
	case types.StrategyTypeRSI:
		return c.RSI
	case types.StrategyTypeBollinger:
		return c.Bollinger
	case types.StrategyTypeMACD:
		return c.MACD
	case types.StrategyTypeIchimoku:
		return c.Ichimoku
	case types.StrategyTypeStochastic:
		return c.Stochastic
	case types.StrategyTypeML:
		return c.ML
	default:
		return nil
	}
}

var validate = validator.New()

func validateConfig(name types.StrategyType, cfg any) error {
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "invalid %s configuration", name)
	}

	return nil
}
