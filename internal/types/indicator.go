package types

// IndicatorType names an indicator output column in the signal table.
type IndicatorType string

const (
	IndicatorTypeShortMA        IndicatorType = "short_ma"
	IndicatorTypeLongMA         IndicatorType = "long_ma"
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeBollingerMid   IndicatorType = "bb_middle"
	IndicatorTypeBollingerUpper IndicatorType = "bb_upper"
	IndicatorTypeBollingerLower IndicatorType = "bb_lower"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeMACDSignal     IndicatorType = "macd_signal"
	IndicatorTypeMACDHistogram  IndicatorType = "macd_histogram"
	IndicatorTypeTenkanSen      IndicatorType = "tenkan_sen"
	IndicatorTypeKijunSen       IndicatorType = "kijun_sen"
	IndicatorTypeSenkouSpanA    IndicatorType = "senkou_span_a"
	IndicatorTypeSenkouSpanB    IndicatorType = "senkou_span_b"
	IndicatorTypeChikouSpan     IndicatorType = "chikou_span"
	IndicatorTypeStochasticK    IndicatorType = "stoch_k"
	IndicatorTypeStochasticD    IndicatorType = "stoch_d"
	IndicatorTypePrediction     IndicatorType = "prediction"
)

// IndicatorSeries is a named indicator output aligned bar-for-bar with its price series.
type IndicatorSeries struct {
	Name   IndicatorType
	Values []float64
}
