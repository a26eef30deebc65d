package indicator

import (
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// MACDResult holds the three MACD outputs.
type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes EMA(fast) - EMA(slow), its EMA over signalPeriod, and their difference.
func MACD(closes []float64, fastPeriod, slowPeriod, signalPeriod int) (MACDResult, error) {
	if err := checkPeriod("fastPeriod", fastPeriod); err != nil {
		return MACDResult{}, err
	}

	if err := checkPeriod("slowPeriod", slowPeriod); err != nil {
		return MACDResult{}, err
	}

	if err := checkPeriod("signalPeriod", signalPeriod); err != nil {
		return MACDResult{}, err
	}

	if fastPeriod >= slowPeriod {
		return MACDResult{}, errors.Newf(errors.ErrCodeInvalidPeriod,
			"fastPeriod (%d) must be shorter than slowPeriod (%d)", fastPeriod, slowPeriod)
	}

	fast, err := EMA(closes, fastPeriod)
	if err != nil {
		return MACDResult{}, err
	}

	slow, err := EMA(closes, slowPeriod)
	if err != nil {
		return MACDResult{}, err
	}

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}

	signal, err := EMA(line, signalPeriod)
	if err != nil {
		return MACDResult{}, err
	}

	hist := make([]float64, len(closes))
	for i := range closes {
		hist[i] = line[i] - signal[i]
	}

	return MACDResult{MACD: line, Signal: signal, Histogram: hist}, nil
}
