package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-signals/internal/types"
)

// RSI computes the relative strength index from simple rolling means of gains and losses.
//
// The first bar has no prior close and contributes a zero change, so the result is defined
// from index period-1. A window with losses of 0 and positive gains is 100. A window with neither
// gains nor losses (flat prices) is NaN. A window touching an undefined close is NaN.
func RSI(closes []float64, period int) ([]float64, error) {
	if err := checkPeriod("period", period); err != nil {
		return nil, err
	}

	if err := checkInput("RSI", closes); err != nil {
		return nil, err
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))

	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if types.IsUndefined(delta) {
			gains[i], losses[i] = math.NaN(), math.NaN()

			continue
		}

		gains[i] = math.Max(delta, 0)
		losses[i] = math.Max(-delta, 0)
	}

	if types.IsUndefined(closes[0]) {
		gains[0], losses[0] = math.NaN(), math.NaN()
	}

	avgGain, err := SMA(gains, period, period)
	if err != nil {
		return nil, err
	}

	avgLoss, err := SMA(losses, period, period)
	if err != nil {
		return nil, err
	}

	out := undefinedSeries(len(closes))
	for i := range closes {
		out[i] = rsiValue(avgGain[i], avgLoss[i])
	}

	return out, nil
}

func rsiValue(gain, loss float64) float64 {
	switch {
	case types.IsUndefined(gain) || types.IsUndefined(loss):
		return math.NaN()
	case loss == 0 && gain == 0:
		return math.NaN()
	case loss == 0:
		return 100
	}

	return 100 - 100/(1+gain/loss)
}
