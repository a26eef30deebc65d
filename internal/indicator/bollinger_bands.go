package indicator

import (
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// BollingerResult holds the middle band and the bands numStd standard deviations around it.
type BollingerResult struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
}

// BollingerBands uses a strict rolling mean and the rolling sample standard deviation.
// A constant window has zero width, so all three bands equal the price.
func BollingerBands(closes []float64, period int, numStd float64) (BollingerResult, error) {
	if err := checkPeriod("period", period); err != nil {
		return BollingerResult{}, err
	}

	if numStd <= 0 || types.IsUndefined(numStd) {
		return BollingerResult{}, errors.Newf(errors.ErrCodeInvalidStdDev, "numStd must be positive, got %v", numStd)
	}

	middle, err := SMA(closes, period, period)
	if err != nil {
		return BollingerResult{}, err
	}

	std, err := RollingStd(closes, period)
	if err != nil {
		return BollingerResult{}, err
	}

	upper := undefinedSeries(len(closes))
	lower := undefinedSeries(len(closes))

	for i := range closes {
		// period 1 has no sample deviation; treat it as zero width
		width := std[i]
		if period == 1 {
			width = 0
		}

		if types.IsUndefined(middle[i]) || types.IsUndefined(width) {
			continue
		}

		upper[i] = middle[i] + numStd*width
		lower[i] = middle[i] - numStd*width
	}

	return BollingerResult{Middle: middle, Upper: upper, Lower: lower}, nil
}
