package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// StochasticResult holds %K and its moving average %D, both in [0, 100].
type StochasticResult struct {
	K []float64
	D []float64
}

// Stochastic computes the stochastic oscillator over strict windows: %K is defined from index
// kPeriod-1 and %D from index kPeriod+dPeriod-2. %K is clamped to [0, 100]; a window whose
// high and low coincide has no range and yields NaN.
func Stochastic(highs, lows, closes []float64, kPeriod, dPeriod int) (StochasticResult, error) {
	if err := checkPeriod("kPeriod", kPeriod); err != nil {
		return StochasticResult{}, err
	}

	if err := checkPeriod("dPeriod", dPeriod); err != nil {
		return StochasticResult{}, err
	}

	required := max(kPeriod, dPeriod)
	if len(closes) == 0 || len(closes) < required {
		return StochasticResult{}, errors.NewInsufficientDataErrorf(required, len(closes), "",
			"stochastic oscillator needs at least max(kPeriod, dPeriod) bars")
	}

	if err := checkAligned("Stochastic", closes, highs, lows); err != nil {
		return StochasticResult{}, err
	}

	hi, err := RollingMax(highs, kPeriod, kPeriod)
	if err != nil {
		return StochasticResult{}, err
	}

	lo, err := RollingMin(lows, kPeriod, kPeriod)
	if err != nil {
		return StochasticResult{}, err
	}

	k := undefinedSeries(len(closes))
	for i := range closes {
		rng := hi[i] - lo[i]
		if types.IsUndefined(rng) || types.IsUndefined(closes[i]) || rng == 0 {
			continue
		}

		k[i] = math.Min(100, math.Max(0, 100*(closes[i]-lo[i])/rng))
	}

	d, err := SMA(k, dPeriod, dPeriod)
	if err != nil {
		return StochasticResult{}, err
	}

	return StochasticResult{K: k, D: d}, nil
}
