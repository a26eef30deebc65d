package indicator

import (
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// EMA returns the recursive exponential moving average with alpha = 2/(span+1):
//
//	ema[first] = values[first]
//	ema[t]     = alpha*values[t] + (1-alpha)*ema[t-1]
//
// where first is the first defined input. There is no warmup prefix beyond leading NaNs.
// An undefined input repeats the previous average and does not update it.
func EMA(values []float64, span int) ([]float64, error) {
	if err := checkPeriod("span", span); err != nil {
		return nil, err
	}

	if err := checkInput("EMA", values); err != nil {
		return nil, err
	}

	alpha := 2.0 / float64(span+1)
	out := undefinedSeries(len(values))
	seeded := false

	var ema float64
	for i, v := range values {
		switch {
		case types.IsUndefined(v):
			if seeded {
				out[i] = ema
			}

			continue
		case !seeded:
			ema = v
			seeded = true
		default:
			ema = alpha*v + (1-alpha)*ema
		}

		out[i] = ema
	}

	return out, nil
}
