package indicator

import (
	"math"
	"math/rand"
)

// randomWalk returns 100 + cumulative sum of standard normal steps.
func randomWalk(seed int64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	level := 100.0

	for i := range out {
		level += rng.NormFloat64()
		out[i] = level
	}

	return out
}

// ohlcFromCloses builds high/low around each close with a fixed half-range.
func ohlcFromCloses(closes []float64, halfRange float64) (highs, lows []float64) {
	highs = make([]float64, len(closes))
	lows = make([]float64, len(closes))

	for i, c := range closes {
		highs[i] = c + halfRange
		lows[i] = c - halfRange
	}

	return highs, lows
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

func countUndefined(values []float64) int {
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			n++
		}
	}

	return n
}
