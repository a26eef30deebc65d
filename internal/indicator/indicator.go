// Package indicator implements technical indicators as pure functions over price slices.
//
// Every function returns slices of the same length as its input. Values that cannot be
// computed yet (lookback prefix) or that fall outside the data after a shift are NaN.
package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

func checkPeriod(name string, period int) error {
	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, period)
	}

	return nil
}

func checkInput(name string, values []float64) error {
	if len(values) == 0 {
		return errors.NewInsufficientDataErrorf(1, 0, "", "%s requires a non-empty series", name)
	}

	return nil
}

func checkAligned(name string, series ...[]float64) error {
	for _, s := range series[1:] {
		if len(s) != len(series[0]) {
			return errors.Newf(errors.ErrCodeLengthMismatch, "%s inputs must have equal length, got %d and %d",
				name, len(series[0]), len(s))
		}
	}

	return nil
}

func undefinedSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// windowValues collects the defined values of values[end-period+1 : end+1] into buf.
func windowValues(values []float64, end, period int, buf []float64) []float64 {
	buf = buf[:0]
	for j := max(0, end-period+1); j <= end; j++ {
		if !types.IsUndefined(values[j]) {
			buf = append(buf, values[j])
		}
	}

	return buf
}

// windowStats returns the mean and the n-1 standard deviation of buf, which it rewrites in place as
// offsets from its first element. A constant window therefore yields that constant and zero spread
// exactly. The deviation is NaN for fewer than two values.
func windowStats(buf []float64) (mean, std float64) {
	base := buf[0]
	for j := range buf {
		buf[j] -= base
	}

	if len(buf) < 2 {
		return base, math.NaN()
	}

	m, v := stat.MeanVariance(buf, nil)

	return base + m, math.Sqrt(v)
}
