package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// SMA returns the rolling mean over period bars. A value is defined once the window holds at
// least minPeriods defined inputs: minPeriods == period gives a period-1 NaN prefix, minPeriods == 1
// averages over the shorter window available at the start of the series.
func SMA(values []float64, period, minPeriods int) ([]float64, error) {
	if err := checkPeriod("period", period); err != nil {
		return nil, err
	}

	if minPeriods <= 0 || minPeriods > period {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "minPeriods must be in [1, %d], got %d", period, minPeriods)
	}

	if err := checkInput("SMA", values); err != nil {
		return nil, err
	}

	out := undefinedSeries(len(values))
	buf := make([]float64, 0, period)

	for i := range values {
		buf = windowValues(values, i, period, buf)
		if len(buf) >= minPeriods {
			out[i], _ = windowStats(buf)
		}
	}

	return out, nil
}

// RollingStd returns the rolling sample standard deviation over period bars, defined once the
// window holds period defined inputs.
func RollingStd(values []float64, period int) ([]float64, error) {
	if err := checkPeriod("period", period); err != nil {
		return nil, err
	}

	if err := checkInput("RollingStd", values); err != nil {
		return nil, err
	}

	out := undefinedSeries(len(values))
	buf := make([]float64, 0, period)

	for i := range values {
		buf = windowValues(values, i, period, buf)
		if len(buf) == period {
			_, out[i] = windowStats(buf)
		}
	}

	return out, nil
}

// RollingMax returns the highest defined value over period bars.
func RollingMax(values []float64, period, minPeriods int) ([]float64, error) {
	return rollingExtreme(values, period, minPeriods, math.Max)
}

// RollingMin returns the lowest defined value over period bars.
func RollingMin(values []float64, period, minPeriods int) ([]float64, error) {
	return rollingExtreme(values, period, minPeriods, math.Min)
}

func rollingExtreme(values []float64, period, minPeriods int, pick func(a, b float64) float64) ([]float64, error) {
	if err := checkPeriod("period", period); err != nil {
		return nil, err
	}

	if minPeriods <= 0 || minPeriods > period {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "minPeriods must be in [1, %d], got %d", period, minPeriods)
	}

	if err := checkInput("rolling extreme", values); err != nil {
		return nil, err
	}

	out := undefinedSeries(len(values))
	buf := make([]float64, 0, period)

	for i := range values {
		buf = windowValues(values, i, period, buf)
		if len(buf) < minPeriods {
			continue
		}

		v := buf[0]
		for _, x := range buf[1:] {
			v = pick(v, x)
		}

		out[i] = v
	}

	return out, nil
}

// Shift moves values by n bars: positive n reports value t at bar t+n, negative n at bar t-n.
// Bars left without a source value are NaN.
func Shift(values []float64, n int) []float64 {
	out := undefinedSeries(len(values))
	for i := range values {
		j := i - n
		if j >= 0 && j < len(values) {
			out[i] = values[j]
		}
	}

	return out
}

// Diff returns values[t] - values[t-1]; the first bar is NaN.
func Diff(values []float64) []float64 {
	out := undefinedSeries(len(values))
	for i := 1; i < len(values); i++ {
		out[i] = values[i] - values[i-1]
	}

	return out
}

// PctChange returns values[t]/values[t-1] - 1. The first bar, and any bar whose previous value
// is zero or undefined, is NaN.
func PctChange(values []float64) []float64 {
	out := undefinedSeries(len(values))
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 || types.IsUndefined(prev) || types.IsUndefined(values[i]) {
			continue
		}

		out[i] = values[i]/prev - 1
	}

	return out
}
