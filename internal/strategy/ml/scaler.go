package ml

import (
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// StandardScaler centres each column on its training mean and scales it by its standard deviation.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

// Fit learns column statistics from X. A constant column is scaled by 1.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New(errors.ErrCodeInsufficientData, "cannot fit scaler on an empty matrix")
	}

	cols := len(X[0])
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)

	column := make([]float64, len(X))
	for j := 0; j < cols; j++ {
		for i, row := range X {
			column[i] = row[j]
		}

		mean, std := stat.PopMeanStdDev(column, nil)
		if std == 0 {
			std = 1
		}

		s.Mean[j] = mean
		s.Std[j] = std
	}

	return nil
}

// Transform returns a scaled copy of X.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(s.Mean) {
			return nil, errors.Newf(errors.ErrCodeLengthMismatch, "row %d has %d features, scaler was fit on %d",
				i, len(row), len(s.Mean))
		}

		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Std[j]
		}

		out[i] = scaled
	}

	return out, nil
}
