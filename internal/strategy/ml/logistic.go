package ml

import (
	"math"
	"math/rand"

	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// LogisticRegression is a binary classifier trained with seeded stochastic gradient descent.
// The same seed and data always produce the same weights.
type LogisticRegression struct {
	Epochs       int
	LearningRate float64
	// L2 is the ridge penalty applied to the weights, not the bias.
	L2   float64
	Seed int64

	weights []float64
	bias    float64
}

// NewLogisticRegression creates a classifier with the given seed and epoch count.
func NewLogisticRegression(seed int64, epochs int) *LogisticRegression {
	return &LogisticRegression{
		Epochs:       epochs,
		LearningRate: 0.05,
		L2:           0.001,
		Seed:         seed,
	}
}

func (l *LogisticRegression) Fit(X [][]float64, y []int) error {
	if len(X) == 0 || len(X) != len(y) {
		return errors.Newf(errors.ErrCodeClassifierFailed, "need matching non-empty X and y, got %d and %d", len(X), len(y))
	}

	rng := rand.New(rand.NewSource(l.Seed))
	l.weights = make([]float64, len(X[0]))
	l.bias = 0

	for j := range l.weights {
		l.weights[j] = (rng.Float64() - 0.5) * 0.01
	}

	grad := make([]float64, len(l.weights))
	for epoch := 0; epoch < l.Epochs; epoch++ {
		for _, i := range rng.Perm(len(X)) {
			if len(X[i]) != len(l.weights) {
				return errors.Newf(errors.ErrCodeClassifierFailed, "row %d has %d features, expected %d", i, len(X[i]), len(l.weights))
			}

			residual := l.probability(X[i]) - float64(y[i])

			copy(grad, X[i])
			floats.Scale(residual, grad)
			floats.AddScaled(grad, l.L2, l.weights)
			floats.AddScaled(l.weights, -l.LearningRate, grad)
			l.bias -= l.LearningRate * residual
		}
	}

	return nil
}

func (l *LogisticRegression) Predict(X [][]float64) ([]int, error) {
	if l.weights == nil {
		return nil, errors.New(errors.ErrCodeClassifierFailed, "classifier has not been fit")
	}

	out := make([]int, len(X))
	for i, row := range X {
		if len(row) != len(l.weights) {
			return nil, errors.Newf(errors.ErrCodeClassifierFailed, "row %d has %d features, expected %d", i, len(row), len(l.weights))
		}

		if l.probability(row) > 0.5 {
			out[i] = 1
		}
	}

	return out, nil
}

func (l *LogisticRegression) probability(row []float64) float64 {
	return 1 / (1 + math.Exp(-(floats.Dot(l.weights, row) + l.bias)))
}
