// Package ml provides the feature pipeline and classifiers behind the ML signal strategy.
package ml

// Classifier predicts whether the next bar closes higher (1) or not (0).
type Classifier interface {
	// Fit trains on rows of X with binary labels y. Calling Fit again retrains from scratch.
	Fit(X [][]float64, y []int) error
	// Predict returns one label per row of X.
	Predict(X [][]float64) ([]int, error)
}
