package ml

import (
	"github.com/rxtech-lab/argo-signals/internal/indicator"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// Unlabelled marks a row with no next close to learn from.
const Unlabelled = -1

// FeatureNames lists the columns produced by BuildFeatures, in order.
var FeatureNames = []string{"return", "ma5", "ma20", "rsi14"}

// FeatureSet is the feature matrix of a close series.
type FeatureSet struct {
	// Rows holds the bar index of every feature vector, in increasing order.
	Rows []int
	X    [][]float64
	// Labels is 1 when the next close is higher than the row's close, 0 when it is not,
	// and Unlabelled when the next close is missing.
	Labels []int
}

// BuildFeatures computes the one-bar return, 5 and 20 bar moving averages and the 14 bar RSI
// for every bar. Bars where any feature is undefined are dropped.
func BuildFeatures(closes []float64) (FeatureSet, error) {
	returns := indicator.PctChange(closes)

	ma5, err := indicator.SMA(closes, 5, 5)
	if err != nil {
		return FeatureSet{}, err
	}

	ma20, err := indicator.SMA(closes, 20, 20)
	if err != nil {
		return FeatureSet{}, err
	}

	rsi, err := indicator.RSI(closes, 14)
	if err != nil {
		return FeatureSet{}, err
	}

	var fs FeatureSet
	for i := range closes {
		row := []float64{returns[i], ma5[i], ma20[i], rsi[i]}
		if anyUndefined(row) {
			continue
		}

		label := Unlabelled
		if i+1 < len(closes) && !types.IsUndefined(closes[i+1]) {
			label = 0
			if closes[i+1] > closes[i] {
				label = 1
			}
		}

		fs.Rows = append(fs.Rows, i)
		fs.X = append(fs.X, row)
		fs.Labels = append(fs.Labels, label)
	}

	return fs, nil
}

// Labelled returns the rows that have a label, keeping their order.
func (fs FeatureSet) Labelled() (rows []int, X [][]float64, y []int) {
	for i, label := range fs.Labels {
		if label == Unlabelled {
			continue
		}

		rows = append(rows, fs.Rows[i])
		X = append(X, fs.X[i])
		y = append(y, label)
	}

	return rows, X, y
}

func anyUndefined(row []float64) bool {
	for _, v := range row {
		if types.IsUndefined(v) {
			return true
		}
	}

	return false
}
