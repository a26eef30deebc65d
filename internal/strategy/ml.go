package strategy

import (
	"math"

	"github.com/rxtech-lab/argo-signals/internal/strategy/ml"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// ML trains a classifier on the earlier part of a series and signals on the held-out tail.
// Bars before the held-out period have no out-of-sample prediction and are flat.
type ML struct {
	cfg        MLConfig
	classifier func() ml.Classifier
}

// NewML validates cfg and creates the strategy. A nil factory uses a seeded logistic regression.
// The factory is called once per Generate so runs never share a trained model.
func NewML(cfg MLConfig, classifier func() ml.Classifier) (Strategy, error) {
	if err := validateConfig(types.StrategyTypeML, cfg); err != nil {
		return nil, err
	}

	if classifier == nil {
		classifier = func() ml.Classifier {
			return ml.NewLogisticRegression(cfg.Seed, cfg.Epochs)
		}
	}

	return &ML{cfg: cfg, classifier: classifier}, nil
}

func (m *ML) Name() types.StrategyType {
	return types.StrategyTypeML
}

func (m *ML) Domain() types.SignalDomain {
	return m.cfg.Mode.Domain()
}

// MinBars is one more than the lookback.
func (m *ML) MinBars() int {
	return m.cfg.Lookback + 1
}

func (m *ML) Generate(series types.PriceSeries) (*Result, error) {
	if err := validateSeries(m, series, false); err != nil {
		return nil, err
	}

	features, err := ml.BuildFeatures(series.Closes())
	if err != nil {
		return nil, err
	}

	rows, X, y := features.Labelled()

	train, err := ml.ChronologicalSplit(len(rows), m.cfg.TestSize)
	if err != nil {
		return nil, err
	}

	scaler := &ml.StandardScaler{}
	if err := scaler.Fit(X[:train]); err != nil {
		return nil, err
	}

	trainX, err := scaler.Transform(X[:train])
	if err != nil {
		return nil, err
	}

	model := m.classifier()
	if err := model.Fit(trainX, y[:train]); err != nil {
		return nil, errors.Wrap(errors.ErrCodeClassifierFailed, "failed to train classifier", err)
	}

	// Every feature row from the first held-out bar on is predicted, including the final bar
	// that has no label yet.
	testStart := rows[train]

	var predictRows []int
	var predictX [][]float64
	for i, bar := range features.Rows {
		if bar >= testStart {
			predictRows = append(predictRows, bar)
			predictX = append(predictX, features.X[i])
		}
	}

	scaled, err := scaler.Transform(predictX)
	if err != nil {
		return nil, err
	}

	predictions, err := model.Predict(scaled)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeClassifierFailed, "failed to predict", err)
	}

	if len(predictions) != len(predictRows) {
		return nil, errors.Newf(errors.ErrCodeClassifierFailed, "classifier returned %d predictions for %d rows",
			len(predictions), len(predictRows))
	}

	column := make([]float64, series.Len())
	for i := range column {
		column[i] = math.NaN()
	}

	for i, bar := range predictRows {
		column[bar] = float64(predictions[i])
	}

	signals := make([]types.Signal, series.Len())
	for i, p := range column {
		switch {
		case anyUndefined(p):
			signals[i] = types.SignalFlat
		case p == 1:
			signals[i] = types.SignalLong
		default:
			signals[i] = m.cfg.Mode.Otherwise()
		}
	}

	return newResult(m, signals, types.IndicatorSeries{Name: types.IndicatorTypePrediction, Values: column})
}
