package ml

import (
	"math"

	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// ChronologicalSplit returns the number of leading rows used for training when the trailing
// testSize fraction of n rows is held out. Rows are never shuffled, so the test rows always
// come after the training rows in time.
func ChronologicalSplit(n int, testSize float64) (int, error) {
	if testSize <= 0 || testSize >= 1 {
		return 0, errors.Newf(errors.ErrCodeInvalidSplit, "test size must be in (0, 1), got %v", testSize)
	}

	test := int(math.Ceil(testSize * float64(n)))
	train := n - test

	if train < 1 || test < 1 {
		return 0, errors.NewInsufficientDataErrorf(2, n, "",
			"need at least one training and one test row for test size %v", testSize)
	}

	return train, nil
}
