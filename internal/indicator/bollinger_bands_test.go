package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/stat"
)

type BollingerBandsTestSuite struct {
	suite.Suite
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) TestBandsMatchSampleStatistics() {
	closes := randomWalk(42, 200)

	result, err := BollingerBands(closes, 20, 2)
	suite.Require().NoError(err)
	suite.Len(result.Middle, 200)

	suite.Equal(19, countUndefined(result.Middle))
	suite.Equal(19, countUndefined(result.Upper))
	suite.Equal(19, countUndefined(result.Lower))

	for _, i := range []int{19, 57, 199} {
		window := closes[i-19 : i+1]
		mean, std := stat.MeanStdDev(window, nil)
		suite.InDelta(mean, result.Middle[i], 1e-5, "middle at %d", i)
		suite.InDelta(mean+2*std, result.Upper[i], 1e-5, "upper at %d", i)
		suite.InDelta(mean-2*std, result.Lower[i], 1e-5, "lower at %d", i)
	}
}

func (suite *BollingerBandsTestSuite) TestConstantSeriesHasZeroWidth() {
	result, err := BollingerBands(constant(101.37, 60), 20, 2)
	suite.Require().NoError(err)

	for i := 19; i < 60; i++ {
		suite.Equal(101.37, result.Middle[i])
		suite.Equal(101.37, result.Upper[i])
		suite.Equal(101.37, result.Lower[i])
	}
}

func (suite *BollingerBandsTestSuite) TestPeriodOne() {
	result, err := BollingerBands([]float64{1, 2, 3}, 1, 2)
	suite.Require().NoError(err)
	suite.Equal([]float64{1, 2, 3}, result.Upper)
	suite.Equal([]float64{1, 2, 3}, result.Lower)
}

func (suite *BollingerBandsTestSuite) TestValidation() {
	_, err := BollingerBands([]float64{1, 2}, 0, 2)
	suite.Equal(errors.ErrCodeInvalidPeriod, errors.GetCode(err))

	_, err = BollingerBands([]float64{1, 2}, 2, 0)
	suite.Equal(errors.ErrCodeInvalidStdDev, errors.GetCode(err))

	_, err = BollingerBands([]float64{1, 2}, 2, math.NaN())
	suite.Equal(errors.ErrCodeInvalidStdDev, errors.GetCode(err))

	_, err = BollingerBands(nil, 20, 2)
	suite.True(errors.IsInsufficientDataError(err))
}
