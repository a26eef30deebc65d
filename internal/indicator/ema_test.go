package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestRecursion() {
	values := []float64{10, 11, 12, 13}
	out, err := EMA(values, 3)
	suite.Require().NoError(err)

	alpha := 0.5
	expected := []float64{10}
	for _, v := range values[1:] {
		expected = append(expected, alpha*v+(1-alpha)*expected[len(expected)-1])
	}

	suite.InDeltaSlice(expected, out, 1e-12)
}

func (suite *EMATestSuite) TestSeededByFirstDefinedValue() {
	out, err := EMA([]float64{math.NaN(), math.NaN(), 5, 7}, 1)
	suite.Require().NoError(err)
	suite.True(math.IsNaN(out[0]))
	suite.True(math.IsNaN(out[1]))
	suite.Equal(5.0, out[2])
	// span 1 means alpha 1: the average tracks the input
	suite.Equal(7.0, out[3])
}

func (suite *EMATestSuite) TestUndefinedInputCarriesAverage() {
	out, err := EMA([]float64{4, math.NaN(), 8}, 3)
	suite.Require().NoError(err)
	suite.Equal(4.0, out[1])
	suite.InDelta(6.0, out[2], 1e-12)
}

func (suite *EMATestSuite) TestConstantSeries() {
	out, err := EMA(constant(42, 30), 12)
	suite.Require().NoError(err)

	for _, v := range out {
		suite.InDelta(42.0, v, 1e-9)
	}
}

func (suite *EMATestSuite) TestValidation() {
	_, err := EMA([]float64{1}, 0)
	suite.Error(err)

	_, err = EMA(nil, 3)
	suite.Error(err)
}
