package indicator

import (
	"math"
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RollingTestSuite struct {
	suite.Suite
}

func TestRollingSuite(t *testing.T) {
	suite.Run(t, new(RollingTestSuite))
}

func (suite *RollingTestSuite) TestSMAStrict() {
	out, err := SMA([]float64{1, 2, 3, 4, 5}, 3, 3)
	suite.Require().NoError(err)
	suite.Len(out, 5)
	suite.True(math.IsNaN(out[0]))
	suite.True(math.IsNaN(out[1]))
	suite.InDelta(2.0, out[2], 1e-12)
	suite.InDelta(3.0, out[3], 1e-12)
	suite.InDelta(4.0, out[4], 1e-12)
}

func (suite *RollingTestSuite) TestSMAMinPeriodsOne() {
	out, err := SMA([]float64{1, 2, 3, 4, 5}, 3, 1)
	suite.Require().NoError(err)
	suite.Equal([]float64{1, 1.5, 2, 3, 4}, out)
}

func (suite *RollingTestSuite) TestSMAMatchesTalib() {
	values := randomWalk(7, 120)
	out, err := SMA(values, 10, 10)
	suite.Require().NoError(err)

	expected := talib.Sma(values, 10)
	for i := 9; i < len(values); i++ {
		suite.InDelta(expected[i], out[i], 1e-9, "index %d", i)
	}

	suite.Equal(9, countUndefined(out))
}

func (suite *RollingTestSuite) TestSMAConstantIsExact() {
	out, err := SMA(constant(100.1, 50), 20, 20)
	suite.Require().NoError(err)

	for i := 19; i < 50; i++ {
		suite.Equal(100.1, out[i])
	}
}

func (suite *RollingTestSuite) TestSMAWithUndefinedInput() {
	values := []float64{1, 2, math.NaN(), 4, 5, 6}
	strict, err := SMA(values, 2, 2)
	suite.Require().NoError(err)
	suite.True(math.IsNaN(strict[2]))
	suite.True(math.IsNaN(strict[3]))
	suite.InDelta(4.5, strict[4], 1e-12)

	loose, err := SMA(values, 2, 1)
	suite.Require().NoError(err)
	suite.InDelta(2.0, loose[2], 1e-12)
	suite.InDelta(4.0, loose[3], 1e-12)
}

func (suite *RollingTestSuite) TestSMAValidation() {
	tests := []struct {
		name       string
		values     []float64
		period     int
		minPeriods int
		code       errors.ErrorCode
	}{
		{"zero period", []float64{1}, 0, 1, errors.ErrCodeInvalidPeriod},
		{"negative period", []float64{1}, -3, 1, errors.ErrCodeInvalidPeriod},
		{"min periods above period", []float64{1}, 2, 3, errors.ErrCodeInvalidPeriod},
		{"zero min periods", []float64{1}, 2, 0, errors.ErrCodeInvalidPeriod},
		{"empty input", nil, 2, 2, errors.ErrCodeInsufficientData},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := SMA(tc.values, tc.period, tc.minPeriods)
			suite.Error(err)
			suite.Equal(tc.code, errors.GetCode(err))
		})
	}
}

func (suite *RollingTestSuite) TestShortInputIsAllUndefined() {
	out, err := SMA([]float64{1, 2}, 5, 5)
	suite.Require().NoError(err)
	suite.Equal(2, countUndefined(out))
}

func (suite *RollingTestSuite) TestRollingStd() {
	out, err := RollingStd([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8)
	suite.Require().NoError(err)
	suite.Equal(7, countUndefined(out))
	// sample deviation of the classic population-2 example
	suite.InDelta(math.Sqrt(32.0/7.0), out[7], 1e-12)

	flat, err := RollingStd(constant(3.3, 10), 5)
	suite.Require().NoError(err)
	suite.Equal(0.0, flat[9])
}

func (suite *RollingTestSuite) TestRollingMaxMinMatchTalib() {
	values := randomWalk(11, 80)

	hi, err := RollingMax(values, 9, 9)
	suite.Require().NoError(err)
	lo, err := RollingMin(values, 9, 9)
	suite.Require().NoError(err)

	expectedHi := talib.Max(values, 9)
	expectedLo := talib.Min(values, 9)

	for i := 8; i < len(values); i++ {
		suite.Equal(expectedHi[i], hi[i], "max at %d", i)
		suite.Equal(expectedLo[i], lo[i], "min at %d", i)
	}

	suite.Equal(8, countUndefined(hi))
	suite.Equal(8, countUndefined(lo))
}

func (suite *RollingTestSuite) TestShift() {
	values := []float64{1, 2, 3, 4}

	forward := Shift(values, 2)
	suite.True(math.IsNaN(forward[0]))
	suite.True(math.IsNaN(forward[1]))
	suite.Equal([]float64{1, 2}, forward[2:])

	backward := Shift(values, -1)
	suite.Equal([]float64{2, 3, 4}, backward[:3])
	suite.True(math.IsNaN(backward[3]))

	suite.Equal(4, countUndefined(Shift(values, 10)))
}

func (suite *RollingTestSuite) TestDiffAndPctChange() {
	values := []float64{100, 110, 99, 0, 5}

	diff := Diff(values)
	suite.True(math.IsNaN(diff[0]))
	suite.Equal([]float64{10, -11, -99, 5}, diff[1:])

	pct := PctChange(values)
	suite.True(math.IsNaN(pct[0]))
	suite.InDelta(0.1, pct[1], 1e-12)
	suite.InDelta(-0.1, pct[2], 1e-12)
	suite.InDelta(-1.0, pct[3], 1e-12)
	suite.True(math.IsNaN(pct[4]), "division by a zero previous value is undefined")
}
