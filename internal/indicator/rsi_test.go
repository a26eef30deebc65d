package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) TestKnownWindow() {
	// gains 1,0,2 and losses 0,1,0 over the window ending at index 3
	closes := []float64{10, 11, 10, 12}
	out, err := RSI(closes, 3)
	suite.Require().NoError(err)

	suite.True(math.IsNaN(out[0]))
	suite.True(math.IsNaN(out[1]))

	// window [0..2]: first bar contributes zero change, gains 1, losses 1
	suite.InDelta(50.0, out[2], 1e-12)

	avgGain := 3.0 / 3
	avgLoss := 1.0 / 3
	suite.InDelta(100-100/(1+avgGain/avgLoss), out[3], 1e-12)
}

func (suite *RSITestSuite) TestPrefixLength() {
	out, err := RSI(randomWalk(3, 100), 14)
	suite.Require().NoError(err)
	suite.Len(out, 100)

	for i := 0; i < 13; i++ {
		suite.True(math.IsNaN(out[i]), "index %d", i)
	}

	for i := 13; i < 100; i++ {
		suite.GreaterOrEqual(out[i], 0.0)
		suite.LessOrEqual(out[i], 100.0)
	}
}

func (suite *RSITestSuite) TestOnlyGainsIs100() {
	out, err := RSI([]float64{1, 2, 3, 4, 5, 6}, 3)
	suite.Require().NoError(err)

	for i := 2; i < 6; i++ {
		suite.Equal(100.0, out[i])
	}
}

func (suite *RSITestSuite) TestOnlyLossesIsZero() {
	out, err := RSI([]float64{6, 5, 4, 3, 2, 1}, 3)
	suite.Require().NoError(err)
	suite.Equal(0.0, out[5])
}

func (suite *RSITestSuite) TestFlatPricesAreUndefined() {
	out, err := RSI(constant(50, 40), 14)
	suite.Require().NoError(err)
	suite.Equal(40, countUndefined(out))
}

func (suite *RSITestSuite) TestUndefinedCloseTouchesWindow() {
	closes := randomWalk(5, 30)
	closes[15] = math.NaN()

	out, err := RSI(closes, 5)
	suite.Require().NoError(err)

	// changes at 15 and 16 are undefined, so windows ending at 15..20 are undefined
	for i := 15; i <= 20; i++ {
		suite.True(math.IsNaN(out[i]), "index %d", i)
	}

	suite.False(math.IsNaN(out[21]))
	suite.False(math.IsNaN(out[14]))
}
