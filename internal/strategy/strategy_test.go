package strategy

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/mocks"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type StrategyTestSuite struct {
	suite.Suite
	registry Registry
	series   types.PriceSeries
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategyTestSuite))
}

func (suite *StrategyTestSuite) SetupTest() {
	registry, err := NewDefaultRegistry(DefaultConfigs())
	suite.Require().NoError(err)
	suite.registry = registry

	cfg := mocks.DefaultConfig()
	cfg.Count = 300
	suite.series = mocks.NewDataGenerator(42).Generate(cfg)
}

func (suite *StrategyTestSuite) TestSignalsStayInDomain() {
	for _, name := range types.AllStrategies {
		suite.Run(string(name), func() {
			s, err := suite.registry.Get(name)
			suite.Require().NoError(err)

			result, err := s.Generate(suite.series)
			suite.Require().NoError(err)
			suite.Equal(name, result.Strategy)

			for i, sig := range result.Signals {
				suite.True(s.Domain().Contains(sig), "bar %d emitted %s", i, sig)
			}
		})
	}
}

func (suite *StrategyTestSuite) TestDeltasAreSignalDifferences() {
	for _, name := range types.AllStrategies {
		suite.Run(string(name), func() {
			s, err := suite.registry.Get(name)
			suite.Require().NoError(err)

			result, err := s.Generate(suite.series)
			suite.Require().NoError(err)
			suite.Require().Len(result.Deltas, suite.series.Len())

			prev := types.SignalFlat
			for i, sig := range result.Signals {
				suite.Equal(int(sig)-int(prev), result.Deltas[i], "bar %d", i)
				prev = sig
			}
		})
	}
}

func (suite *StrategyTestSuite) TestOutputsMatchSeriesLength() {
	for _, name := range types.AllStrategies {
		suite.Run(string(name), func() {
			s, err := suite.registry.Get(name)
			suite.Require().NoError(err)

			result, err := s.Generate(suite.series)
			suite.Require().NoError(err)
			suite.Len(result.Signals, suite.series.Len())
			suite.NotEmpty(result.Indicators)

			for _, ind := range result.Indicators {
				suite.Len(ind.Values, suite.series.Len(), "indicator %s", ind.Name)
			}
		})
	}
}

func (suite *StrategyTestSuite) TestGenerateIsIdempotent() {
	for _, name := range types.AllStrategies {
		suite.Run(string(name), func() {
			s, err := suite.registry.Get(name)
			suite.Require().NoError(err)

			first, err := s.Generate(suite.series)
			suite.Require().NoError(err)
			second, err := s.Generate(suite.series)
			suite.Require().NoError(err)

			suite.Equal(first.Signals, second.Signals)
			suite.Equal(first.Deltas, second.Deltas)

			for i := range first.Indicators {
				suite.Equal(math.Float64bits(first.Indicators[i].Values[len(first.Indicators[i].Values)/2]),
					math.Float64bits(second.Indicators[i].Values[len(second.Indicators[i].Values)/2]))
			}
		})
	}
}

func (suite *StrategyTestSuite) TestGenerateDoesNotModifyInput() {
	before := make([]types.PriceBar, suite.series.Len())
	copy(before, suite.series.Bars)

	for _, name := range types.AllStrategies {
		s, err := suite.registry.Get(name)
		suite.Require().NoError(err)

		_, err = s.Generate(suite.series)
		suite.Require().NoError(err)
	}

	suite.Equal(before, suite.series.Bars)
}

func (suite *StrategyTestSuite) TestConstantPriceIsFlat() {
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 57.25
	}

	series := mocks.FromCloses("FLAT", closes)
	// high == low == close so the stochastic range is zero as well
	for i := range series.Bars {
		series.Bars[i].High = 57.25
		series.Bars[i].Low = 57.25
	}

	for _, name := range []types.StrategyType{types.StrategyTypeBollinger, types.StrategyTypeRSI, types.StrategyTypeStochastic} {
		suite.Run(string(name), func() {
			s, err := suite.registry.Get(name)
			suite.Require().NoError(err)

			result, err := s.Generate(series)
			suite.Require().NoError(err)

			for i, sig := range result.Signals {
				suite.Equal(types.SignalFlat, sig, "bar %d", i)
			}
		})
	}
}

func (suite *StrategyTestSuite) TestUndefinedPriceIsFlat() {
	series := mocks.FromCloses("GAP", mocks.NewDataGenerator(3).RandomWalk("GAP", 150).Closes())
	series.Bars[100].Close = math.NaN()

	for _, name := range []types.StrategyType{types.StrategyTypeBollinger, types.StrategyTypeRSI, types.StrategyTypeIchimoku} {
		suite.Run(string(name), func() {
			s, err := suite.registry.Get(name)
			suite.Require().NoError(err)

			result, err := s.Generate(series)
			suite.Require().NoError(err)
			suite.Equal(types.SignalFlat, result.Signals[100])
		})
	}
}

func (suite *StrategyTestSuite) TestRejectsInvalidSeries() {
	for _, name := range types.AllStrategies {
		suite.Run(string(name), func() {
			s, err := suite.registry.Get(name)
			suite.Require().NoError(err)

			_, err = s.Generate(types.PriceSeries{Symbol: "EMPTY"})
			suite.Equal(errors.ErrCodeEmptySeries, errors.GetCode(err))

			unordered := mocks.FromCloses("BAD", []float64{1, 2, 3})
			unordered.Bars[2].Time = unordered.Bars[0].Time
			_, err = s.Generate(unordered)
			suite.Equal(errors.ErrCodeUnorderedSeries, errors.GetCode(err))
		})
	}
}

func (suite *StrategyTestSuite) TestRejectsShortSeries() {
	short := mocks.FromCloses("SHORT", []float64{1, 2, 3, 4, 5})

	for _, name := range []types.StrategyType{
		types.StrategyTypeRSI, types.StrategyTypeBollinger, types.StrategyTypeMACD,
		types.StrategyTypeIchimoku, types.StrategyTypeStochastic, types.StrategyTypeML,
	} {
		suite.Run(string(name), func() {
			s, err := suite.registry.Get(name)
			suite.Require().NoError(err)

			_, err = s.Generate(short)
			suite.True(errors.IsInsufficientDataError(err), "got %v", err)
		})
	}
}

func (suite *StrategyTestSuite) TestMinBarsBoundary() {
	tests := []struct {
		name     types.StrategyType
		minBars  int
		lastDefs []types.IndicatorType
	}{
		{
			name:     types.StrategyTypeStochastic,
			minBars:  16,
			lastDefs: []types.IndicatorType{types.IndicatorTypeStochasticK, types.IndicatorTypeStochasticD},
		},
		{
			name:     types.StrategyTypeIchimoku,
			minBars:  78,
			lastDefs: []types.IndicatorType{types.IndicatorTypeSenkouSpanA, types.IndicatorTypeSenkouSpanB},
		},
	}

	for _, tc := range tests {
		suite.Run(string(tc.name), func() {
			s, err := suite.registry.Get(tc.name)
			suite.Require().NoError(err)
			suite.Equal(tc.minBars, s.MinBars())

			walk := mocks.NewDataGenerator(5).RandomWalk("EDGE", tc.minBars)

			_, err = s.Generate(mocks.FromCloses("EDGE", walk.Closes()[:tc.minBars-1]))
			suite.True(errors.IsInsufficientDataError(err), "got %v", err)

			result, err := s.Generate(walk)
			suite.Require().NoError(err)

			for _, name := range tc.lastDefs {
				values := result.Indicator(name)
				suite.False(types.IsUndefined(values[tc.minBars-1]), "%s undefined at the last bar", name)
			}
		})
	}
}

func (suite *StrategyTestSuite) TestHighLowRequired() {
	closesOnly := types.NewPriceSeries("CLOSE", mocks.DefaultConfig().StartTime, mocks.DefaultConfig().Interval,
		mocks.NewDataGenerator(1).RandomWalk("CLOSE", 100).Closes())

	for _, name := range []types.StrategyType{types.StrategyTypeIchimoku, types.StrategyTypeStochastic} {
		s, err := suite.registry.Get(name)
		suite.Require().NoError(err)

		_, err = s.Generate(closesOnly)
		suite.Equal(errors.ErrCodeMissingHighLow, errors.GetCode(err), string(name))
	}

	s, err := suite.registry.Get(types.StrategyTypeRSI)
	suite.Require().NoError(err)
	_, err = s.Generate(closesOnly)
	suite.NoError(err)
}

func (suite *StrategyTestSuite) TestFactoryRejectsUnknownStrategy() {
	_, err := New("momentum", DefaultConfigs())
	suite.Equal(errors.ErrCodeUnsupportedStrategy, errors.GetCode(err))
}

func (suite *StrategyTestSuite) TestConfigValidation() {
	tests := []struct {
		name   string
		mutate func(*Configs)
		target types.StrategyType
	}{
		{"ma short not below long", func(c *Configs) { c.MACrossover.ShortWindow = 200 }, types.StrategyTypeMACrossover},
		{"ma unknown mode", func(c *Configs) { c.MACrossover.Mode = "sideways" }, types.StrategyTypeMACrossover},
		{"rsi thresholds crossed", func(c *Configs) { c.RSI.Oversold = 80 }, types.StrategyTypeRSI},
		{"rsi zero window", func(c *Configs) { c.RSI.Window = 0 }, types.StrategyTypeRSI},
		{"bollinger negative std", func(c *Configs) { c.Bollinger.NumStd = -1 }, types.StrategyTypeBollinger},
		{"macd fast above slow", func(c *Configs) { c.MACD.FastPeriod = 30 }, types.StrategyTypeMACD},
		{"ichimoku zero base", func(c *Configs) { c.Ichimoku.BasePeriod = 0 }, types.StrategyTypeIchimoku},
		{"stochastic overbought above 100", func(c *Configs) { c.Stochastic.Overbought = 120 }, types.StrategyTypeStochastic},
		{"ml test size one", func(c *Configs) { c.ML.TestSize = 1 }, types.StrategyTypeML},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			cfgs := DefaultConfigs()
			tc.mutate(&cfgs)

			_, err := New(tc.target, cfgs)
			suite.Equal(errors.ErrCodeStrategyConfigError, errors.GetCode(err))

			_, err = NewDefaultRegistry(cfgs)
			suite.Error(err)
		})
	}
}

func (suite *StrategyTestSuite) TestConfigsFor() {
	cfgs := DefaultConfigs()

	suite.Equal(cfgs.RSI, cfgs.For(types.StrategyTypeRSI))
	suite.Equal(cfgs.ML, cfgs.For(types.StrategyTypeML))
	suite.Nil(cfgs.For("momentum"))

	for _, name := range types.AllStrategies {
		suite.NotNil(cfgs.For(name), name)
	}
}
