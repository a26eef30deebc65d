package backtest

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-signals/internal/strategy"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/mocks"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type PipelineTestSuite struct {
	suite.Suite
	configs strategy.Configs
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}

func (suite *PipelineTestSuite) SetupTest() {
	suite.configs = strategy.DefaultConfigs()
}

func (suite *PipelineTestSuite) strategy(name types.StrategyType) strategy.Strategy {
	s, err := strategy.New(name, suite.configs)
	suite.Require().NoError(err)

	return s
}

func (suite *PipelineTestSuite) TestMACrossoverRisingSeries() {
	closes := make([]float64, 300)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	series := types.NewPriceSeries("UP", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 24*time.Hour, closes)

	out, err := Run(series, suite.strategy(types.StrategyTypeMACrossover), DefaultOptions())
	suite.Require().NoError(err)

	// short and long averages coincide until bar 50, where the short one pulls ahead for good
	suite.Require().Len(out.Ledger.Trades, 1)
	buy := out.Ledger.Trades[0]
	suite.Equal(150.0, buy.Price)
	suite.Equal(666.0, buy.Shares)
	suite.Equal(100.0, buy.CashAfter)

	for i := 0; i < 50; i++ {
		suite.Equal(DefaultInitialCapital, out.Ledger.Entries[i].TotalValue, "bar %d", i)
	}

	suite.Equal(100+666*399.0, out.Metrics.FinalValue)
	suite.Equal(2, out.Metrics.NumTrades)
	suite.Equal(1, out.Metrics.ExecutedTrades)
	suite.Equal(0.0, out.Metrics.MaxDrawdownPct)
	suite.Equal(300, len(out.Table.Rows))
	suite.Equal([]types.IndicatorType{types.IndicatorTypeShortMA, types.IndicatorTypeLongMA}, out.Table.Columns)
}

func (suite *PipelineTestSuite) TestConstantPriceStaysAtCapital() {
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 100
	}

	series := mocks.FromCloses("FLAT", closes)

	for _, name := range []types.StrategyType{types.StrategyTypeBollinger, types.StrategyTypeRSI, types.StrategyTypeStochastic} {
		suite.Run(string(name), func() {
			out, err := Run(series, suite.strategy(name), DefaultOptions())
			suite.Require().NoError(err)

			for i, e := range out.Ledger.Entries {
				suite.Equal(types.SignalFlat, out.Signals.Signals[i])
				suite.Equal(DefaultInitialCapital, e.TotalValue)
			}

			suite.Equal(0, out.Metrics.NumTrades)
			suite.Equal(0.0, out.Metrics.TotalReturnPct)
			suite.Equal(0.0, out.Metrics.MaxDrawdownPct)
		})
	}
}

func (suite *PipelineTestSuite) TestIdempotent() {
	series := mocks.NewDataGenerator(42).Generate(mocks.DefaultConfig())

	for _, name := range types.AllStrategies {
		suite.Run(string(name), func() {
			s := suite.strategy(name)

			first, err := Run(series, s, DefaultOptions())
			suite.Require().NoError(err)
			second, err := Run(series, s, DefaultOptions())
			suite.Require().NoError(err)

			suite.Equal(first.Signals.Signals, second.Signals.Signals)
			suite.Equal(first.Ledger, second.Ledger)
			suite.Equal(first.Metrics.FinalValue, second.Metrics.FinalValue)
			suite.Equal(first.Metrics.RealizedPnL, second.Metrics.RealizedPnL)
		})
	}
}

func (suite *PipelineTestSuite) TestErrorsPropagate() {
	short := mocks.NewDataGenerator(1).RandomWalk("SHORT", 5)

	_, err := Run(short, suite.strategy(types.StrategyTypeBollinger), DefaultOptions())
	suite.True(errors.IsInsufficientDataError(err))

	_, err = Run(short, nil, DefaultOptions())
	suite.Equal(errors.ErrCodeStrategyNotFound, errors.GetCode(err))

	opts := DefaultOptions()
	opts.InitialCapital = -1
	_, err = Run(mocks.NewDataGenerator(1).RandomWalk("X", 50), suite.strategy(types.StrategyTypeRSI), opts)
	suite.Equal(errors.ErrCodeInvalidCapital, errors.GetCode(err))
}

func (suite *PipelineTestSuite) TestLargeSeries() {
	series := mocks.Generate10K("LARGE")

	for _, name := range types.AllStrategies {
		suite.Run(string(name), func() {
			out, err := Run(series, suite.strategy(name), DefaultOptions())
			suite.Require().NoError(err)

			suite.Len(out.Signals.Signals, series.Len())
			suite.Len(out.Ledger.Entries, series.Len())
			suite.GreaterOrEqual(out.Metrics.FinalValue, 0.0)
		})
	}
}

func BenchmarkRun10K(b *testing.B) {
	series := mocks.Generate10K("BENCH")

	s, err := strategy.New(types.StrategyTypeRSI, strategy.DefaultConfigs())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for range b.N {
		if _, err := Run(series, s, DefaultOptions()); err != nil {
			b.Fatal(err)
		}
	}
}
