package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-signals/internal/types"
)

// DataGenerator generates synthetic price series for tests and benchmarks.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how bars are generated.
type GeneratorConfig struct {
	Symbol       string
	StartTime    time.Time
	Interval     time.Duration
	Count        int
	InitialPrice float64
	// Volatility is the standard deviation of the per-bar return (0.01 = 1%).
	Volatility float64
	// Trend is the total drift spread across all bars.
	Trend float64
	// VolumeBase is the average volume per bar.
	VolumeBase float64
}

// DefaultConfig returns 252 daily bars starting at 100.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:       "TEST",
		StartTime:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Interval:     24 * time.Hour,
		Count:        252,
		InitialPrice: 100.0,
		Volatility:   0.015,
		Trend:        0.0,
		VolumeBase:   1_000_000,
	}
}

// Generate creates OHLCV bars following geometric Brownian motion.
func (g *DataGenerator) Generate(config GeneratorConfig) types.PriceSeries {
	bars := make([]types.PriceBar, config.Count)
	price := config.InitialPrice
	current := config.StartTime

	for i := 0; i < config.Count; i++ {
		open := price

		drift := config.Trend / float64(config.Count)
		closePrice := open * (1 + config.Volatility*g.rng.NormFloat64() + drift)
		if closePrice <= 0 {
			closePrice = open * 0.99
		}

		high := math.Max(open, closePrice) + math.Abs(g.rng.Float64()*config.Volatility*open*0.5)
		low := math.Min(open, closePrice) - math.Abs(g.rng.Float64()*config.Volatility*open*0.5)
		if low <= 0 {
			low = math.Min(open, closePrice) * 0.99
		}

		bars[i] = types.PriceBar{
			Time:   current,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(closePrice, 4),
			Volume: roundToDecimals(config.VolumeBase*(0.7+0.6*g.rng.Float64()), 0),
		}

		price = closePrice
		current = current.Add(config.Interval)
	}

	return types.PriceSeries{Symbol: config.Symbol, Bars: bars}
}

// RandomWalk returns daily bars whose closes are 100 plus the cumulative sum of standard normal
// steps. High and low sit half a point around the close.
func (g *DataGenerator) RandomWalk(symbol string, count int) types.PriceSeries {
	closes := make([]float64, count)
	level := 100.0

	for i := range closes {
		level += g.rng.NormFloat64()
		closes[i] = level
	}

	return FromCloses(symbol, closes)
}

// FromCloses builds daily bars from closes with high and low half a point around each close.
func FromCloses(symbol string, closes []float64) types.PriceSeries {
	start := DefaultConfig().StartTime
	bars := make([]types.PriceBar, len(closes))

	for i, c := range closes {
		bars[i] = types.PriceBar{
			Time:   start.Add(time.Duration(i) * 24 * time.Hour),
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 1000,
		}
	}

	return types.PriceSeries{Symbol: symbol, Bars: bars}
}

// Generate10K returns 10,000 bars with default settings for benchmarking.
func Generate10K(symbol string) types.PriceSeries {
	gen := NewDataGenerator(42)
	config := DefaultConfig()
	config.Symbol = symbol
	config.Count = 10000

	return gen.Generate(config)
}

func roundToDecimals(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(v*pow) / pow
}
