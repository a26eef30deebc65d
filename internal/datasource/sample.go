package datasource

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

const (
	// defaultSampleBars is used when no end date is given.
	defaultSampleBars = 252
	// MaxSampleBars bounds one request, about eighty years of daily bars.
	MaxSampleBars = 20000
)

// SampleFetcher generates a reproducible daily random walk starting at 100.
// The same seed, symbol and range always produce the same bars.
type SampleFetcher struct {
	seed int64
}

// NewSampleFetcher creates a sample fetcher.
func NewSampleFetcher(seed int64) *SampleFetcher {
	return &SampleFetcher{seed: seed}
}

// Fetch implements Fetcher. A zero start defaults to 2024-01-01.
func (s *SampleFetcher) Fetch(ctx context.Context, symbol string, start, end time.Time) (types.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return types.PriceSeries{}, err
	}

	if start.IsZero() {
		start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	start = start.UTC().Truncate(24 * time.Hour)

	count := defaultSampleBars
	if !end.IsZero() {
		count = int(end.UTC().Sub(start).Hours()/24) + 1
	}

	if count <= 0 {
		return finish(symbol, nil)
	}

	if count > MaxSampleBars {
		return types.PriceSeries{}, errors.Newf(errors.ErrCodeInvalidParameter,
			"sample range %s to %s spans %d bars, the limit is %d",
			start.Format(time.DateOnly), end.Format(time.DateOnly), count, MaxSampleBars)
	}

	rng := rand.New(rand.NewSource(s.seed + symbolOffset(symbol)))
	bars := make([]types.PriceBar, count)
	price := 100.0

	for i := range bars {
		open := price
		price += rng.NormFloat64()
		spread := math.Abs(rng.NormFloat64()) * 0.5

		bars[i] = types.PriceBar{
			Time:   start.AddDate(0, 0, i),
			Open:   open,
			High:   math.Max(open, price) + spread,
			Low:    math.Min(open, price) - spread,
			Close:  price,
			Volume: float64(1000 + rng.Intn(9000)),
		}
	}

	return finish(symbol, bars)
}

// symbolOffset gives each symbol its own walk under one seed.
func symbolOffset(symbol string) int64 {
	var h int64
	for _, r := range symbol {
		h = h*31 + int64(r)
	}

	return h
}
