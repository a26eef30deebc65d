// Package datasource loads price series from files, databases and market data providers.
package datasource

import (
	"context"
	"sort"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-signals/internal/logger"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// Fetcher returns the bars of one symbol within [start, end]. A zero bound is open.
// An empty result is an error with code ErrCodeNoDataFound.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string, start, end time.Time) (types.PriceSeries, error)
}

// SourceType names a price data source.
type SourceType string

const (
	SourceCSV     SourceType = "csv"
	SourceDuckDB  SourceType = "duckdb"
	SourcePolygon SourceType = "polygon"
	SourceBinance SourceType = "binance"
	SourceSample  SourceType = "sample"
)

// AllSources lists every supported source.
var AllSources = []SourceType{SourceCSV, SourceDuckDB, SourcePolygon, SourceBinance, SourceSample}

// Config selects and configures a source.
type Config struct {
	Source SourceType `yaml:"source" json:"source" validate:"required,oneof=csv duckdb polygon binance sample"`
	// Path to a file, for csv and duckdb. "{symbol}" is replaced with the requested symbol.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
	// SymbolColumn filters duckdb rows by symbol. Empty disables filtering.
	SymbolColumn string `yaml:"symbol_column,omitempty" json:"symbol_column,omitempty"`
	// APIKey is required for polygon.
	APIKey string `yaml:"api_key,omitempty" json:"-"`
	// Timespan and Multiplier select the bar size for polygon and binance.
	Timespan   models.Timespan `yaml:"timespan,omitempty" json:"timespan,omitempty"`
	Multiplier int             `yaml:"multiplier,omitempty" json:"multiplier,omitempty" validate:"gte=0"`
	// Seed for the sample source.
	Seed int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// DefaultConfig reads from the seeded sample walk with daily bars.
func DefaultConfig() Config {
	return Config{
		Source:       SourceSample,
		Path:         "",
		SymbolColumn: "symbol",
		APIKey:       "",
		Timespan:     models.Day,
		Multiplier:   1,
		Seed:         42,
	}
}

// NewFetcher creates the fetcher selected by cfg.Source.
func NewFetcher(cfg Config, log *logger.Logger) (Fetcher, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	var (
		fetcher Fetcher
		err     error
	)

	switch cfg.Source {
	case SourceCSV:
		fetcher, err = asFetcher(NewCSVFetcher(cfg.Path, log))
	case SourceDuckDB:
		fetcher, err = asFetcher(NewDuckDBFetcher(cfg.Path, cfg.SymbolColumn, log))
	case SourcePolygon:
		fetcher, err = asFetcher(NewPolygonFetcher(cfg.APIKey, cfg.Multiplier, cfg.Timespan, log))
	case SourceBinance:
		fetcher, err = asFetcher(NewBinanceFetcher(cfg.Multiplier, cfg.Timespan, log))
	case SourceSample:
		fetcher = NewSampleFetcher(cfg.Seed)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported data source: %q", cfg.Source)
	}

	if err != nil {
		return nil, err
	}

	return fetcher, nil
}

// asFetcher keeps a failed constructor from producing a non-nil interface holding a nil pointer.
func asFetcher[T Fetcher](f T, err error) (Fetcher, error) {
	if err != nil {
		return nil, err
	}

	return f, nil
}

// finish sorts bars by time, drops duplicate timestamps (last wins) and rejects an empty result.
func finish(symbol string, bars []types.PriceBar) (types.PriceSeries, error) {
	if len(bars) == 0 {
		return types.PriceSeries{}, errors.Newf(errors.ErrCodeNoDataFound, "no data found for %s", symbol)
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	out := bars[:0]
	for _, b := range bars {
		if len(out) > 0 && out[len(out)-1].Time.Equal(b.Time) {
			out[len(out)-1] = b

			continue
		}

		out = append(out, b)
	}

	series := types.PriceSeries{Symbol: symbol, Bars: out}

	return series, series.Validate()
}

func inRange(t, start, end time.Time) bool {
	if !start.IsZero() && t.Before(start) {
		return false
	}

	if !end.IsZero() && t.After(end) {
		return false
	}

	return true
}
