package datasource

import (
	"context"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-signals/internal/logger"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"go.uber.org/zap"
)

// csvBar is one row of a price CSV. Numeric columns are kept as text so blanks can become NaN.
type csvBar struct {
	Symbol string `csv:"symbol"`
	Time   string `csv:"time"`
	Open   string `csv:"open"`
	High   string `csv:"high"`
	Low    string `csv:"low"`
	Close  string `csv:"close"`
	Volume string `csv:"volume"`
}

var csvTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CSVFetcher reads bars from a CSV file with a header of time,open,high,low,close,volume
// and an optional symbol column.
type CSVFetcher struct {
	pathTemplate string
	logger       *logger.Logger
}

// NewCSVFetcher creates a CSV fetcher. "{symbol}" in path is replaced on each fetch.
func NewCSVFetcher(path string, log *logger.Logger) (*CSVFetcher, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "csv source requires a path")
	}

	return &CSVFetcher{pathTemplate: path, logger: log}, nil
}

// Fetch implements Fetcher.
func (f *CSVFetcher) Fetch(ctx context.Context, symbol string, start, end time.Time) (types.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return types.PriceSeries{}, err
	}

	path := resolvePath(f.pathTemplate, symbol)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeDataNotFound, err, "price file %s not found", path)
		}

		return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to open %s", path)
	}
	defer file.Close()

	var rows []*csvBar
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "failed to parse %s", path)
	}

	bars := make([]types.PriceBar, 0, len(rows))

	for i, row := range rows {
		if row.Symbol != "" && !strings.EqualFold(row.Symbol, symbol) {
			continue
		}

		bar, err := row.toBar()
		if err != nil {
			return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "%s row %d", path, i+1)
		}

		if inRange(bar.Time, start, end) {
			bars = append(bars, bar)
		}
	}

	f.logger.Debug("Loaded CSV prices",
		zap.String("symbol", symbol),
		zap.String("path", path),
		zap.Int("rows", len(rows)),
		zap.Int("bars", len(bars)),
	)

	return finish(symbol, bars)
}

func (r *csvBar) toBar() (types.PriceBar, error) {
	t, err := parseTime(r.Time)
	if err != nil {
		return types.PriceBar{}, err
	}

	var bar types.PriceBar

	bar.Time = t

	for _, field := range []struct {
		raw string
		dst *float64
	}{
		{r.Open, &bar.Open},
		{r.High, &bar.High},
		{r.Low, &bar.Low},
		{r.Close, &bar.Close},
		{r.Volume, &bar.Volume},
	} {
		v, err := parseFloat(field.raw)
		if err != nil {
			return types.PriceBar{}, err
		}

		*field.dst = v
	}

	return bar, nil
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range csvTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}

	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}

	return time.Time{}, errors.Newf(errors.ErrCodeMarketDataParseFailed, "unrecognised timestamp %q", raw)
}

// parseFloat treats blank and "NaN" cells as missing.
func parseFloat(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "nan") || strings.EqualFold(raw, "null") {
		return math.NaN(), nil
	}

	return strconv.ParseFloat(raw, 64)
}

func resolvePath(template, symbol string) string {
	return strings.ReplaceAll(template, "{symbol}", symbol)
}
