package datasource

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/iter"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-signals/internal/logger"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"go.uber.org/zap"
)

// PolygonAggsIterator is the subset of the polygon aggregates iterator used here.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient is the subset of the polygon REST client used here.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

type polygonClientWrapper struct {
	client *polygon.Client
}

func (w *polygonClientWrapper) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return w.client.ListAggs(ctx, params, options...)
}

var _ PolygonAggsIterator = (*iter.Iter[models.Agg])(nil)

// PolygonFetcher downloads aggregate bars from polygon.io.
type PolygonFetcher struct {
	apiClient  PolygonAPIClient
	logger     *logger.Logger
	multiplier int
	timespan   models.Timespan
}

// NewPolygonFetcher creates a fetcher backed by the polygon REST API.
func NewPolygonFetcher(apiKey string, multiplier int, timespan models.Timespan, log *logger.Logger) (*PolygonFetcher, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "polygon source requires an api key")
	}

	return NewPolygonFetcherWithAPI(&polygonClientWrapper{client: polygon.New(apiKey)}, multiplier, timespan, log), nil
}

// NewPolygonFetcherWithAPI creates a fetcher around an existing API client.
func NewPolygonFetcherWithAPI(api PolygonAPIClient, multiplier int, timespan models.Timespan, log *logger.Logger) *PolygonFetcher {
	if multiplier <= 0 {
		multiplier = 1
	}

	if timespan == "" {
		timespan = models.Day
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &PolygonFetcher{
		apiClient:  api,
		logger:     log,
		multiplier: multiplier,
		timespan:   timespan,
	}
}

// Fetch implements Fetcher. Polygon requires both bounds; a zero end means now.
func (p *PolygonFetcher) Fetch(ctx context.Context, symbol string, start, end time.Time) (types.PriceSeries, error) {
	if start.IsZero() {
		return types.PriceSeries{}, errors.New(errors.ErrCodeMissingParameter, "polygon source requires a start date")
	}

	if end.IsZero() {
		end = time.Now().UTC()
	}

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: p.multiplier,
		Timespan:   p.timespan,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(50000)

	it := p.apiClient.ListAggs(ctx, params)

	var bars []types.PriceBar

	for it.Next() {
		agg := it.Item()
		bars = append(bars, types.PriceBar{
			Time:   time.Time(agg.Timestamp).UTC(),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}

	if err := it.Err(); err != nil {
		return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "error iterating polygon aggregates for %s", symbol)
	}

	p.logger.Info("Downloaded polygon aggregates", zap.String("symbol", symbol), zap.Int("bars", len(bars)))

	return finish(symbol, bars)
}
