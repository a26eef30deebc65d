package datasource

import (
	"context"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-signals/internal/logger"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"go.uber.org/zap"
)

// binancePageSize is the kline limit of a single request.
const binancePageSize = 500

// BinanceKlinesService is the subset of the binance klines service used here.
type BinanceKlinesService interface {
	Symbol(symbol string) BinanceKlinesService
	Interval(interval string) BinanceKlinesService
	StartTime(startTime int64) BinanceKlinesService
	EndTime(endTime int64) BinanceKlinesService
	Do(ctx context.Context, opts ...binance.RequestOption) ([]*binance.Kline, error)
}

// BinanceAPIClient is the subset of the binance client used here.
type BinanceAPIClient interface {
	NewKlinesService() BinanceKlinesService
}

type binanceClientWrapper struct {
	client *binance.Client
}

func (w *binanceClientWrapper) NewKlinesService() BinanceKlinesService {
	return &binanceKlinesServiceWrapper{service: w.client.NewKlinesService()}
}

type binanceKlinesServiceWrapper struct {
	service *binance.KlinesService
}

func (w *binanceKlinesServiceWrapper) Symbol(symbol string) BinanceKlinesService {
	w.service = w.service.Symbol(symbol)

	return w
}

func (w *binanceKlinesServiceWrapper) Interval(interval string) BinanceKlinesService {
	w.service = w.service.Interval(interval)

	return w
}

func (w *binanceKlinesServiceWrapper) StartTime(startTime int64) BinanceKlinesService {
	w.service = w.service.StartTime(startTime)

	return w
}

func (w *binanceKlinesServiceWrapper) EndTime(endTime int64) BinanceKlinesService {
	w.service = w.service.EndTime(endTime)

	return w
}

func (w *binanceKlinesServiceWrapper) Do(ctx context.Context, opts ...binance.RequestOption) ([]*binance.Kline, error) {
	return w.service.Do(ctx, opts...)
}

// BinanceFetcher downloads klines from the public binance API.
type BinanceFetcher struct {
	apiClient BinanceAPIClient
	logger    *logger.Logger
	interval  string
}

// NewBinanceFetcher creates a fetcher backed by the public binance API.
func NewBinanceFetcher(multiplier int, timespan models.Timespan, log *logger.Logger) (*BinanceFetcher, error) {
	return NewBinanceFetcherWithAPI(&binanceClientWrapper{client: binance.NewClient("", "")}, multiplier, timespan, log)
}

// NewBinanceFetcherWithAPI creates a fetcher around an existing API client.
func NewBinanceFetcherWithAPI(api BinanceAPIClient, multiplier int, timespan models.Timespan, log *logger.Logger) (*BinanceFetcher, error) {
	if multiplier <= 0 {
		multiplier = 1
	}

	if timespan == "" {
		timespan = models.Day
	}

	interval, err := binanceInterval(timespan, multiplier)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BinanceFetcher{apiClient: api, logger: log, interval: interval}, nil
}

// Fetch implements Fetcher. Binance requires a start; a zero end means now.
func (b *BinanceFetcher) Fetch(ctx context.Context, symbol string, start, end time.Time) (types.PriceSeries, error) {
	if start.IsZero() {
		return types.PriceSeries{}, errors.New(errors.ErrCodeMissingParameter, "binance source requires a start date")
	}

	if end.IsZero() {
		end = time.Now().UTC()
	}

	endMillis := end.UnixMilli()
	current := start.UnixMilli()

	var bars []types.PriceBar

	for {
		klines, err := b.apiClient.NewKlinesService().
			Symbol(symbol).
			Interval(b.interval).
			StartTime(current).
			EndTime(endMillis).
			Do(ctx)
		if err != nil {
			return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch klines for %s", symbol)
		}

		for _, k := range klines {
			bar, err := klineToBar(k)
			if err != nil {
				return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid kline for %s", symbol)
			}

			bars = append(bars, bar)
		}

		if len(klines) < binancePageSize {
			break
		}

		current = klines[len(klines)-1].CloseTime + 1
		if current >= endMillis {
			break
		}
	}

	b.logger.Info("Downloaded binance klines", zap.String("symbol", symbol), zap.String("interval", b.interval), zap.Int("bars", len(bars)))

	return finish(symbol, bars)
}

func klineToBar(k *binance.Kline) (types.PriceBar, error) {
	var bar types.PriceBar

	bar.Time = time.UnixMilli(k.OpenTime).UTC()

	for _, field := range []struct {
		raw string
		dst *float64
	}{
		{k.Open, &bar.Open},
		{k.High, &bar.High},
		{k.Low, &bar.Low},
		{k.Close, &bar.Close},
		{k.Volume, &bar.Volume},
	} {
		v, err := strconv.ParseFloat(field.raw, 64)
		if err != nil {
			return types.PriceBar{}, err
		}

		*field.dst = v
	}

	return bar, nil
}

// binanceInterval maps a polygon-style timespan and multiplier to a binance interval.
// Ref: https://binance-docs.github.io/apidocs/spot/en/#kline-candlestick-data
func binanceInterval(timespan models.Timespan, multiplier int) (string, error) {
	switch timespan {
	case models.Minute:
		return fmt.Sprintf("%dm", multiplier), nil
	case models.Hour:
		return fmt.Sprintf("%dh", multiplier), nil
	case models.Day:
		return fmt.Sprintf("%dd", multiplier), nil
	case models.Week:
		if multiplier == 1 {
			return "1w", nil
		}

		return "", errors.Newf(errors.ErrCodeInvalidParameter, "unsupported weekly multiplier for binance: %d", multiplier)
	case models.Month:
		if multiplier == 1 {
			return "1M", nil
		}

		return "", errors.Newf(errors.ErrCodeInvalidParameter, "unsupported monthly multiplier for binance: %d", multiplier)
	default:
		return "", errors.Newf(errors.ErrCodeInvalidParameter, "unsupported timespan for binance: %s", timespan)
	}
}
