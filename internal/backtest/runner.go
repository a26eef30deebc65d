package backtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signals/internal/datasource"
	"github.com/rxtech-lab/argo-signals/internal/logger"
	"github.com/rxtech-lab/argo-signals/internal/strategy"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/internal/writer"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Lifecycle callback types for batch phases.
// Callbacks returning an error abort the batch.

// OnBacktestStartCallback is called once before any job runs.
type OnBacktestStartCallback func(totalJobs int) error

// OnBacktestEndCallback is called when the batch completes (always called via defer).
type OnBacktestEndCallback func(err error)

// OnRunStartCallback is called when a (symbol, strategy) job begins.
type OnRunStartCallback func(runID string, symbol string, strategy types.StrategyType) error

// OnRunEndCallback is called when a job ends, successfully or not.
type OnRunEndCallback func(result JobResult)

// LifecycleCallbacks holds the optional batch callbacks. Nil fields are skipped.
// Run callbacks may be invoked concurrently from several workers.
type LifecycleCallbacks struct {
	OnBacktestStart *OnBacktestStartCallback
	OnBacktestEnd   *OnBacktestEndCallback
	OnRunStart      *OnRunStartCallback
	OnRunEnd        *OnRunEndCallback
}

// RunnerConfig describes one batch of backtests.
type RunnerConfig struct {
	Symbols    []string
	Strategies []types.StrategyType
	StartTime  optional.Option[time.Time]
	EndTime    optional.Option[time.Time]
	Options    Options
	// Workers bounds concurrent jobs. Zero uses GOMAXPROCS.
	Workers int
	// ResultsFolder receives per-job exports and the aggregated stats.yaml. Each job replaces only its own
	// folder. Empty disables writing.
	ResultsFolder string
	Formats       []writer.Format
}

// JobResult is the outcome of one (symbol, strategy) job. Err is set when the job failed.
type JobResult struct {
	RunID        string
	Symbol       string
	Strategy     types.StrategyType
	Result       *RunResult
	Stats        types.RunStats
	ResultFolder string
	Err          error
}

// Runner executes the pipeline for every (symbol, strategy) pair of a batch.
type Runner struct {
	fetcher  datasource.Fetcher
	registry strategy.Registry
	log      *logger.Logger
}

// NewRunner creates a runner that reads prices from fetcher and strategies from registry.
func NewRunner(fetcher datasource.Fetcher, registry strategy.Registry, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Runner{
		fetcher:  fetcher,
		registry: registry,
		log:      log,
	}
}

type seriesOnce struct {
	once   sync.Once
	series types.PriceSeries
	err    error
}

// Run executes every job of cfg and returns their results in symbol-major order.
// A failing job does not stop the batch; a cancelled context or a callback error does.
func (r *Runner) Run(ctx context.Context, cfg RunnerConfig, callbacks LifecycleCallbacks) (results []JobResult, err error) {
	if callbacks.OnBacktestEnd != nil {
		defer func() { (*callbacks.OnBacktestEnd)(err) }()
	}

	strategies, err := r.preRunCheck(cfg)
	if err != nil {
		return nil, err
	}

	total := len(cfg.Symbols) * len(strategies)
	if callbacks.OnBacktestStart != nil {
		if err := (*callbacks.OnBacktestStart)(total); err != nil {
			return nil, err
		}
	}

	if cfg.ResultsFolder != "" {
		if err := os.MkdirAll(cfg.ResultsFolder, 0755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeWriteResultsFailed, "failed to create results folder", err)
		}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	fetches := make(map[string]*seriesOnce, len(cfg.Symbols))
	for _, symbol := range cfg.Symbols {
		fetches[symbol] = &seriesOnce{}
	}

	r.log.Info("Starting backtest batch",
		zap.Int("jobs", total),
		zap.Int("workers", workers),
		zap.Strings("symbols", cfg.Symbols),
	)

	results = make([]JobResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, symbol := range cfg.Symbols {
		for j, s := range strategies {
			idx := i*len(strategies) + j
			fetch := fetches[symbol]

			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				runID := uuid.New().String()
				if callbacks.OnRunStart != nil {
					if err := (*callbacks.OnRunStart)(runID, symbol, s.Name()); err != nil {
						return err
					}
				}

				fetch.once.Do(func() {
					fetch.series, fetch.err = r.fetcher.Fetch(gctx, symbol, cfg.StartTime.TakeOr(time.Time{}), cfg.EndTime.TakeOr(time.Time{}))
				})

				results[idx] = r.runJob(runID, symbol, s, fetch.series, fetch.err, cfg)

				if callbacks.OnRunEnd != nil {
					(*callbacks.OnRunEnd)(results[idx])
				}

				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	if cfg.ResultsFolder != "" {
		if err := writeBatchStats(cfg.ResultsFolder, results); err != nil {
			return results, err
		}
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}

	r.log.Info("Backtest batch finished", zap.Int("jobs", total), zap.Int("failed", failed))

	return results, nil
}

func (r *Runner) preRunCheck(cfg RunnerConfig) ([]strategy.Strategy, error) {
	if len(cfg.Strategies) == 0 {
		r.log.Error("No strategies selected")

		return nil, errors.New(errors.ErrCodeBacktestNoStrategies, "no strategies selected")
	}

	if len(cfg.Symbols) == 0 {
		r.log.Error("No symbols selected")

		return nil, errors.New(errors.ErrCodeBacktestNoSymbols, "no symbols selected")
	}

	if r.fetcher == nil {
		return nil, errors.New(errors.ErrCodeBacktestConfigError, "no data source configured")
	}

	strategies := make([]strategy.Strategy, len(cfg.Strategies))

	for i, name := range cfg.Strategies {
		s, err := r.registry.Get(name)
		if err != nil {
			return nil, err
		}

		strategies[i] = s
	}

	return strategies, nil
}

func (r *Runner) runJob(runID, symbol string, s strategy.Strategy, series types.PriceSeries, fetchErr error, cfg RunnerConfig) JobResult {
	res := JobResult{
		RunID:    runID,
		Symbol:   symbol,
		Strategy: s.Name(),
	}

	log := r.log.With(zap.String("run_id", runID), zap.String("symbol", symbol), zap.String("strategy", string(s.Name())))

	if fetchErr != nil {
		log.Warn("Failed to fetch prices", zap.Error(fetchErr))

		res.Err = fetchErr

		return res
	}

	out, err := Run(series, s, cfg.Options)
	if err != nil {
		log.Warn("Backtest failed", zap.Error(err))

		res.Err = err

		return res
	}

	res.Result = out
	res.Stats = types.RunStats{
		ID:        runID,
		Timestamp: time.Now().UTC(),
		Symbol:    symbol,
		Strategy:  s.Name(),
		Bars:      series.Len(),
		Metrics:   out.Metrics,
	}

	if cfg.ResultsFolder != "" {
		res.ResultFolder = resultFolder(cfg, symbol, s.Name())
		if err := writeJobResults(res.ResultFolder, cfg.Formats, &res); err != nil {
			log.Error("Failed to write results", zap.Error(err))

			res.Err = err

			return res
		}
	}

	log.Debug("Backtest finished",
		zap.Int("bars", series.Len()),
		zap.Float64("final_value", out.Metrics.FinalValue),
		zap.Float64("total_return_pct", out.Metrics.TotalReturnPct),
		zap.Int("num_trades", out.Metrics.NumTrades),
	)

	return res
}

// resultFolder is <results>/<strategy>/[<start>_<end>/]<symbol>.
func resultFolder(cfg RunnerConfig, symbol string, name types.StrategyType) string {
	folder := filepath.Join(cfg.ResultsFolder, string(name))

	if cfg.StartTime.IsSome() || cfg.EndTime.IsSome() {
		start := "all"
		end := "all"

		if cfg.StartTime.IsSome() {
			start = cfg.StartTime.Unwrap().Format("20060102")
		}

		if cfg.EndTime.IsSome() {
			end = cfg.EndTime.Unwrap().Format("20060102")
		}

		folder = filepath.Join(folder, fmt.Sprintf("%s_%s", start, end))
	}

	return filepath.Join(folder, symbol)
}

// writeJobResults replaces the job's own folder. Other content of the results folder is left alone.
func writeJobResults(folder string, formats []writer.Format, res *JobResult) error {
	if err := os.RemoveAll(folder); err != nil {
		return errors.Wrap(errors.ErrCodeWriteResultsFailed, "failed to clear previous job results", err)
	}

	if err := os.MkdirAll(folder, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeWriteResultsFailed, "failed to create result folder", err)
	}

	for _, format := range formats {
		path, err := writer.WriteSignals(folder, format, res.Result.Table)
		if err != nil {
			return err
		}

		if res.Stats.SignalsFilePath == "" {
			res.Stats.SignalsFilePath = path
		}
	}

	if err := writer.WriteTradesCSV(filepath.Join(folder, writer.LedgerFileName), res.Result.Ledger); err != nil {
		return errors.Wrap(errors.ErrCodeWriteResultsFailed, "failed to write trades", err)
	}

	if _, err := writer.WriteStats(folder, []types.RunStats{res.Stats}); err != nil {
		return errors.Wrap(errors.ErrCodeWriteResultsFailed, "failed to write stats", err)
	}

	return nil
}

func writeBatchStats(folder string, results []JobResult) error {
	stats := make([]types.RunStats, 0, len(results))
	for _, res := range results {
		if res.Err == nil && res.Result != nil {
			stats = append(stats, res.Stats)
		}
	}

	if _, err := writer.WriteStats(folder, stats); err != nil {
		return errors.Wrap(errors.ErrCodeWriteResultsFailed, "failed to write batch stats", err)
	}

	return nil
}
