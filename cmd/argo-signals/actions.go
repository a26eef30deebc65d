package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signals/internal/api"
	"github.com/rxtech-lab/argo-signals/internal/backtest"
	"github.com/rxtech-lab/argo-signals/internal/config"
	"github.com/rxtech-lab/argo-signals/internal/datasource"
	"github.com/rxtech-lab/argo-signals/internal/logger"
	"github.com/rxtech-lab/argo-signals/internal/strategy"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// loadConfig reads the configuration named by the global flags and builds the logger.
func loadConfig(cmd *cli.Command) (config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return config.Config{}, nil, err
	}

	if level := cmd.String("log-level"); level != "" {
		cfg.LogLevel = level
	}

	log, err := logger.NewLoggerWithLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return cfg, log, nil
}

// applyWindow overrides the configured time window and results folder with command flags.
func applyWindow(cmd *cli.Command, cfg *config.Config) error {
	if cmd.IsSet("start") {
		cfg.StartTime = optional.Some(cmd.Timestamp("start"))
	}

	if cmd.IsSet("end") {
		cfg.EndTime = optional.Some(cmd.Timestamp("end"))
	}

	if cmd.IsSet("results") {
		cfg.ResultsFolder = cmd.String("results")
	}

	return cfg.Validate()
}

func newRunner(cfg config.Config, log *logger.Logger) (*backtest.Runner, func(), error) {
	fetcher, err := datasource.NewFetcher(cfg.DataSource, log)
	if err != nil {
		return nil, nil, err
	}

	registry, err := strategy.NewDefaultRegistry(cfg.Parameters)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if c, ok := fetcher.(io.Closer); ok {
			_ = c.Close()
		}
	}

	return backtest.NewRunner(fetcher, registry, log), closeFn, nil
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if symbol := cmd.String("symbol"); symbol != "" {
		cfg.Symbols = []string{symbol}
	} else if len(cfg.Symbols) > 1 {
		cfg.Symbols = cfg.Symbols[:1]
	}

	if name := cmd.String("strategy"); name != "" {
		cfg.Strategies = []types.StrategyType{types.StrategyType(name)}
	} else if len(cfg.Strategies) > 1 {
		cfg.Strategies = cfg.Strategies[:1]
	}

	results, err := runBatch(ctx, cmd, cfg, log, backtest.LifecycleCallbacks{})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, renderSummary(results))

	return firstJobError(results)
}

func batchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	var bar *progressbar.ProgressBar

	onStart := backtest.OnBacktestStartCallback(func(totalJobs int) error {
		bar = progressbar.NewOptions(totalJobs,
			progressbar.OptionSetWriter(cmd.Root().ErrWriter),
			progressbar.OptionSetDescription("backtesting"),
			progressbar.OptionShowCount(),
		)

		return nil
	})
	onRunEnd := backtest.OnRunEndCallback(func(result backtest.JobResult) {
		if bar != nil {
			_ = bar.Add(1)
		}
	})

	results, err := runBatch(ctx, cmd, cfg, log, backtest.LifecycleCallbacks{
		OnBacktestStart: &onStart,
		OnRunEnd:        &onRunEnd,
	})
	if bar != nil {
		_ = bar.Finish()
	}

	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, renderSummary(results))

	if cfg.ResultsFolder != "" {
		fmt.Fprintln(cmd.Root().Writer, helpStyle.Render("results written to "+cfg.ResultsFolder))
	}

	return nil
}

func runBatch(ctx context.Context, cmd *cli.Command, cfg config.Config, log *logger.Logger,
	callbacks backtest.LifecycleCallbacks) ([]backtest.JobResult, error) {
	if err := applyWindow(cmd, &cfg); err != nil {
		return nil, err
	}

	runner, closeFn, err := newRunner(cfg, log)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	runnerCfg, err := cfg.RunnerConfig()
	if err != nil {
		return nil, err
	}

	return runner.Run(ctx, runnerCfg, callbacks)
}

func firstJobError(results []backtest.JobResult) error {
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%s/%s: %w", r.Symbol, r.Strategy, r.Err)
		}
	}

	return nil
}

func strategiesAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	out, err := renderStrategies(cfg.Parameters)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, out)

	return nil
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	cfg := config.Default()

	schema, err := cfg.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		return os.WriteFile(path, []byte(schema), 0600)
	}

	fmt.Fprintln(cmd.Root().Writer, schema)

	return nil
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	fetcher, err := datasource.NewFetcher(cfg.DataSource, log)
	if err != nil {
		return err
	}

	if c, ok := fetcher.(io.Closer); ok {
		defer c.Close()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(fetcher, cfg.Parameters, log)

	addr, err := server.Start(cmd.String("addr"))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, titleStyle.Render("serving on "+addr))

	<-ctx.Done()
	log.Info("shutting down", zap.String("addr", addr))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
