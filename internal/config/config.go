// Package config loads the application configuration from YAML, environment variables and defaults.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signals/internal/backtest"
	"github.com/rxtech-lab/argo-signals/internal/datasource"
	"github.com/rxtech-lab/argo-signals/internal/strategy"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/internal/version"
	"github.com/rxtech-lab/argo-signals/internal/writer"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	EnvLogLevel      = "ARGO_LOG_LEVEL"
	EnvPolygonAPIKey = "POLYGON_API_KEY"
)

// Config is the full application configuration.
type Config struct {
	// Version is a semver constraint the running binary must satisfy, for example ">= 0.3".
	Version        string                     `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"title=Version,description=Required argo-signals version constraint"`
	InitialCapital float64                    `yaml:"initial_capital" json:"initial_capital" validate:"gt=0" jsonschema:"title=Initial Capital,description=Starting cash of every run,minimum=0,default=100000"`
	StartTime      optional.Option[time.Time] `yaml:"-" json:"start_time,omitempty" jsonschema:"title=Start Time,description=Optional first bar time"`
	EndTime        optional.Option[time.Time] `yaml:"-" json:"end_time,omitempty" jsonschema:"title=End Time,description=Optional last bar time"`
	Symbols        []string                   `yaml:"symbols" json:"symbols" validate:"dive,required" jsonschema:"title=Symbols,description=Tickers to backtest"`
	Strategies     []types.StrategyType       `yaml:"strategies" json:"strategies" validate:"dive,required" jsonschema:"title=Strategies,description=Strategies to run for every symbol"`
	Workers        int                        `yaml:"workers" json:"workers" validate:"gte=0" jsonschema:"title=Workers,description=Concurrent jobs; 0 uses every CPU,minimum=0"`
	ResultsFolder  string                     `yaml:"results_folder" json:"results_folder" jsonschema:"title=Results Folder,description=Output directory; empty disables writing"`
	Formats        []writer.Format            `yaml:"formats" json:"formats" validate:"dive,oneof=csv parquet" jsonschema:"title=Formats,description=Signal table export formats"`
	LogLevel       string                     `yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Sizing         backtest.SizingConfig      `yaml:"sizing" json:"sizing"`
	DataSource     datasource.Config          `yaml:"data_source" json:"data_source"`
	Parameters     strategy.Configs           `yaml:"parameters" json:"parameters" jsonschema:"title=Strategy Parameters"`
}

type window struct {
	StartTime *time.Time `yaml:"start_time"`
	EndTime   *time.Time `yaml:"end_time"`
}

// UnmarshalYAML decodes over the receiver's current values, so unset keys keep their defaults.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	if err := value.Decode((*plain)(c)); err != nil {
		return err
	}

	var w window
	if err := value.Decode(&w); err != nil {
		return err
	}

	if w.StartTime != nil {
		c.StartTime = optional.Some(w.StartTime.UTC())
	}

	if w.EndTime != nil {
		c.EndTime = optional.Some(w.EndTime.UTC())
	}

	return nil
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		InitialCapital: backtest.DefaultInitialCapital,
		StartTime:      optional.None[time.Time](),
		EndTime:        optional.None[time.Time](),
		Symbols:        []string{"AAPL"},
		Strategies:     []types.StrategyType{types.StrategyTypeMACrossover},
		Workers:        0,
		ResultsFolder:  "results",
		Formats:        []writer.Format{writer.FormatCSV},
		LogLevel:       "info",
		Sizing:         backtest.DefaultSizingConfig(),
		DataSource:     datasource.DefaultConfig(),
		Parameters:     strategy.DefaultConfigs(),
	}
}

// Load reads path over the defaults, applies environment overrides and validates the result.
// An empty path loads defaults only.
func Load(path string) (Config, error) {
	var data []byte

	if path != "" {
		var err error

		data, err = os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
		}
	}

	return Parse(data, os.Getenv)
}

// Parse decodes YAML over the defaults, applies overrides from getenv and validates the result.
func Parse(data []byte, getenv func(string) string) (Config, error) {
	cfg := Default()

	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
		}
	}

	if getenv != nil {
		cfg.ApplyEnv(getenv)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv overrides the log level and fills a missing polygon API key from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if level := getenv(EnvLogLevel); level != "" {
		c.LogLevel = strings.ToLower(level)
	}

	if c.DataSource.APIKey == "" {
		c.DataSource.APIKey = getenv(EnvPolygonAPIKey)
	}
}

var validate = validator.New()

// Validate checks field constraints, the time window and every strategy parameter set.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if err := version.CheckConstraint(c.Version, version.GetVersion()); err != nil {
		return err
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && c.EndTime.Unwrap().Before(c.StartTime.Unwrap()) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "end_time is before start_time")
	}

	for _, name := range c.Strategies {
		if _, err := strategy.New(name, c.Parameters); err != nil {
			return err
		}
	}

	return nil
}

// RunnerConfig converts the configuration into a batch description.
func (c Config) RunnerConfig() (backtest.RunnerConfig, error) {
	sizing, err := backtest.GetSizingPolicy(c.Sizing)
	if err != nil {
		return backtest.RunnerConfig{}, err
	}

	return backtest.RunnerConfig{
		Symbols:       c.Symbols,
		Strategies:    c.Strategies,
		StartTime:     c.StartTime,
		EndTime:       c.EndTime,
		Options:       backtest.Options{InitialCapital: c.InitialCapital, Sizing: sizing},
		Workers:       c.Workers,
		ResultsFolder: c.ResultsFolder,
		Formats:       c.Formats,
	}, nil
}
