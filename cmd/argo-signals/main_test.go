package main

import (
	"bytes"
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/stretchr/testify/suite"
)

type CLITestSuite struct {
	suite.Suite
	tempDir string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (suite *CLITestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func (suite *CLITestSuite) writeConfig(body string) string {
	path := filepath.Join(suite.tempDir, "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(body), 0600))

	return path
}

func (suite *CLITestSuite) run(args ...string) (string, error) {
	var out bytes.Buffer

	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard

	err := app.Run(context.Background(), append([]string{"argo-signals"}, args...))

	return out.String(), err
}

func (suite *CLITestSuite) TestStrategies() {
	out, err := suite.run("strategies")
	suite.Require().NoError(err)

	for _, name := range types.AllStrategies {
		suite.Contains(out, string(name))
	}

	suite.Contains(out, "short_window")
}

func (suite *CLITestSuite) TestSchemaToFile() {
	path := filepath.Join(suite.tempDir, "schema.json")

	_, err := suite.run("schema", "--output", path)
	suite.Require().NoError(err)

	data, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.Contains(string(data), "argo-signals-config")
}

func (suite *CLITestSuite) TestRunSingleJob() {
	results := filepath.Join(suite.tempDir, "results")
	cfg := suite.writeConfig(`
symbols: [AAPL, MSFT]
strategies: [macd]
formats: [csv]
data_source:
  source: sample
  seed: 7
`)

	out, err := suite.run("--config", cfg, "--log-level", "error",
		"run", "--symbol", "TSLA", "--strategy", "rsi", "--results", results)
	suite.Require().NoError(err)

	suite.Contains(out, "TSLA")
	suite.Contains(out, "rsi")
	suite.NotContains(out, "MSFT")
	suite.FileExists(filepath.Join(results, "rsi", "TSLA", "signals.csv"))
	suite.FileExists(filepath.Join(results, "stats.yaml"))
}

func (suite *CLITestSuite) TestRunWithWindow() {
	results := filepath.Join(suite.tempDir, "results")
	cfg := suite.writeConfig(`
symbols: [AAPL]
strategies: [bollinger_bands]
formats: [parquet]
`)

	_, err := suite.run("--config", cfg, "--log-level", "error",
		"run", "--start", "2024-01-01", "--results", results)
	suite.Require().NoError(err)

	suite.FileExists(filepath.Join(results, "bollinger_bands", "20240101_all", "AAPL", "signals.parquet"))
}

func (suite *CLITestSuite) TestBatch() {
	results := filepath.Join(suite.tempDir, "results")
	cfg := suite.writeConfig(`
symbols: [AAPL, MSFT]
strategies: [rsi, stochastic_oscillator]
workers: 2
formats: [csv]
`)

	out, err := suite.run("--config", cfg, "--log-level", "error", "batch", "--results", results)
	suite.Require().NoError(err)

	suite.Contains(out, "stochastic_oscillator")
	suite.Contains(out, "results written to")

	for _, symbol := range []string{"AAPL", "MSFT"} {
		suite.FileExists(filepath.Join(results, "rsi", symbol, "trades.csv"))
		suite.FileExists(filepath.Join(results, "stochastic_oscillator", symbol, "stats.yaml"))
	}
}

func (suite *CLITestSuite) TestErrors() {
	tests := []struct {
		name string
		cfg  string
		args []string
	}{
		{name: "unknown strategy", cfg: "symbols: [AAPL]\n", args: []string{"run", "--strategy", "momentum"}},
		{name: "invalid config", cfg: "initial_capital: -5\n", args: []string{"batch"}},
		{name: "end before start", cfg: "symbols: [AAPL]\n", args: []string{"run", "--start", "2024-02-01", "--end", "2024-01-01"}},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			cfg := suite.writeConfig(tc.cfg)
			args := append([]string{"--config", cfg, "--log-level", "error"}, tc.args...)

			_, err := suite.run(args...)
			suite.Error(err)
		})
	}
}

func (suite *CLITestSuite) TestFormatNumber() {
	suite.Equal("1.50", formatNumber(1.5, 2))
	suite.Equal("n/a", formatNumber(math.NaN(), 2))
	suite.Equal("n/a", formatNumber(math.Inf(1), 2))
}
