package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PerformanceMetrics summarises a single backtest run.
type PerformanceMetrics struct {
	// Initial capital.
	InitialInvestment float64 `yaml:"initial_investment" json:"initial_investment"`
	// Portfolio value at the last bar.
	FinalValue float64 `yaml:"final_value" json:"final_value"`
	// (final / initial - 1) * 100.
	TotalReturnPct float64 `yaml:"total_return_pct" json:"total_return_pct"`
	// Bars with a non-zero position delta.
	NumTrades int `yaml:"num_trades" json:"num_trades"`
	// Annualised Sharpe ratio of per-bar returns. NaN when returns have no variance.
	SharpeRatio float64 `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	// Worst peak-to-trough decline in percent, always <= 0.
	MaxDrawdownPct float64 `yaml:"max_drawdown_pct" json:"max_drawdown_pct"`
	// Fills actually executed by the accountant.
	ExecutedTrades int `yaml:"executed_trades" json:"executed_trades"`
	// Share of closed round trips with positive realized PnL.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// Sum of realized PnL over all sells.
	RealizedPnL float64 `yaml:"realized_pnl" json:"realized_pnl"`
	// Return of holding the initial capital from the first defined price.
	BuyAndHoldReturnPct float64 `yaml:"buy_and_hold_return_pct" json:"buy_and_hold_return_pct"`
}

// RunStats is the persisted record of one (symbol, strategy) backtest.
type RunStats struct {
	ID        string             `yaml:"id" json:"id"`
	Timestamp time.Time          `yaml:"timestamp" json:"timestamp"`
	Symbol    string             `yaml:"symbol" json:"symbol"`
	Strategy  StrategyType       `yaml:"strategy" json:"strategy"`
	Bars      int                `yaml:"bars" json:"bars"`
	Metrics   PerformanceMetrics `yaml:"metrics" json:"metrics"`
	// SignalsFilePath is the path to the exported signal table, if any.
	SignalsFilePath string `yaml:"signals_file_path,omitempty" json:"signals_file_path,omitempty"`
}

// WriteRunStats writes stats as YAML to path.
func WriteRunStats(path string, stats []RunStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal run stats to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run stats to file: %w", err)
	}

	return nil
}
