package main

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-signals/internal/backtest"
	"github.com/rxtech-lab/argo-signals/internal/strategy"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"gopkg.in/yaml.v3"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

var summaryHeaders = []string{
	"Symbol", "Strategy", "Bars", "Final Value", "Return %", "Buy&Hold %", "Sharpe", "Max DD %", "Trades", "Win Rate",
}

// renderSummary renders one row per job. Failed jobs show their error instead of metrics.
func renderSummary(results []backtest.JobResult) string {
	rows := make([][]string, 0, len(results))

	for _, r := range results {
		if r.Err != nil {
			rows = append(rows, []string{r.Symbol, string(r.Strategy), "-", errorStyle.Render(r.Err.Error()),
				"", "", "", "", "", ""})

			continue
		}

		m := r.Stats.Metrics
		rows = append(rows, []string{
			r.Symbol,
			string(r.Strategy),
			fmt.Sprintf("%d", r.Stats.Bars),
			formatNumber(m.FinalValue, 2),
			formatNumber(m.TotalReturnPct, 2),
			formatNumber(m.BuyAndHoldReturnPct, 2),
			formatNumber(m.SharpeRatio, 3),
			formatNumber(m.MaxDrawdownPct, 2),
			fmt.Sprintf("%d", m.ExecutedTrades),
			formatNumber(m.WinRate*100, 1),
		})
	}

	return newTable(summaryHeaders, rows).String()
}

// renderStrategies lists every strategy with its signal domain, minimum bars and parameters.
func renderStrategies(cfgs strategy.Configs) (string, error) {
	rows := make([][]string, 0, len(types.AllStrategies))

	for _, name := range types.AllStrategies {
		s, err := strategy.New(name, cfgs)
		if err != nil {
			return "", err
		}

		params, err := yaml.Marshal(cfgs.For(name))
		if err != nil {
			return "", err
		}

		rows = append(rows, []string{
			string(name),
			fmt.Sprintf("%v", s.Domain()),
			fmt.Sprintf("%d", s.MinBars()),
			string(params),
		})
	}

	return newTable([]string{"Strategy", "Signals", "Min Bars", "Parameters"}, rows).String(), nil
}

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
}

func formatNumber(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}

	return fmt.Sprintf("%.*f", decimals, v)
}
