package types

import "time"

// SignalRow is one bar of the exported signal table.
type SignalRow struct {
	Time  time.Time
	Price float64
	// Indicators is aligned with SignalTable.Columns.
	Indicators      []float64
	Signal          Signal
	Delta           int
	CumulativeValue float64
	StrategyReturn  float64
}

// SignalTable is the per-bar output of a backtest run.
type SignalTable struct {
	Symbol   string
	Strategy StrategyType
	Columns  []IndicatorType
	Rows     []SignalRow
}

// NewSignalTable joins a series, its indicators, signals and ledger into rows.
// All inputs must have the same length as the series.
func NewSignalTable(series PriceSeries, strategy StrategyType, indicators []IndicatorSeries,
	signals []Signal, ledger *Ledger) SignalTable {
	columns := make([]IndicatorType, len(indicators))
	for i, ind := range indicators {
		columns[i] = ind.Name
	}

	rows := make([]SignalRow, len(series.Bars))
	for i, bar := range series.Bars {
		values := make([]float64, len(indicators))
		for j, ind := range indicators {
			values[j] = ind.Values[i]
		}

		rows[i] = SignalRow{
			Time:            bar.Time,
			Price:           bar.Close,
			Indicators:      values,
			Signal:          signals[i],
			Delta:           ledger.Entries[i].Delta,
			CumulativeValue: ledger.Entries[i].TotalValue,
			StrategyReturn:  ledger.Entries[i].StrategyReturn,
		}
	}

	return SignalTable{
		Symbol:   series.Symbol,
		Strategy: strategy,
		Columns:  columns,
		Rows:     rows,
	}
}
