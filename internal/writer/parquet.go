package writer

import (
	"github.com/parquet-go/parquet-go"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// IndicatorValue is one named indicator reading within a SignalRecord.
type IndicatorValue struct {
	Name  string  `parquet:"name"`
	Value float64 `parquet:"value"`
}

// SignalRecord is the Parquet layout of a signal table row. Undefined values are stored as NaN.
type SignalRecord struct {
	Symbol          string           `parquet:"symbol"`
	Strategy        string           `parquet:"strategy"`
	Timestamp       int64            `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
	Price           float64          `parquet:"price"`
	Indicators      []IndicatorValue `parquet:"indicators"`
	Signal          int32            `parquet:"signal"`
	Position        int32            `parquet:"position"`
	CumulativeValue float64          `parquet:"cumulative_returns"`
	StrategyReturn  float64          `parquet:"strategy_returns"`
}

// WriteSignalsParquet writes table as SignalRecord rows.
func WriteSignalsParquet(path string, table types.SignalTable) error {
	return parquet.WriteFile(path, ToSignalRecords(table))
}

// ReadSignalsParquet reads a file written by WriteSignalsParquet.
func ReadSignalsParquet(path string) ([]SignalRecord, error) {
	return parquet.ReadFile[SignalRecord](path)
}

// ToSignalRecords flattens a signal table into Parquet records.
func ToSignalRecords(table types.SignalTable) []SignalRecord {
	records := make([]SignalRecord, len(table.Rows))
	for i, row := range table.Rows {
		indicators := make([]IndicatorValue, len(table.Columns))
		for j, col := range table.Columns {
			indicators[j] = IndicatorValue{Name: string(col), Value: row.Indicators[j]}
		}

		records[i] = SignalRecord{
			Symbol:          table.Symbol,
			Strategy:        string(table.Strategy),
			Timestamp:       row.Time.UnixMilli(),
			Price:           row.Price,
			Indicators:      indicators,
			Signal:          int32(row.Signal),
			Position:        int32(row.Delta),
			CumulativeValue: row.CumulativeValue,
			StrategyReturn:  row.StrategyReturn,
		}
	}

	return records
}
