package writer

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// WriteSignalsCSV writes one row per bar: timestamp, price, each indicator column, signal,
// position delta, cumulative value and strategy return. Undefined values are written as empty cells.
func WriteSignalsCSV(path string, table types.SignalTable) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := gocsv.NewSafeCSVWriter(csv.NewWriter(file))

	header := []string{"timestamp", "price"}
	for _, col := range table.Columns {
		header = append(header, string(col))
	}

	header = append(header, "signal", "position", "cumulative_returns", "strategy_returns")

	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range table.Rows {
		record := make([]string, 0, len(header))
		record = append(record, row.Time.Format(time.RFC3339), formatFloat(row.Price))

		for _, v := range row.Indicators {
			record = append(record, formatFloat(v))
		}

		record = append(record,
			strconv.Itoa(int(row.Signal)),
			strconv.Itoa(row.Delta),
			formatFloat(row.CumulativeValue),
			formatFloat(row.StrategyReturn),
		)

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return err
	}

	return file.Sync()
}

// tradeRow is the CSV layout of a trade journal entry.
type tradeRow struct {
	ID          string  `csv:"id"`
	Timestamp   string  `csv:"timestamp"`
	Side        string  `csv:"side"`
	Shares      float64 `csv:"shares"`
	Price       float64 `csv:"price"`
	CashAfter   float64 `csv:"cash_after"`
	RealizedPnL string  `csv:"realized_pnl"`
}

// WriteTradesCSV writes the ledger's trade journal.
func WriteTradesCSV(path string, ledger *types.Ledger) error {
	rows := make([]*tradeRow, len(ledger.Trades))
	for i, t := range ledger.Trades {
		rows[i] = &tradeRow{
			ID:          t.ID,
			Timestamp:   t.Time.Format(time.RFC3339),
			Side:        string(t.Side),
			Shares:      t.Shares,
			Price:       t.Price,
			CashAfter:   t.CashAfter,
			RealizedPnL: t.RealizedPnL.StringFixed(2),
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return gocsv.MarshalFile(&rows, file)
}

func formatFloat(v float64) string {
	if types.IsUndefined(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
