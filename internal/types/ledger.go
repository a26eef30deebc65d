package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerAction records what the accountant did at a bar.
type LedgerAction string

const (
	LedgerActionHold LedgerAction = "hold"
	LedgerActionBuy  LedgerAction = "buy"
	LedgerActionSell LedgerAction = "sell"
	// LedgerActionSkip marks a bar whose price was undefined; any requested action was dropped.
	LedgerActionSkip LedgerAction = "skip"
)

// LedgerEntry is the portfolio state after processing one bar.
type LedgerEntry struct {
	Time time.Time
	// Price is the bar's close as supplied, possibly NaN.
	Price float64
	// MarkPrice is the last defined price at or before this bar. NaN until the first defined price.
	MarkPrice      float64
	Delta          int
	Action         LedgerAction
	Cash           float64
	Shares         float64
	HoldingsValue  float64
	TotalValue     float64
	StrategyReturn float64
	// BuyAndHoldValue is the value of investing the initial capital at the first defined price.
	BuyAndHoldValue float64
}

// TradeSide is the direction of an executed fill.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// Trade is an executed fill in the trade journal.
type Trade struct {
	ID     string
	Time   time.Time
	Side   TradeSide
	Shares float64
	Price  float64
	// CashAfter is the cash balance after the fill.
	CashAfter float64
	// RealizedPnL is set on sells: proceeds minus the cost basis of the shares sold.
	RealizedPnL decimal.Decimal
}

// Ledger is the full, read-only result of replaying position deltas against a price series.
type Ledger struct {
	Symbol         string
	InitialCapital float64
	Entries        []LedgerEntry
	Trades         []Trade
}

// TotalValues returns the cumulative portfolio value per bar.
func (l *Ledger) TotalValues() []float64 {
	out := make([]float64, len(l.Entries))
	for i, e := range l.Entries {
		out[i] = e.TotalValue
	}

	return out
}

// StrategyReturns returns the per-bar percentage change of the portfolio value.
func (l *Ledger) StrategyReturns() []float64 {
	out := make([]float64, len(l.Entries))
	for i, e := range l.Entries {
		out[i] = e.StrategyReturn
	}

	return out
}

// Deltas returns the position deltas the ledger was replayed with.
func (l *Ledger) Deltas() []int {
	out := make([]int, len(l.Entries))
	for i, e := range l.Entries {
		out[i] = e.Delta
	}

	return out
}

// FinalValue returns the portfolio value at the last bar, or the initial capital for an empty ledger.
func (l *Ledger) FinalValue() float64 {
	if len(l.Entries) == 0 {
		return l.InitialCapital
	}

	return l.Entries[len(l.Entries)-1].TotalValue
}
