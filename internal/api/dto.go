package api

import (
	"encoding/json"
	"time"

	"github.com/rxtech-lab/argo-signals/internal/backtest"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

type backtestRequest struct {
	Symbol         string                 `json:"symbol" validate:"required"`
	Strategy       types.StrategyType     `json:"strategy" validate:"required"`
	Start          *time.Time             `json:"start,omitempty"`
	End            *time.Time             `json:"end,omitempty"`
	InitialCapital float64                `json:"initial_capital,omitempty" validate:"gte=0"`
	Sizing         *backtest.SizingConfig `json:"sizing,omitempty"`
	// Parameters overrides the default strategy parameters. It has the shape of the
	// configuration file's parameters section.
	Parameters     json.RawMessage `json:"parameters,omitempty"`
	IncludeSignals bool            `json:"include_signals,omitempty"`
}

type errorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

type strategyInfo struct {
	Name       types.StrategyType `json:"name"`
	Domain     types.SignalDomain `json:"domain"`
	MinBars    int                `json:"min_bars"`
	Parameters any                `json:"parameters"`
}

// Undefined values are encoded as null since JSON has no NaN.
type metricsResponse struct {
	InitialInvestment   *float64 `json:"initial_investment"`
	FinalValue          *float64 `json:"final_value"`
	TotalReturnPct      *float64 `json:"total_return_pct"`
	NumTrades           int      `json:"num_trades"`
	SharpeRatio         *float64 `json:"sharpe_ratio"`
	MaxDrawdownPct      *float64 `json:"max_drawdown_pct"`
	ExecutedTrades      int      `json:"executed_trades"`
	WinRate             *float64 `json:"win_rate"`
	RealizedPnL         *float64 `json:"realized_pnl"`
	BuyAndHoldReturnPct *float64 `json:"buy_and_hold_return_pct"`
}

type tradeResponse struct {
	ID          string          `json:"id"`
	Time        time.Time       `json:"time"`
	Side        types.TradeSide `json:"side"`
	Shares      float64         `json:"shares"`
	Price       float64         `json:"price"`
	CashAfter   float64         `json:"cash_after"`
	RealizedPnL string          `json:"realized_pnl"`
}

type signalRow struct {
	Time            time.Time           `json:"time"`
	Price           *float64            `json:"price"`
	Indicators      map[string]*float64 `json:"indicators"`
	Signal          types.Signal        `json:"signal"`
	Position        int                 `json:"position"`
	CumulativeValue *float64            `json:"cumulative_value"`
	StrategyReturn  *float64            `json:"strategy_return"`
}

type backtestResponse struct {
	Symbol   string             `json:"symbol"`
	Strategy types.StrategyType `json:"strategy"`
	Bars     int                `json:"bars"`
	Metrics  metricsResponse    `json:"metrics"`
	Trades   []tradeResponse    `json:"trades"`
	Signals  []signalRow        `json:"signals,omitempty"`
}

func newBacktestResponse(series types.PriceSeries, result *backtest.RunResult, withSignals bool) backtestResponse {
	m := result.Metrics

	response := backtestResponse{
		Symbol:   series.Symbol,
		Strategy: result.Signals.Strategy,
		Bars:     series.Len(),
		Metrics: metricsResponse{
			InitialInvestment:   number(m.InitialInvestment),
			FinalValue:          number(m.FinalValue),
			TotalReturnPct:      number(m.TotalReturnPct),
			NumTrades:           m.NumTrades,
			SharpeRatio:         number(m.SharpeRatio),
			MaxDrawdownPct:      number(m.MaxDrawdownPct),
			ExecutedTrades:      m.ExecutedTrades,
			WinRate:             number(m.WinRate),
			RealizedPnL:         number(m.RealizedPnL),
			BuyAndHoldReturnPct: number(m.BuyAndHoldReturnPct),
		},
		Trades: make([]tradeResponse, len(result.Ledger.Trades)),
	}

	for i, t := range result.Ledger.Trades {
		response.Trades[i] = tradeResponse{
			ID:          t.ID,
			Time:        t.Time,
			Side:        t.Side,
			Shares:      t.Shares,
			Price:       t.Price,
			CashAfter:   t.CashAfter,
			RealizedPnL: t.RealizedPnL.StringFixed(2),
		}
	}

	if !withSignals {
		return response
	}

	table := result.Table
	response.Signals = make([]signalRow, len(table.Rows))

	for i, row := range table.Rows {
		indicators := make(map[string]*float64, len(table.Columns))
		for j, col := range table.Columns {
			indicators[string(col)] = number(row.Indicators[j])
		}

		response.Signals[i] = signalRow{
			Time:            row.Time,
			Price:           number(row.Price),
			Indicators:      indicators,
			Signal:          row.Signal,
			Position:        row.Delta,
			CumulativeValue: number(row.CumulativeValue),
			StrategyReturn:  number(row.StrategyReturn),
		}
	}

	return response
}

func number(v float64) *float64 {
	if types.IsUndefined(v) {
		return nil
	}

	return &v
}
