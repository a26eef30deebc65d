package backtest

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"github.com/shopspring/decimal"
)

// Replay walks the series once, applying each position delta at the bar's close.
//
// A positive delta buys the shares chosen by sizing, a negative delta sells the whole position,
// and zero holds. Bars with an undefined price carry the previous portfolio value forward and
// drop any requested action. A nil sizing spends all cash.
func Replay(series types.PriceSeries, deltas []int, initialCapital float64, sizing SizingPolicy) (*types.Ledger, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	if len(deltas) != series.Len() {
		return nil, errors.Newf(errors.ErrCodeLengthMismatch,
			"got %d deltas for %d bars", len(deltas), series.Len())
	}

	if types.IsUndefined(initialCapital) || initialCapital <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidCapital, "initial capital must be positive, got %v", initialCapital)
	}

	if sizing == nil {
		sizing = NewAllCashSizing()
	}

	ledger := &types.Ledger{
		Symbol:         series.Symbol,
		InitialCapital: initialCapital,
		Entries:        make([]types.LedgerEntry, series.Len()),
		Trades:         nil,
	}

	var (
		cash      = initialCapital
		shares    = 0.0
		costBasis = decimal.Zero
		mark      = math.NaN()
		prevTotal = initialCapital
		firstMark = math.NaN()
	)

	for i, bar := range series.Bars {
		price := bar.Close
		entry := types.LedgerEntry{
			Time:   bar.Time,
			Price:  price,
			Delta:  deltas[i],
			Action: types.LedgerActionHold,
		}

		if !validPrice(price) {
			entry.Action = types.LedgerActionSkip
		} else {
			mark = price
			if math.IsNaN(firstMark) {
				firstMark = price
			}

			switch {
			case deltas[i] > 0:
				n := sizing.SharesToBuy(cash, price, cash+shares*price)
				if n > 0 {
					cost := n * price
					cash -= cost
					shares += n
					costBasis = costBasis.Add(decimal.NewFromFloat(cost))
					entry.Action = types.LedgerActionBuy

					ledger.Trades = append(ledger.Trades, newTrade(series.Symbol, len(ledger.Trades), bar, types.TradeSideBuy, n, cash, decimal.Zero))
				}
			case deltas[i] < 0:
				if shares > 0 {
					sold := shares
					proceeds := sold * price
					pnl := decimal.NewFromFloat(proceeds).Sub(costBasis)
					cash += proceeds
					shares = 0
					costBasis = decimal.Zero
					entry.Action = types.LedgerActionSell

					ledger.Trades = append(ledger.Trades, newTrade(series.Symbol, len(ledger.Trades), bar, types.TradeSideSell, sold, cash, pnl))
				}
			}
		}

		entry.MarkPrice = mark
		entry.Cash = cash
		entry.Shares = shares

		if shares > 0 {
			entry.HoldingsValue = shares * mark
		}

		entry.TotalValue = cash + entry.HoldingsValue

		if i > 0 && prevTotal != 0 {
			entry.StrategyReturn = entry.TotalValue/prevTotal - 1
		}

		entry.BuyAndHoldValue = initialCapital
		if !math.IsNaN(firstMark) {
			entry.BuyAndHoldValue = initialCapital * mark / firstMark
		}

		ledger.Entries[i] = entry
		prevTotal = entry.TotalValue
	}

	return ledger, nil
}

// tradeID derives a name-based UUID from the fill's position in the journal, so replaying the same
// inputs yields the same IDs.
func tradeID(symbol string, seq int, bar types.PriceBar, side types.TradeSide) string {
	name := fmt.Sprintf("%s/%d/%s/%d", symbol, bar.Time.UnixNano(), side, seq)

	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func newTrade(symbol string, seq int, bar types.PriceBar, side types.TradeSide, shares, cashAfter float64,
	pnl decimal.Decimal) types.Trade {
	return types.Trade{
		ID:          tradeID(symbol, seq, bar, side),
		Time:        bar.Time,
		Side:        side,
		Shares:      shares,
		Price:       bar.Close,
		CashAfter:   cashAfter,
		RealizedPnL: pnl,
	}
}

func validPrice(p float64) bool {
	return !types.IsUndefined(p) && p > 0
}
