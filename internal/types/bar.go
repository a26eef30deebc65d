package types

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// PriceBar is one observation of a price series. Missing values are NaN.
type PriceBar struct {
	Time   time.Time `json:"time" yaml:"time"`
	Open   float64   `json:"open" yaml:"open"`
	High   float64   `json:"high" yaml:"high"`
	Low    float64   `json:"low" yaml:"low"`
	Close  float64   `json:"close" yaml:"close"`
	Volume float64   `json:"volume" yaml:"volume"`
}

// PriceSeries is an ordered sequence of bars for one symbol.
// Timestamps are strictly increasing; gaps between bars are allowed.
type PriceSeries struct {
	Symbol string     `json:"symbol" yaml:"symbol"`
	Bars   []PriceBar `json:"bars" yaml:"bars"`
}

// NewPriceSeries builds a series from closing prices only, one bar per interval starting at start.
// High and low are left undefined.
func NewPriceSeries(symbol string, start time.Time, interval time.Duration, closes []float64) PriceSeries {
	bars := make([]PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = PriceBar{
			Time:   start.Add(time.Duration(i) * interval),
			Open:   c,
			High:   math.NaN(),
			Low:    math.NaN(),
			Close:  c,
			Volume: math.NaN(),
		}
	}

	return PriceSeries{Symbol: symbol, Bars: bars}
}

// Len returns the number of bars.
func (s PriceSeries) Len() int {
	return len(s.Bars)
}

// Validate checks that the series is non-empty and strictly increasing in time.
func (s PriceSeries) Validate() error {
	if len(s.Bars) == 0 {
		return errors.Newf(errors.ErrCodeEmptySeries, "price series %q is empty", s.Symbol)
	}

	for i := 1; i < len(s.Bars); i++ {
		if !s.Bars[i].Time.After(s.Bars[i-1].Time) {
			return errors.Newf(errors.ErrCodeUnorderedSeries,
				"price series %q is not strictly increasing at index %d (%s after %s)",
				s.Symbol, i, s.Bars[i].Time.Format(time.RFC3339), s.Bars[i-1].Time.Format(time.RFC3339))
		}
	}

	return nil
}

// HasHighLow reports whether every bar with a defined close also has defined high and low.
func (s PriceSeries) HasHighLow() bool {
	if len(s.Bars) == 0 {
		return false
	}

	for _, b := range s.Bars {
		if IsUndefined(b.Close) {
			continue
		}

		if IsUndefined(b.High) || IsUndefined(b.Low) {
			return false
		}
	}

	return true
}

// Closes returns the closing prices.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}

	return out
}

// Highs returns the high prices.
func (s PriceSeries) Highs() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.High
	}

	return out
}

// Lows returns the low prices.
func (s PriceSeries) Lows() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Low
	}

	return out
}

// Times returns the bar timestamps.
func (s PriceSeries) Times() []time.Time {
	out := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Time
	}

	return out
}

// Between returns the bars within [start, end]. A zero bound is open.
func (s PriceSeries) Between(start, end time.Time) PriceSeries {
	bars := make([]PriceBar, 0, len(s.Bars))
	for _, b := range s.Bars {
		if !start.IsZero() && b.Time.Before(start) {
			continue
		}

		if !end.IsZero() && b.Time.After(end) {
			continue
		}

		bars = append(bars, b)
	}

	return PriceSeries{Symbol: s.Symbol, Bars: bars}
}

// IsUndefined reports whether v is NaN or infinite.
func IsUndefined(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
