package indicator

// IchimokuResult holds the five Ichimoku lines.
type IchimokuResult struct {
	// Conversion line (tenkan-sen).
	Conversion []float64
	// Base line (kijun-sen).
	Base []float64
	// Leading span A, plotted basePeriod bars ahead.
	SpanA []float64
	// Leading span B, plotted basePeriod bars ahead.
	SpanB []float64
	// Lagging span: close plotted laggingPeriod bars back.
	Lagging []float64
}

// Ichimoku computes the Ichimoku cloud. Leading spans computed at bar t are reported at bar
// t+basePeriod, so they have a basePeriod-bar undefined prefix on top of their lookback.
// The lagging span has a laggingPeriod-bar undefined suffix.
func Ichimoku(highs, lows, closes []float64, conversionPeriod, basePeriod, spanBPeriod, laggingPeriod int) (IchimokuResult, error) {
	periods := []struct {
		name  string
		value int
	}{
		{"conversionPeriod", conversionPeriod},
		{"basePeriod", basePeriod},
		{"spanBPeriod", spanBPeriod},
		{"laggingPeriod", laggingPeriod},
	}
	for _, p := range periods {
		if err := checkPeriod(p.name, p.value); err != nil {
			return IchimokuResult{}, err
		}
	}

	if err := checkInput("Ichimoku", closes); err != nil {
		return IchimokuResult{}, err
	}

	if err := checkAligned("Ichimoku", closes, highs, lows); err != nil {
		return IchimokuResult{}, err
	}

	conversion, err := midpoint(highs, lows, conversionPeriod)
	if err != nil {
		return IchimokuResult{}, err
	}

	base, err := midpoint(highs, lows, basePeriod)
	if err != nil {
		return IchimokuResult{}, err
	}

	spanBRaw, err := midpoint(highs, lows, spanBPeriod)
	if err != nil {
		return IchimokuResult{}, err
	}

	spanARaw := make([]float64, len(closes))
	for i := range closes {
		spanARaw[i] = (conversion[i] + base[i]) / 2
	}

	return IchimokuResult{
		Conversion: conversion,
		Base:       base,
		SpanA:      Shift(spanARaw, basePeriod),
		SpanB:      Shift(spanBRaw, basePeriod),
		Lagging:    Shift(closes, -laggingPeriod),
	}, nil
}

// midpoint is (highest high + lowest low) / 2 over a full window.
func midpoint(highs, lows []float64, period int) ([]float64, error) {
	hi, err := RollingMax(highs, period, period)
	if err != nil {
		return nil, err
	}

	lo, err := RollingMin(lows, period, period)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(highs))
	for i := range highs {
		out[i] = (hi[i] + lo[i]) / 2
	}

	return out, nil
}
