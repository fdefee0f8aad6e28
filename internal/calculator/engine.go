package calculator

import (
	"fmt"

	"StockScreener/internal/model"
)

// Compute runs SMA, RSI and Bollinger Bands over one symbol's bars and returns one
// IndicatorRow per bar, in the same order.
func Compute(bars []model.DailyBar, p model.IndicatorParams) ([]model.IndicatorRow, error) {
	closes := extractCloses(bars)

	sma, err := SMA(closes, p.SMAPeriod)
	if err != nil {
		return nil, fmt.Errorf("sma: %w", err)
	}
	rsi, err := RSI(closes, p.RSIPeriod)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}

	middle := sma
	if p.BBPeriod != p.SMAPeriod {
		if middle, err = SMA(closes, p.BBPeriod); err != nil {
			return nil, fmt.Errorf("bollinger middle: %w", err)
		}
	}
	bands, err := BollingerBands(closes, middle, p.BBPeriod, p.BBMultiplier)
	if err != nil {
		return nil, fmt.Errorf("bollinger: %w", err)
	}

	rows := make([]model.IndicatorRow, len(bars))
	for i, b := range bars {
		rows[i] = model.IndicatorRow{
			DailyBar:   b,
			SMA:        sma[i],
			RSI:        rsi[i],
			UpperBand:  bands[i].Upper,
			MiddleBand: bands[i].Middle,
			LowerBand:  bands[i].Lower,
		}
	}
	return rows, nil
}
