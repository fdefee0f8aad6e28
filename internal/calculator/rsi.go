package calculator

import (
	"math"

	"StockScreener/internal/model"
)

// RSI computes the relative strength index using simple rolling means of gains and
// losses over period days, shifted forward by one day. The first bar has no prior close
// and counts as a zero change.
//
// A window with no losses and some gains yields exactly 100. A window with neither
// gains nor losses has no defined strength and stays undefined.
func RSI(closes []float64, period int) ([]model.NullFloat, error) {
	if period <= 0 {
		return nil, errNonPositivePeriod
	}
	n := len(closes)
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		switch {
		case math.IsNaN(change):
			gains[i], losses[i] = math.NaN(), math.NaN()
		case change > 0:
			gains[i] = change
		default:
			losses[i] = -change
		}
	}

	out := make([]model.NullFloat, n)
	for i := period; i < n; i++ {
		g, l := gains[i-period:i], losses[i-period:i]
		if !allFinite(g) || !allFinite(l) {
			continue
		}
		avgGain, avgLoss := mean(g), mean(l)
		switch {
		case avgLoss == 0 && avgGain == 0:
			continue
		case avgLoss == 0:
			out[i] = model.Float(100)
		default:
			rs := avgGain / avgLoss
			out[i] = model.Float(100 - 100/(1+rs))
		}
	}
	return out, nil
}
