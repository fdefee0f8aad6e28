package calculator

import (
	"errors"
	"math"

	"StockScreener/internal/model"
)

var (
	errNonPositivePeriod     = errors.New("period must be positive")
	errNonPositiveMultiplier = errors.New("multiplier must be positive")
)

// SMA returns the simple moving average series of closes, shifted forward by one day:
// the value at i is the mean of closes[i-period .. i-1]. Indexes without a full window
// of finite closes before them are undefined.
func SMA(closes []float64, period int) ([]model.NullFloat, error) {
	if period <= 0 {
		return nil, errNonPositivePeriod
	}
	out := make([]model.NullFloat, len(closes))
	for i := period; i < len(closes); i++ {
		window := closes[i-period : i]
		if !allFinite(window) {
			continue
		}
		out[i] = model.Float(mean(window))
	}
	return out, nil
}

// StdDev returns the sample standard deviation (n-1) of closes[i-period .. i-1] at each i.
func StdDev(closes []float64, period int) ([]model.NullFloat, error) {
	if period <= 0 {
		return nil, errNonPositivePeriod
	}
	out := make([]model.NullFloat, len(closes))
	if period < 2 {
		// sample deviation of a single observation is undefined
		return out, nil
	}
	for i := period; i < len(closes); i++ {
		window := closes[i-period : i]
		if !allFinite(window) {
			continue
		}
		m := mean(window)
		sumSq := 0.0
		for _, c := range window {
			d := c - m
			sumSq += d * d
		}
		out[i] = model.Float(math.Sqrt(sumSq / float64(period-1)))
	}
	return out, nil
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func allFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func extractCloses(bars []model.DailyBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
