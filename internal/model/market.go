package model

import "time"

// DailyBar represents a single daily OHLCV bar.
type DailyBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// NullFloat is a float64 that may be undefined, e.g. during indicator warm-up.
type NullFloat struct {
	Value float64
	Valid bool
}

// Float returns a defined NullFloat.
func Float(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

// IndicatorRow extends a DailyBar with the indicators computed for that day.
// Every value is derived from bars strictly before Date.
type IndicatorRow struct {
	DailyBar
	SMA        NullFloat
	RSI        NullFloat
	UpperBand  NullFloat
	MiddleBand NullFloat
	LowerBand  NullFloat
}

// IndicatorParams configures the indicator engine.
type IndicatorParams struct {
	SMAPeriod    int
	RSIPeriod    int
	BBPeriod     int
	BBMultiplier float64
}

// DefaultIndicatorParams returns the 20/14/20 periods with a 2x band multiplier.
func DefaultIndicatorParams() IndicatorParams {
	return IndicatorParams{SMAPeriod: 20, RSIPeriod: 14, BBPeriod: 20, BBMultiplier: 2}
}
