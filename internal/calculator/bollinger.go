package calculator

import "StockScreener/internal/model"

// Bands is one day's Bollinger Bands.
type Bands struct {
	Upper  model.NullFloat
	Middle model.NullFloat
	Lower  model.NullFloat
}

// BollingerBands builds bands around the given middle series (the shifted SMA) using the
// sample standard deviation of the previous period closes. A day is undefined whenever
// its middle value or deviation is undefined.
func BollingerBands(closes []float64, middle []model.NullFloat, period int, multiplier float64) ([]Bands, error) {
	if multiplier <= 0 {
		return nil, errNonPositiveMultiplier
	}
	std, err := StdDev(closes, period)
	if err != nil {
		return nil, err
	}
	out := make([]Bands, len(closes))
	for i := range closes {
		if i >= len(middle) || !middle[i].Valid || !std[i].Valid {
			continue
		}
		mid := middle[i].Value
		width := multiplier * std[i].Value
		out[i] = Bands{
			Upper:  model.Float(mid + width),
			Middle: model.Float(mid),
			Lower:  model.Float(mid - width),
		}
	}
	return out, nil
}
