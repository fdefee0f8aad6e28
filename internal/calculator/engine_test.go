package calculator

import (
	"math"
	"testing"
	"time"

	"StockScreener/internal/model"
)

func barsFromCloses(closes []float64) []model.DailyBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.DailyBar, len(closes))
	for i, c := range closes {
		bars[i] = model.DailyBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestCompute_FlatSeriesCollapsesBands(t *testing.T) {
	closes := make([]float64, 21)
	for i := range closes {
		closes[i] = 10
	}
	rows, err := Compute(barsFromCloses(closes), model.DefaultIndicatorParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 21 {
		t.Fatalf("expected 21 rows, got %d", len(rows))
	}
	last := rows[20]
	for name, v := range map[string]model.NullFloat{
		"sma": last.SMA, "upper": last.UpperBand, "middle": last.MiddleBand, "lower": last.LowerBand,
	} {
		if !v.Valid || v.Value != 10 {
			t.Errorf("%s: got %+v, want 10", name, v)
		}
	}
	if rows[19].SMA.Valid || rows[19].UpperBand.Valid {
		t.Error("day 20 must still be undefined")
	}
}

func TestCompute_MiddleBandReusesSMA(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i%7) - float64(i%3)
	}
	rows, err := Compute(barsFromCloses(closes), model.DefaultIndicatorParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range rows {
		if r.SMA.Valid != r.MiddleBand.Valid {
			t.Fatalf("index %d: sma and middle band definedness differ", i)
		}
		if r.SMA.Valid && r.SMA.Value != r.MiddleBand.Value {
			t.Errorf("index %d: middle %v != sma %v", i, r.MiddleBand.Value, r.SMA.Value)
		}
	}
}

func TestCompute_BandsSymmetric(t *testing.T) {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 50 + 5*math.Sin(float64(i)/4) + float64(i)/10
	}
	rows, err := Compute(barsFromCloses(closes), model.DefaultIndicatorParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defined := 0
	for i, r := range rows {
		if !r.MiddleBand.Valid {
			continue
		}
		defined++
		up := r.UpperBand.Value - r.MiddleBand.Value
		down := r.MiddleBand.Value - r.LowerBand.Value
		if math.Abs(up-down) > 1e-9 {
			t.Errorf("index %d: bands not symmetric (%v vs %v)", i, up, down)
		}
		if r.UpperBand.Value < r.LowerBand.Value {
			t.Errorf("index %d: upper below lower", i)
		}
	}
	if defined != 60 {
		t.Errorf("expected 60 defined rows, got %d", defined)
	}
}

func TestCompute_DistinctBollingerPeriod(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	p := model.IndicatorParams{SMAPeriod: 5, RSIPeriod: 3, BBPeriod: 10, BBMultiplier: 2}
	rows, err := Compute(barsFromCloses(closes), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rows[5].SMA.Valid || rows[5].MiddleBand.Valid {
		t.Error("sma period 5 should be defined at 5 while 10-day bands are not")
	}
	// mean of 1..10
	if !rows[10].MiddleBand.Valid || rows[10].MiddleBand.Value != 5.5 {
		t.Errorf("middle band=%+v, want 5.5", rows[10].MiddleBand)
	}
}

func TestCompute_PreservesOrderAndBars(t *testing.T) {
	bars := barsFromCloses([]float64{3, 1, 2})
	rows, err := Compute(bars, model.DefaultIndicatorParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range bars {
		if rows[i].DailyBar != bars[i] {
			t.Errorf("row %d does not carry its bar", i)
		}
	}
}

func TestCompute_InvalidParams(t *testing.T) {
	bars := barsFromCloses([]float64{1, 2, 3})
	cases := []model.IndicatorParams{
		{SMAPeriod: 0, RSIPeriod: 14, BBPeriod: 20, BBMultiplier: 2},
		{SMAPeriod: 20, RSIPeriod: -1, BBPeriod: 20, BBMultiplier: 2},
		{SMAPeriod: 20, RSIPeriod: 14, BBPeriod: 0, BBMultiplier: 2},
		{SMAPeriod: 20, RSIPeriod: 14, BBPeriod: 20, BBMultiplier: 0},
	}
	for i, p := range cases {
		if _, err := Compute(bars, p); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
