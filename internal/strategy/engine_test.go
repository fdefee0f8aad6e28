package strategy

import (
	"testing"
	"time"

	"StockScreener/internal/calculator"
	"StockScreener/internal/model"
)

func row(close float64, sma, rsi, lower, upper *float64) model.IndicatorRow {
	r := model.IndicatorRow{DailyBar: model.DailyBar{Close: close}}
	if sma != nil {
		r.SMA = model.Float(*sma)
		r.MiddleBand = model.Float(*sma)
	}
	if rsi != nil {
		r.RSI = model.Float(*rsi)
	}
	if lower != nil {
		r.LowerBand = model.Float(*lower)
	}
	if upper != nil {
		r.UpperBand = model.Float(*upper)
	}
	return r
}

func f(v float64) *float64 { return &v }

func TestClassify_SMA(t *testing.T) {
	tests := []struct {
		close, sma float64
		want       model.Signal
	}{
		{100, 110, model.SignalSell},
		{100, 90, model.SignalBuy},
		{100, 100, model.SignalNeutral},
	}
	for _, tt := range tests {
		got := Classify(row(tt.close, f(tt.sma), nil, nil, nil), model.DefaultThresholds())
		if got.SMASignal != tt.want {
			t.Errorf("close %.0f sma %.0f: expected %q, got %q", tt.close, tt.sma, tt.want, got.SMASignal)
		}
	}
}

func TestClassify_RSIBoundaries(t *testing.T) {
	tests := []struct {
		rsi  float64
		want model.Signal
	}{
		{100, model.SignalSell},
		{70.01, model.SignalSell},
		{70, model.SignalNeutral},
		{50, model.SignalNeutral},
		{30, model.SignalNeutral},
		{29.99, model.SignalBuy},
		{0, model.SignalBuy},
	}
	for _, tt := range tests {
		got := Classify(row(100, nil, f(tt.rsi), nil, nil), model.DefaultThresholds())
		if got.RSISignal != tt.want {
			t.Errorf("rsi %.2f: expected %q, got %q", tt.rsi, tt.want, got.RSISignal)
		}
	}
}

func TestClassify_CustomThresholds(t *testing.T) {
	th := model.Thresholds{Overbought: 80, Oversold: 20}
	if got := Classify(row(100, nil, f(75), nil, nil), th); got.RSISignal != model.SignalNeutral {
		t.Errorf("rsi 75 with 80/20: expected Neutral, got %q", got.RSISignal)
	}
	if got := Classify(row(100, nil, f(15), nil, nil), th); got.RSISignal != model.SignalBuy {
		t.Errorf("rsi 15 with 80/20: expected Buy, got %q", got.RSISignal)
	}
}

func TestClassify_Bollinger(t *testing.T) {
	tests := []struct {
		name  string
		close float64
		rsi   *float64
		want  model.Signal
	}{
		{"below lower, oversold", 89, f(25), model.SignalBuy},
		{"below lower, rsi neutral", 89, f(40), model.SignalNeutral},
		{"above upper, overbought", 111, f(75), model.SignalSell},
		{"above upper, rsi neutral", 111, f(60), model.SignalNeutral},
		{"on lower band, oversold", 90, f(25), model.SignalNeutral},
		{"on upper band, overbought", 110, f(75), model.SignalNeutral},
		{"inside bands", 100, f(50), model.SignalNeutral},
		{"below lower, rsi undefined", 80, nil, model.SignalNeutral},
	}
	for _, tt := range tests {
		got := Classify(row(tt.close, f(100), tt.rsi, f(90), f(110)), model.DefaultThresholds())
		if got.BBSignal != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got.BBSignal)
		}
	}
}

func TestClassify_UndefinedIsNotNeutral(t *testing.T) {
	got := Classify(row(100, nil, nil, nil, nil), model.DefaultThresholds())
	if got.SMASignal != model.SignalUndefined || got.RSISignal != model.SignalUndefined || got.BBSignal != model.SignalUndefined {
		t.Fatalf("expected all undefined, got %q/%q/%q", got.SMASignal, got.RSISignal, got.BBSignal)
	}
	if got.BuyCount+got.SellCount+got.NeutralCount != 0 {
		t.Errorf("undefined signals must not be counted, got %d/%d/%d", got.BuyCount, got.SellCount, got.NeutralCount)
	}
}

func TestClassify_CountsSumToThree(t *testing.T) {
	rows := []model.IndicatorRow{
		row(89, f(100), f(25), f(90), f(110)),
		row(111, f(100), f(75), f(90), f(110)),
		row(100, f(100), f(50), f(90), f(110)),
		row(105, f(100), f(72), f(90), f(110)),
	}
	for i, r := range rows {
		got := Classify(r, model.DefaultThresholds())
		if sum := got.BuyCount + got.SellCount + got.NeutralCount; sum != 3 {
			t.Errorf("row %d: counts sum to %d", i, sum)
		}
	}
	got := Classify(rows[0], model.DefaultThresholds())
	if got.BuyCount != 2 || got.SellCount != 1 {
		t.Errorf("oversold breach below sma: expected 2 buys and 1 sell, got %d/%d", got.BuyCount, got.SellCount)
	}
	got = Classify(rows[1], model.DefaultThresholds())
	if got.SellCount != 2 || got.BuyCount != 1 {
		t.Errorf("overbought breach: expected 2 sells and 1 buy, got %d/%d", got.SellCount, got.BuyCount)
	}
}

func series(closes []float64) []model.DailyBar {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.DailyBar, len(closes))
	for i, c := range closes {
		bars[i] = model.DailyBar{Date: start.AddDate(0, 0, i), Close: c}
	}
	return bars
}

func TestEvaluate_FlatSeries(t *testing.T) {
	closes := make([]float64, 21)
	for i := range closes {
		closes[i] = 10
	}
	rows, err := calculator.Compute(series(closes), model.DefaultIndicatorParams())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	rep := Evaluate("FLAT", rows, model.DefaultThresholds())
	last := rep.Rows[20]
	if last.SMASignal != model.SignalNeutral {
		t.Errorf("expected Neutral sma signal, got %q", last.SMASignal)
	}
	if last.BBSignal != model.SignalNeutral {
		t.Errorf("expected Neutral bollinger signal, got %q", last.BBSignal)
	}
	if last.RSISignal != model.SignalUndefined {
		t.Errorf("flat rsi should be undefined, got %q", last.RSISignal)
	}
}

func TestEvaluate_RisingSeriesBuys(t *testing.T) {
	closes := make([]float64, 21)
	for i := range closes {
		closes[i] = float64(10 + i)
	}
	rows, err := calculator.Compute(series(closes), model.DefaultIndicatorParams())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	rep := Evaluate("UP", rows, model.DefaultThresholds())
	if rep.Symbol != "UP" || len(rep.Rows) != 21 {
		t.Fatalf("unexpected report shape: %s/%d", rep.Symbol, len(rep.Rows))
	}
	last := rep.Rows[20]
	if last.SMASignal != model.SignalBuy {
		t.Errorf("expected Buy, got %q", last.SMASignal)
	}
	if last.RSISignal != model.SignalSell {
		t.Errorf("rsi of an uninterrupted rise should be Sell, got %q", last.RSISignal)
	}
	for i := 0; i < 20; i++ {
		if rep.Rows[i].SMASignal != model.SignalUndefined {
			t.Errorf("day %d: sma signal should be undefined", i+1)
		}
	}
}
