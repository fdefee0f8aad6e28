package collector

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"StockScreener/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Symbols without explicit bars get generated ones when Price is set.
type MockFetcher struct {
	Price float64
	Bars  map[string][]model.DailyBar
	Errs  map[string]error

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.DailyBar, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[symbol]++
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return normalizeBars(bars, start, end), nil
	}
	if m.Price > 0 {
		return GenerateMockBars(m.Price, start, end), nil
	}
	return nil, ErrUnknownSymbol
}

// Calls reports how many times symbol was requested.
func (m *MockFetcher) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

// GenerateMockBars builds a deterministic oscillating weekday series in [start, end).
func GenerateMockBars(basePrice float64, start, end time.Time) []model.DailyBar {
	var bars []model.DailyBar
	i := 0
	for d := toDay(start); d.Before(toDay(end)); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		p := basePrice * (1 + 0.05*math.Sin(float64(i)/6) + 0.001*float64(i))
		bars = append(bars, model.DailyBar{
			Date:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
		i++
	}
	return bars
}

// normalizeBars keeps bars inside [start, end), sorted by date with one bar per day.
func normalizeBars(bars []model.DailyBar, start, end time.Time) []model.DailyBar {
	from, to := toDay(start), toDay(end)
	out := make([]model.DailyBar, 0, len(bars))
	for _, b := range bars {
		b.Date = toDay(b.Date)
		if b.Date.Before(from) || !b.Date.Before(to) {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	// later duplicates win
	deduped := out[:0]
	for _, b := range out {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(b.Date) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}
	return deduped
}

// toDay truncates t to its calendar day at 00:00 UTC.
func toDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
