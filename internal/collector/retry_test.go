package collector

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"StockScreener/internal/model"
)

type flakyFetcher struct {
	failures int32
	err      error
	calls    atomic.Int32
}

func (f *flakyFetcher) Name() string { return "flaky" }

func (f *flakyFetcher) FetchDailyBars(_ context.Context, _ string, _, _ time.Time) ([]model.DailyBar, error) {
	n := f.calls.Add(1)
	if n <= f.failures {
		return nil, f.err
	}
	return []model.DailyBar{{Date: mayStart, Close: 1}}, nil
}

func newTestRetry(f Fetcher, retries int) *RetryFetcher {
	r := WithRetry(f, retries, time.Second, zerolog.Nop())
	r.Backoff = time.Millisecond
	return r
}

func TestRetryFetcher_RecoversFromTransientErrors(t *testing.T) {
	f := &flakyFetcher{failures: 2, err: errors.New("connection reset")}
	bars, err := newTestRetry(f, 2).FetchDailyBars(context.Background(), "AAPL", mayStart, mayEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 || f.calls.Load() != 3 {
		t.Errorf("expected success on 3rd call, got %d bars after %d calls", len(bars), f.calls.Load())
	}
}

func TestRetryFetcher_GivesUp(t *testing.T) {
	f := &flakyFetcher{failures: 10, err: errors.New("timeout")}
	_, err := newTestRetry(f, 2).FetchDailyBars(context.Background(), "AAPL", mayStart, mayEnd)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
	if f.calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", f.calls.Load())
	}
}

func TestRetryFetcher_DoesNotRetryUnknownSymbol(t *testing.T) {
	f := &flakyFetcher{failures: 10, err: ErrUnknownSymbol}
	_, err := newTestRetry(f, 5).FetchDailyBars(context.Background(), "NOPE", mayStart, mayEnd)
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
	if f.calls.Load() != 1 {
		t.Errorf("expected a single attempt, got %d", f.calls.Load())
	}
}

func TestRetryFetcher_StopsOnCancel(t *testing.T) {
	f := &flakyFetcher{failures: 10, err: errors.New("boom")}
	r := newTestRetry(f, 5)
	r.Backoff = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := r.FetchDailyBars(ctx, "AAPL", mayStart, mayEnd)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
