package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"StockScreener/internal/model"
)

// RetryFetcher wraps a Fetcher with a per-attempt timeout and exponential backoff.
type RetryFetcher struct {
	Fetcher Fetcher
	Retries int
	Timeout time.Duration
	Backoff time.Duration
	Logger  zerolog.Logger
}

// WithRetry wraps f. Backoff starts at one second and doubles per attempt.
func WithRetry(f Fetcher, retries int, timeout time.Duration, logger zerolog.Logger) *RetryFetcher {
	return &RetryFetcher{
		Fetcher: f,
		Retries: retries,
		Timeout: timeout,
		Backoff: time.Second,
		Logger:  logger,
	}
}

func (r *RetryFetcher) Name() string { return r.Fetcher.Name() }

func (r *RetryFetcher) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.DailyBar, error) {
	var lastErr error
	for i := 0; i <= r.Retries; i++ {
		bars, err := r.attempt(ctx, symbol, start, end)
		if err == nil {
			return bars, nil
		}
		lastErr = err
		if errors.Is(err, ErrUnknownSymbol) || ctx.Err() != nil || i == r.Retries {
			break
		}

		backoff := r.Backoff << uint(i)
		r.Logger.Warn().
			Err(err).
			Str("symbol", symbol).
			Str("source", r.Fetcher.Name()).
			Int("attempt", i+1).
			Dur("backoff", backoff).
			Msg("fetch failed, retrying")
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, ctx.Err())
		case <-time.After(backoff):
		}
	}
	if !errors.Is(lastErr, ErrDataUnavailable) {
		lastErr = fmt.Errorf("%w: %w", ErrDataUnavailable, lastErr)
	}
	return nil, lastErr
}

func (r *RetryFetcher) attempt(ctx context.Context, symbol string, start, end time.Time) ([]model.DailyBar, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	return r.Fetcher.FetchDailyBars(ctx, symbol, start, end)
}
