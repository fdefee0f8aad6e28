package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockScreener/internal/model"
)

var (
	// ErrDataUnavailable is returned when a source is unreachable or cannot serve a symbol.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrUnknownSymbol is an ErrDataUnavailable for tickers the source does not know.
	ErrUnknownSymbol = fmt.Errorf("%w: unknown symbol", ErrDataUnavailable)
)

// Fetcher defines the interface for fetching daily price history.
// Bars cover [start, end) and are returned in ascending date order. A known symbol
// without bars in range yields an empty slice and a nil error.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.DailyBar, error)
	Name() string
}
