package collector

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"StockScreener/internal/model"
)

// PolygonFetcher implements Fetcher with Polygon.io daily aggregates.
type PolygonFetcher struct {
	client *polygon.Client
}

// NewPolygonFetcher creates a fetcher authenticated with apiKey.
func NewPolygonFetcher(apiKey string) *PolygonFetcher {
	return &PolygonFetcher{client: polygon.New(apiKey)}
}

func (f *PolygonFetcher) Name() string { return "polygon" }

func (f *PolygonFetcher) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.DailyBar, error) {
	// Polygon ranges are inclusive on both ends.
	last := toDay(end).AddDate(0, 0, -1)
	if last.Before(toDay(start)) {
		return nil, nil
	}

	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   models.Timespan("day"),
		From:       models.Millis(toDay(start)),
		To:         models.Millis(last),
	}.
		WithAdjusted(true).
		WithOrder(models.Order("asc")).
		WithLimit(50000)

	it := f.client.ListAggs(ctx, params)
	var bars []model.DailyBar
	for it.Next() {
		agg := it.Item()
		// daily aggregates start at midnight New York time, which is the same UTC day
		bars = append(bars, model.DailyBar{
			Date:   toDay(time.Time(agg.Timestamp).UTC()),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: int64(agg.Volume),
		})
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("%w: polygon aggs %s: %w", ErrDataUnavailable, symbol, err)
	}
	return normalizeBars(bars, start, end), nil
}
