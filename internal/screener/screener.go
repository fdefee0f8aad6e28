package screener

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"StockScreener/internal/aggregator"
	"StockScreener/internal/calculator"
	"StockScreener/internal/collector"
	"StockScreener/internal/metrics"
	"StockScreener/internal/model"
	"StockScreener/internal/strategy"
)

// ErrInvalidInput is returned by Run before any fetch when its arguments or options are unusable.
var ErrInvalidInput = errors.New("invalid screener input")

// Screener runs fetch, indicators and signal classification for a set of symbols.
type Screener struct {
	fetcher    collector.Fetcher
	params     model.IndicatorParams
	thresholds model.Thresholds
	recentDays int
	workers    int
	logger     zerolog.Logger
	metrics    *metrics.Recorder
}

type Option func(*Screener)

func WithParams(p model.IndicatorParams) Option {
	return func(s *Screener) { s.params = p }
}

func WithThresholds(th model.Thresholds) Option {
	return func(s *Screener) { s.thresholds = th }
}

// WithRecentDays sets how many rows per symbol Result.Recent keeps.
func WithRecentDays(n int) Option {
	return func(s *Screener) { s.recentDays = n }
}

// WithWorkers bounds the number of symbols processed concurrently.
func WithWorkers(n int) Option {
	return func(s *Screener) { s.workers = n }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Screener) { s.logger = l }
}

func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Screener) { s.metrics = m }
}

// New creates a Screener with default parameters, 70/30 thresholds, a five day
// recent window and four workers.
func New(fetcher collector.Fetcher, opts ...Option) *Screener {
	s := &Screener{
		fetcher:    fetcher,
		params:     model.DefaultIndicatorParams(),
		thresholds: model.DefaultThresholds(),
		recentDays: 5,
		workers:    4,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	return s
}

// Result is the outcome of one run.
type Result struct {
	Reports  []model.SymbolReport // successful symbols, in input order
	Combined *model.CombinedReport
	Recent   []model.ReportRow
	Failures []model.SymbolFailure
}

type outcome struct {
	report  *model.SymbolReport
	failure *model.SymbolFailure
}

// Run screens symbols over [start, end). A symbol whose data cannot be fetched is
// reported in Result.Failures and does not affect the others.
func (s *Screener) Run(ctx context.Context, symbols []string, start, end time.Time) (*Result, error) {
	if err := s.validate(symbols, start, end); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("symbols", len(symbols)).
		Str("source", s.fetcher.Name()).
		Str("start", start.Format("2006-01-02")).
		Str("end", end.Format("2006-01-02")).
		Msg("screening started")

	slots := make([]outcome, len(symbols))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			slots[i] = s.screen(ctx, symbol, start, end)
			return nil
		})
	}
	// tasks report failures through their slots and never return an error
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("screening interrupted: %w", err)
	}

	res := &Result{}
	for _, o := range slots {
		if o.failure != nil {
			res.Failures = append(res.Failures, *o.failure)
			continue
		}
		res.Reports = append(res.Reports, *o.report)
	}

	res.Combined = aggregator.Combine(res.Reports)
	aggregator.SortBySymbolThenDateDesc(res.Combined.Rows)
	res.Recent = aggregator.MostRecentPerSymbol(res.Combined.Rows, s.recentDays)

	for symbol, row := range aggregator.Latest(res.Combined.Rows) {
		s.metrics.RecordLatest(row)
		s.logger.Debug().
			Str("symbol", symbol).
			Str("date", row.Date.Format("2006-01-02")).
			Stringer("sma", row.SMASignal).
			Stringer("rsi", row.RSISignal).
			Stringer("bollinger", row.BBSignal).
			Msg("latest signals")
	}

	s.logger.Info().
		Int("reports", len(res.Reports)).
		Int("failures", len(res.Failures)).
		Int("rows", len(res.Combined.Rows)).
		Msg("screening finished")
	return res, nil
}

func (s *Screener) screen(ctx context.Context, symbol string, start, end time.Time) outcome {
	log := s.logger.With().Str("symbol", symbol).Logger()

	began := time.Now()
	bars, err := s.fetcher.FetchDailyBars(ctx, symbol, start, end)
	s.metrics.RecordFetch(s.fetcher.Name(), time.Since(began).Seconds())
	if err != nil {
		log.Warn().Err(err).Msg("fetch failed")
		s.metrics.RecordSymbol("failed")
		return outcome{failure: &model.SymbolFailure{Symbol: symbol, Err: err}}
	}

	rows, err := calculator.Compute(bars, s.params)
	if err != nil {
		log.Error().Err(err).Msg("compute indicators")
		s.metrics.RecordSymbol("failed")
		return outcome{failure: &model.SymbolFailure{Symbol: symbol, Err: err}}
	}

	report := strategy.Evaluate(symbol, rows, s.thresholds)
	if len(report.Rows) == 0 {
		log.Warn().Msg("no bars in range")
		s.metrics.RecordSymbol("empty")
	} else {
		log.Info().Int("bars", len(bars)).Msg("symbol screened")
		s.metrics.RecordSymbol("ok")
	}
	return outcome{report: &report}
}

func (s *Screener) validate(symbols []string, start, end time.Time) error {
	switch {
	case s.fetcher == nil:
		return fmt.Errorf("%w: no price source", ErrInvalidInput)
	case len(symbols) == 0:
		return fmt.Errorf("%w: symbol list is empty", ErrInvalidInput)
	case start.After(end):
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidInput,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	case s.params.SMAPeriod <= 0 || s.params.RSIPeriod <= 0 || s.params.BBPeriod <= 0:
		return fmt.Errorf("%w: indicator periods must be positive: %+v", ErrInvalidInput, s.params)
	case s.params.BBMultiplier <= 0:
		return fmt.Errorf("%w: bollinger multiplier must be positive", ErrInvalidInput)
	case s.thresholds.Oversold >= s.thresholds.Overbought:
		return fmt.Errorf("%w: oversold threshold %.2f must be below overbought %.2f",
			ErrInvalidInput, s.thresholds.Oversold, s.thresholds.Overbought)
	case s.workers <= 0:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidInput)
	case s.recentDays <= 0:
		return fmt.Errorf("%w: recent window must be positive", ErrInvalidInput)
	}
	seen := make(map[string]bool, len(symbols))
	for _, sym := range symbols {
		sym = strings.TrimSpace(sym)
		if sym == "" {
			return fmt.Errorf("%w: blank symbol", ErrInvalidInput)
		}
		if seen[sym] {
			return fmt.Errorf("%w: duplicate symbol %q", ErrInvalidInput, sym)
		}
		seen[sym] = true
	}
	return nil
}
