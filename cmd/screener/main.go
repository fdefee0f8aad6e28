package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"StockScreener/internal/collector"
	"StockScreener/internal/config"
	"StockScreener/internal/logger"
	"StockScreener/internal/metrics"
	"StockScreener/internal/report"
	"StockScreener/internal/screener"
)

func main() {
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	cfgPath := flag.String("config", defaultPath, "path to the YAML config file")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	if err := run(*cfgPath); err != nil {
		fmt.Fprintf(os.Stderr, "screener: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, logCloser, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logCloser.Close()

	fetcher, closeFetcher, err := newFetcher(cfg)
	if err != nil {
		return fmt.Errorf("init data source: %w", err)
	}
	defer closeFetcher()
	log.Info().Str("source", fetcher.Name()).Strs("symbols", cfg.Symbols).Msg("data source ready")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rec := metrics.New()
	s := screener.New(
		collector.WithRetry(fetcher, cfg.DataSource.Retries, cfg.DataSource.Timeout, log),
		screener.WithParams(cfg.Params()),
		screener.WithThresholds(cfg.Thresholds()),
		screener.WithRecentDays(cfg.Report.RecentDays),
		screener.WithWorkers(cfg.DataSource.Workers),
		screener.WithLogger(log),
		screener.WithMetrics(rec),
	)

	res, err := s.Run(ctx, cfg.Symbols, cfg.Start, cfg.End)
	if err != nil {
		return err
	}

	if err := report.WriteTable(os.Stdout, res.Recent); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	if err := report.WriteFailures(os.Stdout, res.Failures); err != nil {
		return fmt.Errorf("write failures: %w", err)
	}

	if cfg.Report.ChartDir != "" {
		paths, err := report.SaveCharts(cfg.Report.ChartDir, res.Reports)
		if err != nil {
			log.Error().Err(err).Msg("save charts")
		} else {
			log.Info().Int("charts", len(paths)).Str("dir", cfg.Report.ChartDir).Msg("charts saved")
		}
	}

	if cfg.Metrics.PushgatewayURL != "" {
		if err := rec.Push(cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
			log.Warn().Err(err).Msg("push metrics")
		}
	}
	return nil
}

func newFetcher(cfg *config.Config) (collector.Fetcher, func(), error) {
	noop := func() {}
	switch cfg.DataSource.Provider {
	case "polygon":
		return collector.NewPolygonFetcher(cfg.DataSource.APIKey), noop, nil
	case "sqlite":
		f, err := collector.NewSQLiteFetcher(cfg.DataSource.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return f, func() { f.Close() }, nil
	case "mock":
		return &collector.MockFetcher{Price: cfg.DataSource.MockPrice}, noop, nil
	default:
		return collector.NewYahooFetcher(cfg.Proxy, cfg.DataSource.Timeout), noop, nil
	}
}
