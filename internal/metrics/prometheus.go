package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"StockScreener/internal/model"
)

// Recorder collects the metrics of one screening run on its own registry.
type Recorder struct {
	registry      *prometheus.Registry
	symbols       *prometheus.CounterVec
	signals       *prometheus.CounterVec
	lastClose     *prometheus.GaugeVec
	fetchDuration *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		symbols: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_symbols_total",
				Help: "Symbols processed by outcome",
			},
			[]string{"status"},
		),
		signals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screener_latest_signals_total",
				Help: "Signals on the most recent row of each symbol",
			},
			[]string{"indicator", "signal"},
		),
		lastClose: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "screener_last_close",
				Help: "Most recent close price for a symbol",
			},
			[]string{"symbol"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screener_fetch_duration_seconds",
				Help:    "Duration of price fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
	}
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// RecordSymbol counts a processed symbol; status is ok, empty or failed.
func (r *Recorder) RecordSymbol(status string) {
	r.symbols.WithLabelValues(status).Inc()
}

// RecordFetch records fetch latency in seconds.
func (r *Recorder) RecordFetch(source string, seconds float64) {
	r.fetchDuration.WithLabelValues(source).Observe(seconds)
}

// RecordLatest records the close and defined signals of a symbol's most recent row.
func (r *Recorder) RecordLatest(row model.ReportRow) {
	r.lastClose.WithLabelValues(row.Symbol).Set(row.Close)
	for indicator, s := range map[string]model.Signal{
		"sma":       row.SMASignal,
		"rsi":       row.RSISignal,
		"bollinger": row.BBSignal,
	} {
		if s == model.SignalUndefined {
			continue
		}
		r.signals.WithLabelValues(indicator, s.String()).Inc()
	}
}

// Push sends all collected metrics to a Prometheus Pushgateway.
func (r *Recorder) Push(url, job string) error {
	if err := push.New(url, job).Gatherer(r.registry).Push(); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
