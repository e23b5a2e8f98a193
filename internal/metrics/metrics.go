// Package metrics provides the centralized Prometheus registry for the
// analysis and backtest pipelines.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	FixturesEvaluatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "value_sniper",
		Name:      "fixtures_evaluated_total",
		Help:      "Total number of fixtures run through the classifier",
	})
	FixturesSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "value_sniper",
		Name:      "fixtures_skipped_total",
		Help:      "Total number of fixtures classified as SKIP",
	})
	SignalsEmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "value_sniper",
		Name:      "signals_emitted_total",
		Help:      "Total number of actionable signals emitted, by tier",
	}, []string{"tier"})
	BetsVerifiedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "value_sniper",
		Name:      "bets_verified_total",
		Help:      "Total number of backtest bets with a resolved outcome",
	})
	BetsUnverifiedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "value_sniper",
		Name:      "bets_unverified_total",
		Help:      "Total number of signals with no resolvable result row",
	})
	DuplicateResultKeysTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "value_sniper",
		Name:      "duplicate_result_keys_total",
		Help:      "Total number of ambiguous match keys seen in results files",
	})
	DatasetLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "value_sniper",
		Name:      "dataset_loads_total",
		Help:      "Total dataset loads, by cache outcome (hit or miss)",
	}, []string{"outcome"})
)

// Gauge metrics
var (
	BacktestPnL = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "value_sniper",
		Name:      "backtest_pnl",
		Help:      "Total profit and loss of the most recent backtest pass",
	})
	BacktestROI = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "value_sniper",
		Name:      "backtest_roi_percent",
		Help:      "ROI percentage of the most recent backtest pass",
	})
	BacktestWinRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "value_sniper",
		Name:      "backtest_win_rate_percent",
		Help:      "Win rate percentage of the most recent backtest pass",
	})
	LastAnalysisFixtures = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "value_sniper",
		Name:      "last_analysis_fixtures",
		Help:      "Number of fixtures in the most recent scheduled analysis",
	})
)

// Registry returns the global registry, registering all collectors on
// first use.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			FixturesEvaluatedTotal,
			FixturesSkippedTotal,
			SignalsEmittedTotal,
			BetsVerifiedTotal,
			BetsUnverifiedTotal,
			DuplicateResultKeysTotal,
			DatasetLoadsTotal,
			BacktestPnL,
			BacktestROI,
			BacktestWinRate,
			LastAnalysisFixtures,
		)
	})
	return registry
}

// Handler returns the HTTP handler serving the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}

// NewServer builds an HTTP server exposing the metrics endpoint at the
// given path.
func NewServer(addr, path string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(path, Handler())
	return &http.Server{Addr: addr, Handler: mux}
}
