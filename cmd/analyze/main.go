// Package main provides the entry point for the fixture analysis CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/value-sniper/internal/backtest"
	appconfig "github.com/yourusername/value-sniper/internal/config"
	"github.com/yourusername/value-sniper/internal/health"
	"github.com/yourusername/value-sniper/internal/ingest"
	"github.com/yourusername/value-sniper/internal/logger"
	"github.com/yourusername/value-sniper/internal/metrics"
	"github.com/yourusername/value-sniper/internal/scheduler"
	appsignal "github.com/yourusername/value-sniper/internal/signal"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		source     = flag.String("source", "", "Fixtures CSV path or URL (overrides schedule.source)")
		watch      = flag.Bool("watch", false, "Keep running and re-analyze on the configured cron schedule")
		healthAddr = flag.String("health-addr", ":8080", "Health server listen address (watch mode)")
	)
	flag.Parse()

	cfg := loadConfig(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel)

	classifier, err := appsignal.FromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to build classifier: %v", err)
	}
	engine, err := backtest.NewEngine(classifier, cfg.Backtest.Stake, log)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}
	loader := ingest.NewLoader(&cfg.Ingest, log)

	src := *source
	if src == "" {
		src = cfg.Schedule.Source
	}
	if src == "" {
		log.Fatal("No fixtures source: pass -source or set schedule.source in the config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *watch {
		runWatch(ctx, cfg, log, loader, engine, src, *healthAddr)
		return
	}

	if err := analyzeOnce(ctx, log, loader, engine, src); err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
}

func loadConfig(path string) *appconfig.Config {
	cfg, err := appconfig.LoadWithDefaults(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := appconfig.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// analyzeOnce loads the dataset, classifies every fixture, and logs the
// actionable picks in conviction order.
func analyzeOnce(ctx context.Context, log *logrus.Logger, loader *ingest.Loader, engine *backtest.Engine, source string) error {
	fixtures, err := loader.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	rows, err := engine.EvaluateAll(ctx, fixtures)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	sigLog := logger.NewSignalLogger(log)
	picks := 0
	for _, row := range rows {
		if !row.Evaluation.Played() {
			continue
		}
		sigLog.LogPick(row)
		picks++
	}
	sigLog.LogBatch(len(rows), picks)
	metrics.LastAnalysisFixtures.Set(float64(len(rows)))
	return nil
}

func runWatch(ctx context.Context, cfg *appconfig.Config, log *logrus.Logger, loader *ingest.Loader, engine *backtest.Engine, source, healthAddr string) {
	if cfg.Schedule.Cron == "" {
		log.Fatal("Watch mode requires schedule.cron in the config")
	}

	healthSrv := health.NewServer(cfg.App.Name, healthAddr, log, nil)
	healthSrv.Start(ctx)

	if cfg.Metrics.Enabled {
		metricsSrv := metrics.NewServer(cfg.MetricsAddr(), cfg.Metrics.Path)
		go func() {
			log.WithField("addr", cfg.MetricsAddr()).Info("Metrics server starting")
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("Metrics server error")
			}
		}()
		go func() {
			<-ctx.Done()
			metricsSrv.Close()
		}()
	}

	sched := scheduler.NewScheduler(log)
	job := func(jobCtx context.Context) error {
		if err := analyzeOnce(jobCtx, log, loader, engine, source); err != nil {
			return err
		}
		healthSrv.MarkCycle()
		return nil
	}
	if err := sched.Schedule(cfg.Schedule.Cron, "analyze", job); err != nil {
		log.Fatalf("Failed to schedule analysis: %v", err)
	}
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Run one cycle up front so readiness does not wait for the first tick.
	if err := job(ctx); err != nil {
		log.WithError(err).Error("Initial analysis failed")
	}

	<-ctx.Done()
	log.Info("Shutting down")
	sched.Stop()
}
