// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/value-sniper/internal/backtest"
	"github.com/yourusername/value-sniper/internal/config"
	"github.com/yourusername/value-sniper/internal/ingest"
	"github.com/yourusername/value-sniper/internal/logger"
	"github.com/yourusername/value-sniper/internal/models"
	"github.com/yourusername/value-sniper/internal/signal"
	"github.com/yourusername/value-sniper/internal/storage"
)

func main() {
	var (
		configPath  = flag.String("config", "config/config.yaml", "Path to config file")
		fixturesSrc = flag.String("fixtures", "", "Fixtures CSV path or URL (required)")
		resultsSrc  = flag.String("results", "", "Results CSV path or URL; defaults to scores in the fixtures file")
		output      = flag.String("output", "", "Output path for the JSON report (overrides backtest.output_path)")
		persist     = flag.Bool("persist", false, "Persist the run to the database (overrides backtest.persist_enabled)")
	)
	flag.Parse()

	cfg := loadConfig(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel)

	if *fixturesSrc == "" {
		log.Fatal("-fixtures is required")
	}

	ctx := context.Background()
	engine := buildEngine(cfg, log)
	loader := ingest.NewLoader(&cfg.Ingest, log)

	fixtures, results := loadDatasets(ctx, log, loader, *fixturesSrc, *resultsSrc)

	report, err := engine.Run(ctx, fixtures, results)
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}

	fmt.Print(backtest.ConsoleSummary(report))

	outPath := *output
	if outPath == "" {
		outPath = cfg.Backtest.OutputPath
	}
	if outPath != "" {
		if err := backtest.ExportToJSON(report, outPath); err != nil {
			log.Fatalf("Failed to export report: %v", err)
		}
		log.WithField("path", outPath).Info("Report exported")
	}

	if *persist || cfg.Backtest.PersistEnabled {
		persistRun(ctx, cfg, log, report, *fixturesSrc, *resultsSrc)
	}
}

func loadConfig(path string) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func buildEngine(cfg *config.Config, log *logrus.Logger) *backtest.Engine {
	classifier, err := signal.FromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to build classifier: %v", err)
	}
	engine, err := backtest.NewEngine(classifier, cfg.Backtest.Stake, log)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}
	return engine
}

// loadDatasets reads the fixtures file and, when given, a separate
// results file. A nil results slice tells the engine to settle against
// scores embedded in the fixtures file.
func loadDatasets(ctx context.Context, log *logrus.Logger, loader *ingest.Loader, fixturesSrc, resultsSrc string) ([]*models.Fixture, []*models.Fixture) {
	fixtures, err := loader.Load(ctx, fixturesSrc)
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}

	var results []*models.Fixture
	if resultsSrc != "" {
		results, err = loader.Load(ctx, resultsSrc)
		if err != nil {
			log.Fatalf("Failed to load results: %v", err)
		}
	}
	return fixtures, results
}

func persistRun(ctx context.Context, cfg *config.Config, log *logrus.Logger, report *backtest.Report, fixturesSrc, resultsSrc string) {
	db, err := storage.NewDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := storage.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	repo := storage.NewRunRepository(db)
	if err := repo.SaveRun(ctx, report.ToRun(fixturesSrc, resultsSrc)); err != nil {
		log.Fatalf("Failed to save run: %v", err)
	}
	if err := repo.SaveBets(ctx, report.RunID, report.History); err != nil {
		log.Fatalf("Failed to save bet history: %v", err)
	}
	log.WithFields(logrus.Fields{
		"run_id": report.RunID,
		"bets":   len(report.History),
	}).Info("Backtest run persisted")
}
