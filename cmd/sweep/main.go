// Package main provides the parameter-sweep CLI for the range policy.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/value-sniper/internal/backtest"
	"github.com/yourusername/value-sniper/internal/config"
	"github.com/yourusername/value-sniper/internal/ingest"
	"github.com/yourusername/value-sniper/internal/logger"
	"github.com/yourusername/value-sniper/internal/signal"
)

var (
	configFile  string
	fixturesSrc string
	appLogger   *logrus.Logger
	cfg         *config.Config
	simRows     []backtest.SimRow
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&fixturesSrc, "fixtures", "f", "", "Fixtures CSV path or URL (must include scores)")
	rootCmd.MarkPersistentFlagRequired("fixtures")

	runCmd.Flags().Float64("home-ev-min", 2.0, "Home EV lower bound (percent)")
	runCmd.Flags().Float64("home-ev-max", 15.0, "Home EV upper bound (percent)")
	runCmd.Flags().Float64("home-odds-min", 1.40, "Home odds lower bound")
	runCmd.Flags().Float64("home-odds-max", 3.00, "Home odds upper bound")
	runCmd.Flags().Float64("away-ev-min", 2.0, "Away EV lower bound (percent)")
	runCmd.Flags().Float64("away-ev-max", 15.0, "Away EV upper bound (percent)")
	runCmd.Flags().Float64("away-odds-min", 1.50, "Away odds lower bound")
	runCmd.Flags().Float64("away-odds-max", 3.50, "Away odds upper bound")

	gridCmd.Flags().Float64("ev-min", 0.0, "Grid EV lower bound (percent)")
	gridCmd.Flags().Float64("ev-max", 20.0, "Grid EV upper bound (percent)")
	gridCmd.Flags().Float64("step", 1.0, "Grid step (percent)")
	gridCmd.Flags().Float64("odds-min", 1.50, "Fixed odds lower bound")
	gridCmd.Flags().Float64("odds-max", 3.50, "Fixed odds upper bound")
	gridCmd.Flags().Int("top", 20, "Number of windows to display")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(gridCmd)
}

var rootCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Simulate range policies over historical fixtures",
	Long:  `Evaluates every fixture once and replays arbitrary EV/odds windows over the cached rows, either as a single simulation or as a grid search.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := buildRows(cmd.Context()); err != nil {
			return fmt.Errorf("failed to build simulation rows: %w", err)
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a single range policy",
	Run: func(cmd *cobra.Command, args []string) {
		policy := signal.RangePolicy{
			Home: rangeFromFlags(cmd, "home"),
			Away: rangeFromFlags(cmd, "away"),
		}
		res := backtest.SimulateRange(simRows, policy)
		printResults(os.Stdout, []backtest.RangeResult{res}, 1)
	},
}

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Grid-search EV windows with fixed odds bounds",
	Run: func(cmd *cobra.Command, args []string) {
		evMin, _ := cmd.Flags().GetFloat64("ev-min")
		evMax, _ := cmd.Flags().GetFloat64("ev-max")
		step, _ := cmd.Flags().GetFloat64("step")
		oddsMin, _ := cmd.Flags().GetFloat64("odds-min")
		oddsMax, _ := cmd.Flags().GetFloat64("odds-max")
		top, _ := cmd.Flags().GetInt("top")

		results := backtest.SweepEVWindows(simRows, evMin, evMax, step, signal.Range{OddsMin: oddsMin, OddsMax: oddsMax})
		if len(results) == 0 {
			fmt.Println("No window produced any bets")
			return
		}
		printResults(os.Stdout, results, top)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	appLogger = logger.NewLogger(cfg.App.LogLevel)
	return nil
}

// buildRows evaluates the dataset once; both subcommands replay windows
// over the same rows.
func buildRows(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	loader := ingest.NewLoader(&cfg.Ingest, appLogger)
	fixtures, err := loader.Load(ctx, fixturesSrc)
	if err != nil {
		return err
	}

	classifier, err := signal.FromConfig(cfg)
	if err != nil {
		return err
	}
	simRows, err = backtest.BuildSimRows(ctx, classifier, fixtures)
	if err != nil {
		return err
	}
	appLogger.WithField("rows", len(simRows)).Info("Simulation rows built")
	return nil
}

func rangeFromFlags(cmd *cobra.Command, side string) signal.Range {
	evMin, _ := cmd.Flags().GetFloat64(side + "-ev-min")
	evMax, _ := cmd.Flags().GetFloat64(side + "-ev-max")
	oddsMin, _ := cmd.Flags().GetFloat64(side + "-odds-min")
	oddsMax, _ := cmd.Flags().GetFloat64(side + "-odds-max")
	return signal.Range{EVMin: evMin, EVMax: evMax, OddsMin: oddsMin, OddsMax: oddsMax}
}

// printResults renders per-side windows: the run subcommand may use
// different home and away bounds, so neither side's can stand for both.
func printResults(out io.Writer, results []backtest.RangeResult, limit int) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HOME EV\tHOME ODDS\tAWAY EV\tAWAY ODDS\tHOME BETS\tAWAY BETS\tHOME PNL\tAWAY PNL\tTOTAL PNL\tROI\tBEST")
	for i, res := range results {
		if i >= limit {
			break
		}
		fmt.Fprintf(w, "%.1f-%.1f%%\t%.2f-%.2f\t%.1f-%.1f%%\t%.2f-%.2f\t%d\t%d\t%+.2f\t%+.2f\t%+.2f\t%+.2f%%\t%s\n",
			res.Policy.Home.EVMin, res.Policy.Home.EVMax,
			res.Policy.Home.OddsMin, res.Policy.Home.OddsMax,
			res.Policy.Away.EVMin, res.Policy.Away.EVMax,
			res.Policy.Away.OddsMin, res.Policy.Away.OddsMax,
			res.HomeBets, res.AwayBets, res.HomePnL, res.AwayPnL, res.TotalPnL, res.ROI, res.BestSide())
	}
	w.Flush()
}
