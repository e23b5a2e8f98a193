// Package backtest matches predicted picks against realized results and
// folds per-bet profit/loss into aggregate performance statistics.
package backtest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/value-sniper/internal/metrics"
	"github.com/yourusername/value-sniper/internal/models"
	"github.com/yourusername/value-sniper/internal/signal"
)

// Engine drives the evaluate -> resolve -> aggregate pipeline over an
// in-memory dataset. Rows are independent; one malformed row degrades to
// a skip and never aborts the batch.
type Engine struct {
	classifier *signal.Classifier
	stake      float64
	logger     *logrus.Logger
}

// NewEngine creates a backtest engine.
func NewEngine(classifier *signal.Classifier, stake float64, logger *logrus.Logger) (*Engine, error) {
	if classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{classifier: classifier, stake: stake, logger: logger}, nil
}

// Row pairs a fixture with its evaluation.
type Row struct {
	Fixture    *models.Fixture
	Evaluation signal.Evaluation
}

// Report is the full output of one backtest pass, ready for display or
// persistence.
type Report struct {
	RunID         uuid.UUID                    `json:"run_id"`
	Policy        string                       `json:"policy"`
	Summary       Summary                      `json:"summary"`
	ByLeague      map[string]GroupStats        `json:"by_league"`
	ByOddsBucket  map[string]GroupStats        `json:"by_odds_bucket"`
	History       []*models.BetRecord          `json:"history"`
	DuplicateKeys int                          `json:"duplicate_keys"`
	GeneratedAt   time.Time                    `json:"generated_at"`
}

// EvaluateAll classifies every fixture and returns the rows sorted for
// display: actionable picks first, high conviction before standard value.
func (e *Engine) EvaluateAll(ctx context.Context, fixtures []*models.Fixture) ([]Row, error) {
	if len(fixtures) == 0 {
		return nil, models.ErrEmptyDataset
	}
	rows := make([]Row, 0, len(fixtures))
	for _, f := range fixtures {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		eval := e.classifier.Evaluate(f)
		e.observe(eval)
		rows = append(rows, Row{Fixture: f, Evaluation: eval})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Evaluation.Tier.SortRank() < rows[j].Evaluation.Tier.SortRank()
	})
	return rows, nil
}

// Run executes a full backtest: classify the fixtures, resolve realized
// outcomes from the results dataset, and aggregate settled bets. A nil
// results slice falls back to looking up scores in the fixtures file
// itself, matching the original workflow of a single combined file.
func (e *Engine) Run(ctx context.Context, fixtures, results []*models.Fixture) (*Report, error) {
	if len(fixtures) == 0 {
		return nil, models.ErrEmptyDataset
	}
	if results == nil {
		results = fixtures
	}

	index := BuildResultIndex(results)
	if index.DuplicateKeys > 0 {
		// Last result wins on key collision; see the resolver docs.
		e.logger.WithField("duplicates", index.DuplicateKeys).
			Warn("results file contains ambiguous match keys")
		metrics.DuplicateResultKeysTotal.Add(float64(index.DuplicateKeys))
	}

	agg := NewAggregator(e.stake)
	for _, f := range fixtures {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		eval := e.classifier.Evaluate(f)
		e.observe(eval)
		if !eval.Played() {
			continue
		}
		res, matched := index.Resolve(f)
		agg.Record(f, eval, res, matched)
	}

	summary := agg.Summary()
	metrics.BetsVerifiedTotal.Add(float64(summary.Verified))
	metrics.BetsUnverifiedTotal.Add(float64(summary.Unverified))
	metrics.BacktestPnL.Set(summary.TotalPnL)
	metrics.BacktestROI.Set(summary.ROI)
	metrics.BacktestWinRate.Set(summary.WinRate)

	e.logger.WithFields(logrus.Fields{
		"signals":    summary.Signals,
		"verified":   summary.Verified,
		"unverified": summary.Unverified,
		"win_rate":   summary.WinRate,
		"total_pnl":  summary.TotalPnL,
		"roi":        summary.ROI,
	}).Info("Backtest pass completed")

	return &Report{
		RunID:         uuid.New(),
		Policy:        e.classifier.Policy().Name(),
		Summary:       summary,
		ByLeague:      agg.ByLeague(),
		ByOddsBucket:  agg.ByOddsBucket(),
		History:       agg.History(),
		DuplicateKeys: index.DuplicateKeys,
		GeneratedAt:   time.Now().UTC(),
	}, nil
}

func (e *Engine) observe(eval signal.Evaluation) {
	metrics.FixturesEvaluatedTotal.Inc()
	if eval.Played() {
		metrics.SignalsEmittedTotal.WithLabelValues(string(eval.Tier)).Inc()
	} else {
		metrics.FixturesSkippedTotal.Inc()
	}
}

// ToRun converts a report into the persistable run summary.
func (r *Report) ToRun(fixturesSource, resultsSource string) *models.BacktestRun {
	return &models.BacktestRun{
		ID:             r.RunID,
		Policy:         r.Policy,
		FixturesSource: fixturesSource,
		ResultsSource:  resultsSource,
		Stake:          r.Summary.Stake,
		Signals:        r.Summary.Signals,
		Verified:       r.Summary.Verified,
		Unverified:     r.Summary.Unverified,
		Wins:           r.Summary.Wins,
		WinRate:        r.Summary.WinRate,
		TotalPnL:       r.Summary.TotalPnL,
		ROI:            r.Summary.ROI,
		CreatedAt:      r.GeneratedAt,
	}
}
