package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/value-sniper/internal/models"
)

// RunRepository stores backtest runs and their bet history.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// SaveRun inserts a backtest run summary.
func (r *RunRepository) SaveRun(ctx context.Context, run *models.BacktestRun) error {
	query := `
		INSERT INTO backtest_runs (id, policy, fixtures_source, results_source, stake,
		                           signals, verified, unverified, wins, win_rate, total_pnl, roi, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		run.ID, run.Policy, run.FixturesSource, run.ResultsSource, run.Stake,
		run.Signals, run.Verified, run.Unverified, run.Wins, run.WinRate, run.TotalPnL, run.ROI, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save backtest run: %w", err)
	}
	return nil
}

// SaveBets inserts the bet history of a run in one batch.
func (r *RunRepository) SaveBets(ctx context.Context, runID uuid.UUID, bets []*models.BetRecord) error {
	if len(bets) == 0 {
		return nil
	}

	query := `
		INSERT INTO bet_records (id, run_id, match, league, tier, pick, odds, stake,
		                         score_line, outcome, won, profit_loss, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	batch := &pgx.Batch{}
	for _, bet := range bets {
		batch.Queue(query,
			bet.ID, runID, bet.Match, bet.League, bet.Tier, string(bet.Pick), bet.Odds, bet.Stake,
			bet.ScoreLine, string(bet.Outcome), bet.Won, bet.ProfitLoss, bet.CreatedAt,
		)
	}

	results := r.db.Pool().SendBatch(ctx, batch)
	defer results.Close()

	for range bets {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save bet record: %w", err)
		}
	}
	return nil
}

// GetRun retrieves a backtest run summary by ID.
func (r *RunRepository) GetRun(ctx context.Context, id uuid.UUID) (*models.BacktestRun, error) {
	query := `
		SELECT id, policy, fixtures_source, results_source, stake,
		       signals, verified, unverified, wins, win_rate, total_pnl, roi, created_at
		FROM backtest_runs WHERE id = $1
	`

	run := &models.BacktestRun{}
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&run.ID, &run.Policy, &run.FixturesSource, &run.ResultsSource, &run.Stake,
		&run.Signals, &run.Verified, &run.Unverified, &run.Wins, &run.WinRate, &run.TotalPnL, &run.ROI, &run.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get backtest run: %w", err)
	}
	return run, nil
}

// GetBets retrieves the bet history of a run ordered by creation time.
func (r *RunRepository) GetBets(ctx context.Context, runID uuid.UUID) ([]*models.BetRecord, error) {
	query := `
		SELECT id, match, league, tier, pick, odds, stake, score_line, outcome, won, profit_loss, created_at
		FROM bet_records WHERE run_id = $1 ORDER BY created_at
	`

	rows, err := r.db.Pool().Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bet records: %w", err)
	}
	defer rows.Close()

	var bets []*models.BetRecord
	for rows.Next() {
		bet := &models.BetRecord{}
		var pick, outcome string
		if err := rows.Scan(
			&bet.ID, &bet.Match, &bet.League, &bet.Tier, &pick, &bet.Odds, &bet.Stake,
			&bet.ScoreLine, &outcome, &bet.Won, &bet.ProfitLoss, &bet.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bet record: %w", err)
		}
		bet.Pick = models.Pick(pick)
		bet.Outcome = models.Outcome(outcome)
		bets = append(bets, bet)
	}
	return bets, rows.Err()
}
