package storage

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS backtest_runs (
		id UUID PRIMARY KEY,
		policy TEXT NOT NULL,
		fixtures_source TEXT NOT NULL DEFAULT '',
		results_source TEXT NOT NULL DEFAULT '',
		stake DOUBLE PRECISION NOT NULL,
		signals INTEGER NOT NULL,
		verified INTEGER NOT NULL,
		unverified INTEGER NOT NULL,
		wins INTEGER NOT NULL,
		win_rate DOUBLE PRECISION NOT NULL,
		total_pnl DOUBLE PRECISION NOT NULL,
		roi DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bet_records (
		id UUID PRIMARY KEY,
		run_id UUID NOT NULL REFERENCES backtest_runs(id) ON DELETE CASCADE,
		match TEXT NOT NULL,
		league TEXT NOT NULL,
		tier TEXT NOT NULL,
		pick TEXT NOT NULL,
		odds DOUBLE PRECISION NOT NULL,
		stake DOUBLE PRECISION NOT NULL,
		score_line TEXT NOT NULL DEFAULT '',
		outcome TEXT NOT NULL,
		won BOOLEAN NOT NULL,
		profit_loss DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bet_records_run_id ON bet_records(run_id)`,
}

// EnsureSchema creates the result tables when they do not yet exist.
func EnsureSchema(ctx context.Context, db *DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Pool().Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
