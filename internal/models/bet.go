package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultStake is the fixed unit stake used by backtest simulations.
const DefaultStake = 10.0

// BetRecord links a classified signal to its realized outcome and
// profit/loss. Records are immutable once computed and live only for the
// duration of one backtest pass unless explicitly persisted.
type BetRecord struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Match      string    `db:"match" json:"match"`
	League     string    `db:"league" json:"league"`
	Tier       string    `db:"tier" json:"tier"`
	Pick       Pick      `db:"pick" json:"pick"`
	Odds       float64   `db:"odds" json:"odds"`
	Stake      float64   `db:"stake" json:"stake"`
	ScoreLine  string    `db:"score_line" json:"score_line"`
	Outcome    Outcome   `db:"outcome" json:"outcome"`
	Won        bool      `db:"won" json:"won"`
	ProfitLoss float64   `db:"profit_loss" json:"profit_loss"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// SettlePnL computes per-bet profit/loss: full return minus stake on a
// win, the stake lost otherwise.
func SettlePnL(odds, stake float64, won bool) float64 {
	if won {
		return odds*stake - stake
	}
	return -stake
}

// BacktestRun is the aggregate summary of one backtest pass, persisted
// when result storage is enabled.
type BacktestRun struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Policy         string    `db:"policy" json:"policy"`
	FixturesSource string    `db:"fixtures_source" json:"fixtures_source"`
	ResultsSource  string    `db:"results_source" json:"results_source"`
	Stake          float64   `db:"stake" json:"stake"`
	Signals        int       `db:"signals" json:"signals"`
	Verified       int       `db:"verified" json:"verified"`
	Unverified     int       `db:"unverified" json:"unverified"`
	Wins           int       `db:"wins" json:"wins"`
	WinRate        float64   `db:"win_rate" json:"win_rate"`
	TotalPnL       float64   `db:"total_pnl" json:"total_pnl"`
	ROI            float64   `db:"roi" json:"roi"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
