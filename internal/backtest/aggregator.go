package backtest

import (
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/value-sniper/internal/models"
	"github.com/yourusername/value-sniper/internal/signal"
)

// bucketEdges are the fixed odds-bucket boundaries used for grouped
// diagnostics; a price lands in the bucket whose range it falls inside,
// left-open right-closed.
var bucketEdges = []float64{1.0, 1.5, 2.0, 2.5, 3.0, 4.0, 10.0}

var bucketLabels = []string{"1.0-1.5", "1.5-2.0", "2.0-2.5", "2.5-3.0", "3.0-4.0", "4.0+"}

// BucketLabel maps a decimal price to its odds-bucket label, or "" when
// the price falls outside every bucket.
func BucketLabel(price float64) string {
	for i := 0; i < len(bucketEdges)-1; i++ {
		if price > bucketEdges[i] && price <= bucketEdges[i+1] {
			return bucketLabels[i]
		}
	}
	return ""
}

// GroupStats accumulates bet outcomes for one grouping key.
type GroupStats struct {
	Bets int     `json:"bets"`
	Wins int     `json:"wins"`
	PnL  float64 `json:"pnl"`
}

// Summary is the aggregate result of one backtest pass.
type Summary struct {
	Signals    int     `json:"signals"`
	Verified   int     `json:"verified"`
	Unverified int     `json:"unverified"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
	TotalPnL   float64 `json:"total_pnl"`
	ROI        float64 `json:"roi"`
	Stake      float64 `json:"stake"`
}

// Aggregator folds settled bets into running totals and groupings. It is
// the only stateful step of a backtest pass and is owned exclusively by
// one run; the fold is a commutative sum, so processing order does not
// affect the aggregate.
type Aggregator struct {
	stake      float64
	signals    int
	verified   int
	unverified int
	wins       int
	totalPnL   float64
	history    []*models.BetRecord
	byLeague   map[string]*GroupStats
	byOdds     map[string]*GroupStats
}

// NewAggregator builds an aggregator with the given unit stake; zero or
// negative falls back to the default stake of 10.
func NewAggregator(stake float64) *Aggregator {
	if stake <= 0 {
		stake = models.DefaultStake
	}
	return &Aggregator{
		stake:    stake,
		byLeague: make(map[string]*GroupStats),
		byOdds:   make(map[string]*GroupStats),
	}
}

// Record folds one non-skip signal and its resolved result into the
// totals. Fixtures whose outcome cannot be resolved count as unverified
// and contribute nothing to PnL.
func (a *Aggregator) Record(f *models.Fixture, eval signal.Evaluation, res Result, matched bool) {
	if !eval.Played() {
		return
	}
	a.signals++

	if !matched || res.Outcome == models.OutcomeUnknown {
		a.unverified++
		return
	}

	won := res.Outcome.Matches(eval.Pick)
	pnl := models.SettlePnL(eval.PlayOdds, a.stake, won)

	a.verified++
	if won {
		a.wins++
	}
	a.totalPnL += pnl

	record := &models.BetRecord{
		ID:         uuid.New(),
		Match:      f.Label(),
		League:     f.LeagueOrUnknown(),
		Tier:       string(eval.Tier),
		Pick:       eval.Pick,
		Odds:       eval.PlayOdds,
		Stake:      a.stake,
		ScoreLine:  models.ScoreLine(res.HomeScore, res.AwayScore, res.Outcome),
		Outcome:    res.Outcome,
		Won:        won,
		ProfitLoss: pnl,
		CreatedAt:  time.Now().UTC(),
	}
	a.history = append(a.history, record)

	a.fold(a.byLeague, record.League, won, pnl)
	if label := BucketLabel(eval.PlayOdds); label != "" {
		a.fold(a.byOdds, label, won, pnl)
	}
}

func (a *Aggregator) fold(groups map[string]*GroupStats, key string, won bool, pnl float64) {
	stats, ok := groups[key]
	if !ok {
		stats = &GroupStats{}
		groups[key] = stats
	}
	stats.Bets++
	if won {
		stats.Wins++
	}
	stats.PnL += pnl
}

// Summary derives the aggregate metrics from the running totals.
func (a *Aggregator) Summary() Summary {
	s := Summary{
		Signals:    a.signals,
		Verified:   a.verified,
		Unverified: a.unverified,
		Wins:       a.wins,
		TotalPnL:   a.totalPnL,
		Stake:      a.stake,
	}
	if a.verified > 0 {
		s.WinRate = float64(a.wins) / float64(a.verified) * 100
		s.ROI = a.totalPnL / (float64(a.verified) * a.stake) * 100
	}
	return s
}

// History returns the per-bet records in processing order.
func (a *Aggregator) History() []*models.BetRecord {
	return a.history
}

// ByLeague returns PnL grouped by league identifier.
func (a *Aggregator) ByLeague() map[string]GroupStats {
	return copyGroups(a.byLeague)
}

// ByOddsBucket returns PnL grouped by the fixed odds buckets.
func (a *Aggregator) ByOddsBucket() map[string]GroupStats {
	return copyGroups(a.byOdds)
}

func copyGroups(groups map[string]*GroupStats) map[string]GroupStats {
	out := make(map[string]GroupStats, len(groups))
	for key, stats := range groups {
		out[key] = *stats
	}
	return out
}
