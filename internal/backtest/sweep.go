package backtest

import (
	"context"
	"sort"

	"github.com/yourusername/value-sniper/internal/models"
	"github.com/yourusername/value-sniper/internal/signal"
)

// SimRow is one resolvable fixture pre-computed for range sweeps: the
// per-side EV and odds, plus the unit-stake PnL each side would have
// realized. Building rows once lets a sweep re-filter them cheaply. The
// EVs are unrounded so window bounds rule on the same values a
// range-policy classifier would.
type SimRow struct {
	Match    string
	League   string
	HomeOdds float64
	AwayOdds float64
	EVHome   float64
	EVAway   float64
	PnLHome  float64
	PnLAway  float64
}

// BuildSimRows evaluates every fixture with a resolvable outcome and
// captures the per-side unit PnL. Fixtures without a resolved result are
// excluded; sweeps only make sense over verified ground truth.
func BuildSimRows(ctx context.Context, classifier *signal.Classifier, fixtures []*models.Fixture) ([]SimRow, error) {
	rows := make([]SimRow, 0, len(fixtures))
	for _, f := range fixtures {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcome := models.OutcomeFromScores(f.HomeScore, f.AwayScore)
		if outcome == models.OutcomeUnknown {
			continue
		}
		eval := classifier.Evaluate(f)
		oddsHome, _, oddsAway := f.Odds()

		pnlHome := -1.0
		if outcome == models.OutcomeHome {
			pnlHome = oddsHome - 1
		}
		pnlAway := -1.0
		if outcome == models.OutcomeAway {
			pnlAway = oddsAway - 1
		}

		rows = append(rows, SimRow{
			Match:    f.Label(),
			League:   f.LeagueOrUnknown(),
			HomeOdds: oddsHome,
			AwayOdds: oddsAway,
			EVHome:   eval.EVHomeRaw,
			EVAway:   eval.EVAwayRaw,
			PnLHome:  pnlHome,
			PnLAway:  pnlAway,
		})
	}
	return rows, nil
}

// RangeResult summarizes a range-policy simulation over pre-built rows.
type RangeResult struct {
	Policy   signal.RangePolicy `json:"policy"`
	HomeBets int                `json:"home_bets"`
	AwayBets int                `json:"away_bets"`
	HomePnL  float64            `json:"home_pnl"`
	AwayPnL  float64            `json:"away_pnl"`
	TotalPnL float64            `json:"total_pnl"`
	ROI      float64            `json:"roi"`
}

// Bets returns the total bet count across both sides.
func (r RangeResult) Bets() int {
	return r.HomeBets + r.AwayBets
}

// BestSide names the more profitable side, or "NONE" when neither side
// made money.
func (r RangeResult) BestSide() string {
	switch {
	case r.HomePnL > r.AwayPnL && r.HomePnL > 0:
		return "HOME"
	case r.AwayPnL > r.HomePnL && r.AwayPnL > 0:
		return "AWAY"
	default:
		return "NONE"
	}
}

// SimulateRange applies arbitrary EV/odds bounds per side to pre-built
// rows, summing unit-stake PnL for every included bet.
func SimulateRange(rows []SimRow, policy signal.RangePolicy) RangeResult {
	result := RangeResult{Policy: policy}
	for _, row := range rows {
		in := signal.Inputs{
			EVHomePct: row.EVHome,
			EVAwayPct: row.EVAway,
			HomeOdds:  row.HomeOdds,
			AwayOdds:  row.AwayOdds,
		}
		homeIn, awayIn := policy.Includes(in)
		if homeIn {
			result.HomeBets++
			result.HomePnL += row.PnLHome
		}
		if awayIn {
			result.AwayBets++
			result.AwayPnL += row.PnLAway
		}
	}
	result.TotalPnL = result.HomePnL + result.AwayPnL
	if bets := result.Bets(); bets > 0 {
		result.ROI = result.TotalPnL / float64(bets) * 100
	}
	return result
}

// SweepEVWindows slides EV windows over the rows with fixed odds bounds
// and returns results ordered by total PnL, best first. Window pairs are
// every (lo, hi) on the step grid with lo < hi.
func SweepEVWindows(rows []SimRow, evMin, evMax, step float64, odds signal.Range) []RangeResult {
	if step <= 0 || evMax <= evMin {
		return nil
	}
	var results []RangeResult
	for lo := evMin; lo < evMax; lo += step {
		for hi := lo + step; hi <= evMax; hi += step {
			bounds := signal.Range{EVMin: lo, EVMax: hi, OddsMin: odds.OddsMin, OddsMax: odds.OddsMax}
			policy := signal.RangePolicy{Home: bounds, Away: bounds}
			res := SimulateRange(rows, policy)
			if res.Bets() == 0 {
				continue
			}
			results = append(results, res)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalPnL > results[j].TotalPnL
	})
	return results
}
