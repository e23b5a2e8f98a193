// Package signal classifies fixtures into discrete betting signals by
// combining de-vigged market probabilities with a rating-model estimate.
package signal

import (
	"math"

	"github.com/yourusername/value-sniper/internal/models"
	"github.com/yourusername/value-sniper/internal/odds"
	"github.com/yourusername/value-sniper/internal/rating"
)

// Config carries the operator-tunable model parameters.
type Config struct {
	BaseHomeAdvantage    float64
	DynamicHomeAdvantage bool
}

// Evaluation is the full per-fixture output exposed to presentation and
// backtest consumers. It is produced fresh per row and never mutated.
type Evaluation struct {
	Tier     Tier
	Pick     models.Pick
	PlayOdds float64

	// Expected value per side as a percentage, rounded to two decimals.
	// Draw EV is never evaluated; the model only trades the 1/2 sides.
	EVHome float64
	EVAway float64

	// EVHomeRaw/EVAwayRaw are the unrounded percentages the policy rules
	// on; consumers re-applying bounds must use these, not the rounded
	// display values.
	EVHomeRaw float64
	EVAwayRaw float64

	// HomeAdvantage is the effective offset actually used, truncated to
	// an integer for reporting.
	HomeAdvantage int

	// Fair* are the de-vigged market probabilities; ModelHome/ModelAway
	// the rating-model split.
	FairHome  float64
	FairDraw  float64
	FairAway  float64
	ModelHome float64
	ModelAway float64
}

// Played reports whether the evaluation carries an actionable pick.
func (e Evaluation) Played() bool {
	return e.Tier != TierSkip && e.Pick != models.PickNone
}

// Classifier evaluates fixtures under a fixed configuration and policy.
// It is a pure function of its inputs: identical fixtures always yield
// identical evaluations.
type Classifier struct {
	cfg    Config
	policy Policy
}

// NewClassifier builds a classifier. A nil policy defaults to the
// standard tiered rule set.
func NewClassifier(cfg Config, policy Policy) *Classifier {
	if policy == nil {
		policy = TieredPolicy{}
	}
	if cfg.BaseHomeAdvantage == 0 {
		cfg.BaseHomeAdvantage = rating.DefaultHomeAdvantage
	}
	return &Classifier{cfg: cfg, policy: policy}
}

// Policy returns the active classification policy.
func (c *Classifier) Policy() Policy {
	return c.policy
}

// Evaluate runs the full pipeline for one fixture: effective home
// advantage, odds de-vigorization, rating split, blended EV per side,
// and the policy's threshold rules. A malformed row degrades to a SKIP
// evaluation with zero EV fields; it never aborts the batch.
func (c *Classifier) Evaluate(f *models.Fixture) Evaluation {
	hfa := rating.EffectiveHomeAdvantage(
		c.cfg.BaseHomeAdvantage, c.cfg.DynamicHomeAdvantage,
		f.HomeStanding, f.AwayStanding,
	)

	oddsHome, oddsDraw, oddsAway := f.Odds()
	ratingHome, ratingAway := f.Ratings()

	fairHome, fairDraw, fairAway := odds.Normalize(oddsHome, oddsDraw, oddsAway)
	modelHome, modelAway := rating.WinProbability(ratingHome, ratingAway, hfa)

	// Blend: the rating model splits only the non-draw probability mass.
	remaining := 1 - fairDraw
	evHome := oddsHome*(remaining*modelHome) - 1
	evAway := oddsAway*(remaining*modelAway) - 1

	eval := Evaluation{
		Tier:          TierSkip,
		HomeAdvantage: int(hfa),
		FairHome:      fairHome,
		FairDraw:      fairDraw,
		FairAway:      fairAway,
		ModelHome:     modelHome,
		ModelAway:     modelAway,
	}

	if !isFinite(evHome) || !isFinite(evAway) {
		return eval
	}

	eval.EVHomeRaw = evHome * 100
	eval.EVAwayRaw = evAway * 100
	eval.EVHome = roundPct(eval.EVHomeRaw)
	eval.EVAway = roundPct(eval.EVAwayRaw)

	pick := c.policy.Apply(Inputs{
		EVHomePct: eval.EVHomeRaw,
		EVAwayPct: eval.EVAwayRaw,
		HomeOdds:  oddsHome,
		AwayOdds:  oddsAway,
	})
	eval.Tier = pick.Tier
	eval.Pick = pick.Side
	eval.PlayOdds = pick.PlayOdds
	return eval
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func roundPct(v float64) float64 {
	return math.Round(v*100) / 100
}
