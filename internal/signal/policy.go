package signal

import "github.com/yourusername/value-sniper/internal/models"

// Tier identifies the strength and side of an emitted betting signal.
type Tier string

const (
	TierSkip       Tier = "SKIP"
	TierAwayStrong Tier = "AWAY-STRONG"
	TierAwayValue  Tier = "AWAY-VALUE"
	TierHomeStrong Tier = "HOME-STRONG"
	TierHomeValue  Tier = "HOME-VALUE"
	TierGolden     Tier = "GOLDEN"
	TierRangeAway  Tier = "RANGE-AWAY"
	TierRangeHome  Tier = "RANGE-HOME"
)

// SortRank orders tiers for display: high-conviction picks first, then
// standard value picks. Unranked tiers sort last.
func (t Tier) SortRank() int {
	switch t {
	case TierGolden:
		return 0
	case TierAwayStrong:
		return 1
	case TierHomeStrong:
		return 2
	case TierAwayValue:
		return 3
	case TierHomeValue:
		return 4
	default:
		return 5
	}
}

// Inputs carries the per-row values a policy rules on: expected value
// per side (as a percentage) and the quoted decimal odds per side.
type Inputs struct {
	EVHomePct float64
	EVAwayPct float64
	HomeOdds  float64
	AwayOdds  float64
}

// Policy maps EV/odds inputs to a discrete signal tier. Rules within a
// policy are ordered and mutually exclusive: the first match wins, and
// away-side rules are always evaluated before home-side rules as a
// deliberate tie-break.
type Policy interface {
	Name() string
	Apply(in Inputs) Pick
}

// Pick is a policy decision: the emitted tier, the side backed, and the
// odds at which that side would be played. A skip carries no side.
type Pick struct {
	Tier     Tier
	Side     models.Pick
	PlayOdds float64
}

func skip() Pick {
	return Pick{Tier: TierSkip, Side: models.PickNone}
}

// TieredPolicy is the standard two-tier rule set per side.
type TieredPolicy struct{}

// Name returns the policy selector value.
func (TieredPolicy) Name() string { return "tiered" }

// Apply evaluates away-strong, away-value, home-strong, home-value in
// order and returns the first rule that fires.
func (TieredPolicy) Apply(in Inputs) Pick {
	switch {
	case in.EVAwayPct > 4.0 && in.AwayOdds >= 1.70 && in.AwayOdds <= 3.50:
		return Pick{Tier: TierAwayStrong, Side: models.PickAway, PlayOdds: in.AwayOdds}
	case in.EVAwayPct > 1.5 && in.AwayOdds >= 1.50 && in.AwayOdds <= 4.00:
		return Pick{Tier: TierAwayValue, Side: models.PickAway, PlayOdds: in.AwayOdds}
	case in.EVHomePct > 4.0 && in.HomeOdds >= 1.50 && in.HomeOdds <= 2.50:
		return Pick{Tier: TierHomeStrong, Side: models.PickHome, PlayOdds: in.HomeOdds}
	case in.EVHomePct > 1.5 && in.HomeOdds >= 1.40 && in.HomeOdds <= 3.00:
		return Pick{Tier: TierHomeValue, Side: models.PickHome, PlayOdds: in.HomeOdds}
	default:
		return skip()
	}
}

// GoldenPolicy is a single away-side rule on a narrow EV and odds
// window. Everything outside the window is a skip.
type GoldenPolicy struct{}

// Name returns the policy selector value.
func (GoldenPolicy) Name() string { return "golden" }

// Apply fires only for away EV in [11.0, 19.5]% at odds in [2.06, 2.80].
func (GoldenPolicy) Apply(in Inputs) Pick {
	if in.EVAwayPct >= 11.0 && in.EVAwayPct <= 19.5 &&
		in.AwayOdds >= 2.06 && in.AwayOdds <= 2.80 {
		return Pick{Tier: TierGolden, Side: models.PickAway, PlayOdds: in.AwayOdds}
	}
	return skip()
}

// Range bounds an EV percentage window and an odds window.
type Range struct {
	EVMin   float64
	EVMax   float64
	OddsMin float64
	OddsMax float64
}

// Contains reports whether an (EV%, odds) pair falls inside the range.
func (r Range) Contains(evPct, odds float64) bool {
	return evPct >= r.EVMin && evPct <= r.EVMax &&
		odds >= r.OddsMin && odds <= r.OddsMax
}

// RangePolicy accepts arbitrary EV/odds bounds per side at runtime. It
// is used for offline parameter sweeps, where inclusion is a boolean per
// side rather than a named tier.
type RangePolicy struct {
	Home Range
	Away Range
}

// Name returns the policy selector value.
func (RangePolicy) Name() string { return "range" }

// Includes reports per-side inclusion without collapsing to one signal.
func (p RangePolicy) Includes(in Inputs) (home, away bool) {
	return p.Home.Contains(in.EVHomePct, in.HomeOdds),
		p.Away.Contains(in.EVAwayPct, in.AwayOdds)
}

// Apply collapses the per-side booleans into one signal for classifier
// use, away side first like the fixed policies.
func (p RangePolicy) Apply(in Inputs) Pick {
	homeIn, awayIn := p.Includes(in)
	switch {
	case awayIn:
		return Pick{Tier: TierRangeAway, Side: models.PickAway, PlayOdds: in.AwayOdds}
	case homeIn:
		return Pick{Tier: TierRangeHome, Side: models.PickHome, PlayOdds: in.HomeOdds}
	default:
		return skip()
	}
}
