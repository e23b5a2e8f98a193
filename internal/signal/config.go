package signal

import (
	"fmt"

	"github.com/yourusername/value-sniper/internal/config"
)

// FromConfig builds a classifier from application configuration,
// resolving the policy selector to a concrete rule set.
func FromConfig(cfg *config.Config) (*Classifier, error) {
	policy, err := PolicyFromConfig(&cfg.Signals)
	if err != nil {
		return nil, err
	}
	return NewClassifier(Config{
		BaseHomeAdvantage:    cfg.Model.BaseHomeAdvantage,
		DynamicHomeAdvantage: cfg.Model.DynamicHomeAdvantage,
	}, policy), nil
}

// PolicyFromConfig resolves a policy selector to its rule set.
func PolicyFromConfig(cfg *config.SignalsConfig) (Policy, error) {
	switch cfg.Policy {
	case "tiered", "":
		return TieredPolicy{}, nil
	case "golden":
		return GoldenPolicy{}, nil
	case "range":
		return RangePolicy{
			Home: rangeFromBounds(cfg.Range.Home),
			Away: rangeFromBounds(cfg.Range.Away),
		}, nil
	default:
		return nil, fmt.Errorf("unknown signal policy %q", cfg.Policy)
	}
}

func rangeFromBounds(b config.RangeBounds) Range {
	return Range{EVMin: b.EVMin, EVMax: b.EVMax, OddsMin: b.OddsMin, OddsMax: b.OddsMax}
}
