package models

import (
	"fmt"
	"strings"
)

// DefaultRating is assumed for a team whose rating is absent from the feed.
const DefaultRating = 1500.0

// Fixture is a single match row as delivered by the ingestion layer.
// Optional numeric fields are nil when the source column is missing or
// could not be parsed; the core treats nil as an explicit "absent" marker.
type Fixture struct {
	HomeTeam string
	AwayTeam string
	League   string
	Date     string

	HomeOdds *float64
	DrawOdds *float64
	AwayOdds *float64

	HomeRating *float64
	AwayRating *float64

	HomeStanding *float64
	AwayStanding *float64

	HomeScore *float64
	AwayScore *float64
}

// Odds returns the decimal odds triple, substituting zero for absent
// prices. Zero odds propagate into a degenerate normalized triple.
func (f *Fixture) Odds() (home, draw, away float64) {
	return valueOr(f.HomeOdds, 0), valueOr(f.DrawOdds, 0), valueOr(f.AwayOdds, 0)
}

// Ratings returns the strength ratings, substituting DefaultRating for
// absent values.
func (f *Fixture) Ratings() (home, away float64) {
	return valueOr(f.HomeRating, DefaultRating), valueOr(f.AwayRating, DefaultRating)
}

// MatchKey builds the fuzzy join key used to pair a prediction with a
// result row from an independently sourced file. Team names are
// lower-cased and space-stripped; there is no numeric identifier shared
// across files.
func (f *Fixture) MatchKey() string {
	return MatchKey(f.HomeTeam, f.AwayTeam)
}

// Label returns a human-readable match name for reports.
func (f *Fixture) Label() string {
	return fmt.Sprintf("%s vs %s", f.HomeTeam, f.AwayTeam)
}

// LeagueOrUnknown returns the league identifier, or "Unknown" when the
// feed carries none.
func (f *Fixture) LeagueOrUnknown() string {
	if f.League == "" {
		return "Unknown"
	}
	return f.League
}

// MatchKey normalizes two team names into the join key format.
func MatchKey(home, away string) string {
	return normalizeTeam(home) + "-" + normalizeTeam(away)
}

func normalizeTeam(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "")
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// Float64Ptr is a convenience for building fixtures in tests and
// ingestion code.
func Float64Ptr(v float64) *float64 {
	return &v
}
