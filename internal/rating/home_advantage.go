package rating

import "math"

const (
	// DefaultHomeAdvantage is the base home-field offset in rating points.
	DefaultHomeAdvantage = 90.0

	// standingWeight converts one place of league-standing difference
	// into rating points of home-advantage adjustment.
	standingWeight = 3.0

	homeAdvantageMin = 0.0
	homeAdvantageMax = 200.0
)

// EffectiveHomeAdvantage adjusts the base home-advantage offset using
// relative league standings. A lower standing number means a stronger
// side, so an away team placed well above the home team erodes the home
// edge. The adjusted value is clamped to [0, 200].
//
// With the dynamic flag off, or either standing absent, the base value
// is returned unchanged.
func EffectiveHomeAdvantage(base float64, dynamic bool, homeStanding, awayStanding *float64) float64 {
	if !dynamic || homeStanding == nil || awayStanding == nil {
		return base
	}
	adjusted := base + (*awayStanding-*homeStanding)*standingWeight
	if math.IsNaN(adjusted) {
		return base
	}
	return math.Max(homeAdvantageMin, math.Min(adjusted, homeAdvantageMax))
}
