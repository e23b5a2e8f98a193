// Package rating converts Elo-style team strength ratings into win
// probabilities, with a context-adjusted home-field advantage term.
package rating

import "math"

// ratingScale is the logistic scale of the rating system: a 400-point
// gap maps to 10:1 win odds. It is a modeling constant, not tunable.
const ratingScale = 400.0

// WinProbability converts two ratings and a home-advantage offset (in
// rating points) into a two-way home/away probability split.
//
// Degenerate inputs that break the arithmetic return (0, 0); callers
// must treat that as "no usable model signal" and classify the row as a
// skip rather than surfacing an error.
func WinProbability(home, away, homeAdvantage float64) (pHome, pAway float64) {
	diff := away - (home + homeAdvantage)
	pHome = 1 / (1 + math.Pow(10, diff/ratingScale))
	if math.IsNaN(pHome) || math.IsInf(pHome, 0) {
		return 0, 0
	}
	return pHome, 1 - pHome
}
