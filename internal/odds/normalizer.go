// Package odds converts quoted bookmaker prices into fair probabilities.
package odds

import "math"

// Normalize strips the bookmaker's overround from a three-way decimal
// odds triple and returns fair implied probabilities summing to 1.
//
// Any price at or below zero marks the market as degenerate: the
// function returns (0, 0, 0) rather than an error, and downstream
// expected values resolve to -1, so threshold rules exclude the row
// naturally.
func Normalize(home, draw, away float64) (pHome, pDraw, pAway float64) {
	if home <= 0 || draw <= 0 || away <= 0 {
		return 0, 0, 0
	}
	iHome := 1 / home
	iDraw := 1 / draw
	iAway := 1 / away
	sum := iHome + iDraw + iAway
	if math.IsNaN(sum) || math.IsInf(sum, 0) || sum == 0 {
		return 0, 0, 0
	}
	return iHome / sum, iDraw / sum, iAway / sum
}

// Overround returns the bookmaker margin embedded in a three-way quote,
// as a fraction above 1. Degenerate quotes return 0.
func Overround(home, draw, away float64) float64 {
	if home <= 0 || draw <= 0 || away <= 0 {
		return 0
	}
	return 1/home + 1/draw + 1/away - 1
}
