package models

import "fmt"

// Outcome is the realized result of a match.
type Outcome string

const (
	OutcomeHome    Outcome = "1"
	OutcomeDraw    Outcome = "X"
	OutcomeAway    Outcome = "2"
	OutcomeUnknown Outcome = "-"
)

// Pick is the side a signal would back. The model only ever trades the
// home or away side; draws are never picked.
type Pick string

const (
	PickNone Pick = ""
	PickHome Pick = "1"
	PickAway Pick = "2"
)

// OutcomeFromScores derives the match outcome from final scores. Either
// score missing means the result cannot be resolved.
func OutcomeFromScores(home, away *float64) Outcome {
	if home == nil || away == nil {
		return OutcomeUnknown
	}
	switch {
	case *home > *away:
		return OutcomeHome
	case *away > *home:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

// Matches reports whether a pick won against this outcome. A draw never
// matches a pick, and an unknown outcome matches nothing.
func (o Outcome) Matches(p Pick) bool {
	switch o {
	case OutcomeHome:
		return p == PickHome
	case OutcomeAway:
		return p == PickAway
	default:
		return false
	}
}

// ScoreLine formats a resolved score for bet history reports, e.g. "2-1 (1)".
func ScoreLine(home, away *float64, outcome Outcome) string {
	if home == nil || away == nil {
		return ""
	}
	return fmt.Sprintf("%d-%d (%s)", int(*home), int(*away), outcome)
}
