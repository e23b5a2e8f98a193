package backtest

import (
	"github.com/yourusername/value-sniper/internal/models"
)

// Result is a resolved final score for one fixture key.
type Result struct {
	HomeScore *float64
	AwayScore *float64
	Outcome   models.Outcome
}

// ResultIndex maps fuzzy match keys to realized results. The join key is
// a best-effort construct (lower-cased, space-stripped team names) since
// the prediction and result files share no numeric identifier. When two
// result rows collide on a key the later row wins; DuplicateKeys counts
// how often that happened so callers can surface it.
type ResultIndex struct {
	results       map[string]Result
	DuplicateKeys int
}

// BuildResultIndex folds a results dataset into a lookup table. Rows
// without both scores still enter the index so their fixtures count as
// unverified rather than unmatched.
func BuildResultIndex(rows []*models.Fixture) *ResultIndex {
	idx := &ResultIndex{results: make(map[string]Result, len(rows))}
	for _, row := range rows {
		key := row.MatchKey()
		if key == "-" {
			continue
		}
		if _, exists := idx.results[key]; exists {
			idx.DuplicateKeys++
		}
		idx.results[key] = Result{
			HomeScore: row.HomeScore,
			AwayScore: row.AwayScore,
			Outcome:   models.OutcomeFromScores(row.HomeScore, row.AwayScore),
		}
	}
	return idx
}

// Len returns the number of distinct keys in the index.
func (idx *ResultIndex) Len() int {
	return len(idx.results)
}

// Resolve looks up the realized result for a fixture. The boolean is
// false when no result row matched the key at all; a matched row with
// missing scores resolves with OutcomeUnknown.
func (idx *ResultIndex) Resolve(f *models.Fixture) (Result, bool) {
	res, ok := idx.results[f.MatchKey()]
	if !ok {
		return Result{Outcome: models.OutcomeUnknown}, false
	}
	return res, true
}
