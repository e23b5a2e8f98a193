package backtest

import (
	"testing"

	"github.com/yourusername/value-sniper/internal/models"
)

func resultRow(home, away string, homeScore, awayScore float64) *models.Fixture {
	return &models.Fixture{
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: models.Float64Ptr(homeScore),
		AwayScore: models.Float64Ptr(awayScore),
	}
}

func TestBuildResultIndex(t *testing.T) {
	idx := BuildResultIndex([]*models.Fixture{
		resultRow("FC Alpha", "Beta United", 2, 1),
		resultRow("Gamma", "Delta", 0, 0),
	})

	if idx.Len() != 2 {
		t.Fatalf("index has %d keys, want 2", idx.Len())
	}

	// Lookup must survive case and whitespace differences between files.
	res, ok := idx.Resolve(&models.Fixture{HomeTeam: "fc alpha", AwayTeam: "BETA UNITED"})
	if !ok {
		t.Fatal("normalized key did not match")
	}
	if res.Outcome != models.OutcomeHome {
		t.Errorf("outcome = %s, want %s", res.Outcome, models.OutcomeHome)
	}

	res, ok = idx.Resolve(&models.Fixture{HomeTeam: "Gamma", AwayTeam: "Delta"})
	if !ok || res.Outcome != models.OutcomeDraw {
		t.Errorf("draw row resolved as (%s, %v)", res.Outcome, ok)
	}

	if _, ok := idx.Resolve(&models.Fixture{HomeTeam: "Nobody", AwayTeam: "Else"}); ok {
		t.Error("unknown key should not resolve")
	}
}

func TestBuildResultIndexDuplicates(t *testing.T) {
	idx := BuildResultIndex([]*models.Fixture{
		resultRow("Alpha", "Beta", 1, 0),
		resultRow("alpha", "beta", 0, 3),
	})

	if idx.DuplicateKeys != 1 {
		t.Fatalf("DuplicateKeys = %d, want 1", idx.DuplicateKeys)
	}

	// Last write wins on collision.
	res, _ := idx.Resolve(&models.Fixture{HomeTeam: "Alpha", AwayTeam: "Beta"})
	if res.Outcome != models.OutcomeAway {
		t.Errorf("outcome = %s, want last-written %s", res.Outcome, models.OutcomeAway)
	}
}

func TestBuildResultIndexSkipsEmptyNames(t *testing.T) {
	idx := BuildResultIndex([]*models.Fixture{
		{HomeScore: models.Float64Ptr(1), AwayScore: models.Float64Ptr(0)},
	})
	if idx.Len() != 0 {
		t.Errorf("nameless rows must not enter the index, got %d keys", idx.Len())
	}
}

func TestResolveMissingScores(t *testing.T) {
	idx := BuildResultIndex([]*models.Fixture{
		{HomeTeam: "Alpha", AwayTeam: "Beta"},
	})

	res, ok := idx.Resolve(&models.Fixture{HomeTeam: "Alpha", AwayTeam: "Beta"})
	if !ok {
		t.Fatal("row without scores should still match the key")
	}
	if res.Outcome != models.OutcomeUnknown {
		t.Errorf("outcome = %s, want %s", res.Outcome, models.OutcomeUnknown)
	}
}
