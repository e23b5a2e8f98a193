package backtest

import (
	"math"
	"testing"

	"github.com/yourusername/value-sniper/internal/models"
	"github.com/yourusername/value-sniper/internal/signal"
)

func playedEval(side models.Pick, odds float64) signal.Evaluation {
	tier := signal.TierHomeValue
	if side == models.PickAway {
		tier = signal.TierAwayValue
	}
	return signal.Evaluation{Tier: tier, Pick: side, PlayOdds: odds}
}

func wonResult(pick models.Pick) Result {
	if pick == models.PickHome {
		return Result{
			HomeScore: models.Float64Ptr(2),
			AwayScore: models.Float64Ptr(0),
			Outcome:   models.OutcomeHome,
		}
	}
	return Result{
		HomeScore: models.Float64Ptr(0),
		AwayScore: models.Float64Ptr(2),
		Outcome:   models.OutcomeAway,
	}
}

func lostResult(pick models.Pick) Result {
	if pick == models.PickHome {
		return wonResult(models.PickAway)
	}
	return wonResult(models.PickHome)
}

// Ten verified bets at evens, six winners: 60% strike rate, +20 units
// on 100 staked.
func TestAggregatorSummary(t *testing.T) {
	agg := NewAggregator(10)
	f := &models.Fixture{HomeTeam: "Alpha", AwayTeam: "Beta", League: "E1"}

	for i := 0; i < 6; i++ {
		agg.Record(f, playedEval(models.PickHome, 2.0), wonResult(models.PickHome), true)
	}
	for i := 0; i < 4; i++ {
		agg.Record(f, playedEval(models.PickHome, 2.0), lostResult(models.PickHome), true)
	}

	s := agg.Summary()
	if s.Signals != 10 || s.Verified != 10 || s.Unverified != 0 {
		t.Fatalf("counts = (%d, %d, %d), want (10, 10, 0)", s.Signals, s.Verified, s.Unverified)
	}
	if s.Wins != 6 {
		t.Errorf("wins = %d, want 6", s.Wins)
	}
	if math.Abs(s.WinRate-60) > 1e-9 {
		t.Errorf("win rate = %v, want 60", s.WinRate)
	}
	if math.Abs(s.TotalPnL-20) > 1e-9 {
		t.Errorf("total PnL = %v, want 20", s.TotalPnL)
	}
	if math.Abs(s.ROI-20) > 1e-9 {
		t.Errorf("ROI = %v, want 20", s.ROI)
	}
}

func TestAggregatorUnverified(t *testing.T) {
	agg := NewAggregator(10)
	f := &models.Fixture{HomeTeam: "Alpha", AwayTeam: "Beta"}

	agg.Record(f, playedEval(models.PickAway, 2.5), Result{Outcome: models.OutcomeUnknown}, false)
	agg.Record(f, playedEval(models.PickAway, 2.5), Result{Outcome: models.OutcomeUnknown}, true)

	s := agg.Summary()
	if s.Signals != 2 || s.Verified != 0 || s.Unverified != 2 {
		t.Fatalf("counts = (%d, %d, %d), want (2, 0, 2)", s.Signals, s.Verified, s.Unverified)
	}
	if s.TotalPnL != 0 || s.WinRate != 0 || s.ROI != 0 {
		t.Errorf("unverified bets must not move the metrics: %+v", s)
	}
	if len(agg.History()) != 0 {
		t.Errorf("unverified bets must not enter history, got %d records", len(agg.History()))
	}
}

func TestAggregatorIgnoresSkips(t *testing.T) {
	agg := NewAggregator(10)
	f := &models.Fixture{HomeTeam: "Alpha", AwayTeam: "Beta"}

	agg.Record(f, signal.Evaluation{Tier: signal.TierSkip}, wonResult(models.PickHome), true)

	if s := agg.Summary(); s.Signals != 0 {
		t.Errorf("skip recorded as signal: %+v", s)
	}
}

// A draw settles against both sides.
func TestAggregatorDrawLoses(t *testing.T) {
	agg := NewAggregator(10)
	f := &models.Fixture{HomeTeam: "Alpha", AwayTeam: "Beta"}
	draw := Result{
		HomeScore: models.Float64Ptr(1),
		AwayScore: models.Float64Ptr(1),
		Outcome:   models.OutcomeDraw,
	}

	agg.Record(f, playedEval(models.PickHome, 2.0), draw, true)
	agg.Record(f, playedEval(models.PickAway, 2.0), draw, true)

	s := agg.Summary()
	if s.Wins != 0 {
		t.Errorf("wins = %d, want 0", s.Wins)
	}
	if math.Abs(s.TotalPnL+20) > 1e-9 {
		t.Errorf("total PnL = %v, want -20", s.TotalPnL)
	}
}

func TestAggregatorGroupings(t *testing.T) {
	agg := NewAggregator(10)

	e1 := &models.Fixture{HomeTeam: "Alpha", AwayTeam: "Beta", League: "E1"}
	sp1 := &models.Fixture{HomeTeam: "Gamma", AwayTeam: "Delta", League: "SP1"}
	noLeague := &models.Fixture{HomeTeam: "Epsilon", AwayTeam: "Zeta"}

	agg.Record(e1, playedEval(models.PickHome, 1.80), wonResult(models.PickHome), true)
	agg.Record(sp1, playedEval(models.PickAway, 2.40), lostResult(models.PickAway), true)
	agg.Record(noLeague, playedEval(models.PickHome, 3.20), wonResult(models.PickHome), true)

	byLeague := agg.ByLeague()
	if got := byLeague["E1"]; got.Bets != 1 || got.Wins != 1 || math.Abs(got.PnL-8) > 1e-9 {
		t.Errorf("E1 stats = %+v", got)
	}
	if got := byLeague["SP1"]; got.Bets != 1 || got.Wins != 0 || math.Abs(got.PnL+10) > 1e-9 {
		t.Errorf("SP1 stats = %+v", got)
	}
	if _, ok := byLeague["Unknown"]; !ok {
		t.Error("missing league should group under Unknown")
	}

	byOdds := agg.ByOddsBucket()
	if got := byOdds["1.5-2.0"]; got.Bets != 1 {
		t.Errorf("1.5-2.0 bucket = %+v", got)
	}
	if got := byOdds["2.0-2.5"]; got.Bets != 1 {
		t.Errorf("2.0-2.5 bucket = %+v", got)
	}
	if got := byOdds["3.0-4.0"]; got.Bets != 1 {
		t.Errorf("3.0-4.0 bucket = %+v", got)
	}
}

func TestAggregatorHistoryRecord(t *testing.T) {
	agg := NewAggregator(10)
	f := &models.Fixture{HomeTeam: "Alpha", AwayTeam: "Beta", League: "E1"}

	agg.Record(f, playedEval(models.PickHome, 1.80), wonResult(models.PickHome), true)

	history := agg.History()
	if len(history) != 1 {
		t.Fatalf("history has %d records, want 1", len(history))
	}
	rec := history[0]
	if rec.Match != "Alpha vs Beta" {
		t.Errorf("match = %q", rec.Match)
	}
	if rec.ScoreLine != "2-0 (1)" {
		t.Errorf("score line = %q, want \"2-0 (1)\"", rec.ScoreLine)
	}
	if !rec.Won || math.Abs(rec.ProfitLoss-8) > 1e-9 {
		t.Errorf("settlement = (won=%v, pnl=%v), want (true, 8)", rec.Won, rec.ProfitLoss)
	}
}

func TestBucketLabel(t *testing.T) {
	cases := []struct {
		price float64
		label string
	}{
		{1.01, "1.0-1.5"},
		{1.5, "1.0-1.5"},
		{1.51, "1.5-2.0"},
		{2.0, "1.5-2.0"},
		{2.5, "2.0-2.5"},
		{3.0, "2.5-3.0"},
		{4.0, "3.0-4.0"},
		{4.01, "4.0+"},
		{10.0, "4.0+"},
		{1.0, ""},
		{11.0, ""},
	}
	for _, tc := range cases {
		if got := BucketLabel(tc.price); got != tc.label {
			t.Errorf("BucketLabel(%v) = %q, want %q", tc.price, got, tc.label)
		}
	}
}
