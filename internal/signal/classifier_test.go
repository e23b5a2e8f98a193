package signal

import (
	"math"
	"testing"

	"github.com/yourusername/value-sniper/internal/models"
)

func fixture(home, draw, away, homeRating, awayRating float64) *models.Fixture {
	return &models.Fixture{
		HomeTeam:   "Alpha",
		AwayTeam:   "Beta",
		HomeOdds:   models.Float64Ptr(home),
		DrawOdds:   models.Float64Ptr(draw),
		AwayOdds:   models.Float64Ptr(away),
		HomeRating: models.Float64Ptr(homeRating),
		AwayRating: models.Float64Ptr(awayRating),
	}
}

func TestClassifierHomeSignal(t *testing.T) {
	c := NewClassifier(Config{BaseHomeAdvantage: 90}, nil)

	// Market prices the home side at 2.00 while the ratings imply ~75%.
	eval := c.Evaluate(fixture(2.00, 3.40, 3.80, 1600, 1500))

	if eval.Tier != TierHomeStrong {
		t.Fatalf("tier = %s, want %s", eval.Tier, TierHomeStrong)
	}
	if eval.Pick != models.PickHome {
		t.Errorf("pick = %q, want %q", eval.Pick, models.PickHome)
	}
	if eval.PlayOdds != 2.00 {
		t.Errorf("play odds = %v, want 2.00", eval.PlayOdds)
	}
	if math.Abs(eval.EVHome-8.14) > 0.005 {
		t.Errorf("EVHome = %v, want ~8.14", eval.EVHome)
	}
	if eval.HomeAdvantage != 90 {
		t.Errorf("home advantage = %d, want 90", eval.HomeAdvantage)
	}
	if math.Abs(eval.FairDraw-0.278184) > 1e-5 {
		t.Errorf("FairDraw = %v, want ~0.278184", eval.FairDraw)
	}
	if math.Abs(eval.ModelHome-0.749083) > 1e-5 {
		t.Errorf("ModelHome = %v, want ~0.749083", eval.ModelHome)
	}
}

func TestClassifierAwaySignal(t *testing.T) {
	c := NewClassifier(Config{BaseHomeAdvantage: 90}, nil)

	eval := c.Evaluate(fixture(3.20, 3.40, 2.20, 1450, 1700))

	if eval.Tier != TierAwayStrong {
		t.Fatalf("tier = %s, want %s", eval.Tier, TierAwayStrong)
	}
	if eval.Pick != models.PickAway {
		t.Errorf("pick = %q, want %q", eval.Pick, models.PickAway)
	}
	if eval.PlayOdds != 2.20 {
		t.Errorf("play odds = %v, want 2.20", eval.PlayOdds)
	}
	if math.Abs(eval.EVAway-13.74) > 0.005 {
		t.Errorf("EVAway = %v, want ~13.74", eval.EVAway)
	}
}

// The rounded EV fields are display values; the raw fields keep the full
// precision the policy actually ruled on.
func TestClassifierRawEV(t *testing.T) {
	c := NewClassifier(Config{BaseHomeAdvantage: 90}, nil)

	eval := c.Evaluate(fixture(3.20, 3.40, 2.20, 1450, 1700))

	if math.Abs(eval.EVAwayRaw-13.742083) > 1e-5 {
		t.Errorf("EVAwayRaw = %v, want ~13.742083", eval.EVAwayRaw)
	}
	if math.Abs(eval.EVHomeRaw-(-34.135943)) > 1e-5 {
		t.Errorf("EVHomeRaw = %v, want ~-34.135943", eval.EVHomeRaw)
	}
	if eval.EVAway != roundPct(eval.EVAwayRaw) {
		t.Errorf("EVAway = %v, want rounded form of %v", eval.EVAway, eval.EVAwayRaw)
	}
}

func TestClassifierGoldenPolicy(t *testing.T) {
	c := NewClassifier(Config{BaseHomeAdvantage: 90}, GoldenPolicy{})

	// Same row as the away-strong case: EV ~13.74% at 2.20 sits inside
	// the golden window.
	eval := c.Evaluate(fixture(3.20, 3.40, 2.20, 1450, 1700))
	if eval.Tier != TierGolden {
		t.Fatalf("tier = %s, want %s", eval.Tier, TierGolden)
	}

	// A strong home edge is invisible to the golden policy.
	eval = c.Evaluate(fixture(2.00, 3.40, 3.80, 1600, 1500))
	if eval.Tier != TierSkip {
		t.Errorf("tier = %s, want %s", eval.Tier, TierSkip)
	}
}

func TestClassifierDynamicHomeAdvantage(t *testing.T) {
	c := NewClassifier(Config{BaseHomeAdvantage: 90, DynamicHomeAdvantage: true}, nil)

	f := fixture(2.00, 3.40, 3.80, 1600, 1500)
	f.HomeStanding = models.Float64Ptr(15)
	f.AwayStanding = models.Float64Ptr(3)

	eval := c.Evaluate(f)
	if eval.HomeAdvantage != 54 {
		t.Errorf("home advantage = %d, want 54", eval.HomeAdvantage)
	}
}

func TestClassifierDegenerateOdds(t *testing.T) {
	c := NewClassifier(Config{}, nil)

	f := &models.Fixture{HomeTeam: "Alpha", AwayTeam: "Beta"}
	eval := c.Evaluate(f)

	if eval.Tier != TierSkip {
		t.Fatalf("tier = %s, want %s", eval.Tier, TierSkip)
	}
	if eval.Played() {
		t.Error("degenerate row must not be playable")
	}
	if eval.FairHome != 0 || eval.FairDraw != 0 || eval.FairAway != 0 {
		t.Errorf("fair probabilities = (%v, %v, %v), want degenerate zeros",
			eval.FairHome, eval.FairDraw, eval.FairAway)
	}
}

func TestClassifierMissingRatingsUseDefault(t *testing.T) {
	c := NewClassifier(Config{BaseHomeAdvantage: 90}, nil)

	f := &models.Fixture{
		HomeTeam: "Alpha",
		AwayTeam: "Beta",
		HomeOdds: models.Float64Ptr(2.00),
		DrawOdds: models.Float64Ptr(3.40),
		AwayOdds: models.Float64Ptr(3.80),
	}
	eval := c.Evaluate(f)

	// Both sides default to 1500, so the model split is driven purely by
	// the home-advantage offset.
	if math.Abs(eval.ModelHome-0.626699) > 1e-5 {
		t.Errorf("ModelHome = %v, want ~0.626699", eval.ModelHome)
	}
}

func TestClassifierDeterministic(t *testing.T) {
	c := NewClassifier(Config{BaseHomeAdvantage: 90, DynamicHomeAdvantage: true}, nil)
	f := fixture(2.00, 3.40, 3.80, 1600, 1500)

	first := c.Evaluate(f)
	for i := 0; i < 10; i++ {
		if got := c.Evaluate(f); got != first {
			t.Fatalf("evaluation differs on repeat: %+v vs %+v", got, first)
		}
	}
}
