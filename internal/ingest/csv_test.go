package ingest

import (
	"strings"
	"testing"

	"github.com/yourusername/value-sniper/internal/models"
)

func TestReadFixtures(t *testing.T) {
	data := strings.Join([]string{
		"txtechipa1;txtechipa2;league;datameci;cotaa;cotae;cotad;ELOC;ELOO;Place 1a;Place 2d;scor1;scor2",
		"FC Alpha;Beta United;E1;2024-03-02;2,10;3,40;3,80;1600;1500;5;12;2;1",
		"Gamma;Delta;SP1;2024-03-03;1.95;3.30;4.20;1550;1480;;;;",
	}, "\n")

	fixtures, err := NewReader(';').ReadFixtures(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadFixtures: %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("got %d fixtures, want 2", len(fixtures))
	}

	f := fixtures[0]
	if f.HomeTeam != "FC Alpha" || f.AwayTeam != "Beta United" {
		t.Errorf("teams = (%q, %q)", f.HomeTeam, f.AwayTeam)
	}
	if f.League != "E1" || f.Date != "2024-03-02" {
		t.Errorf("league/date = (%q, %q)", f.League, f.Date)
	}
	if f.HomeOdds == nil || *f.HomeOdds != 2.10 {
		t.Errorf("home odds = %v, want 2.10 (comma decimal)", f.HomeOdds)
	}
	if f.HomeRating == nil || *f.HomeRating != 1600 {
		t.Errorf("home rating = %v, want 1600", f.HomeRating)
	}
	if f.HomeStanding == nil || *f.HomeStanding != 5 {
		t.Errorf("home standing = %v, want 5", f.HomeStanding)
	}
	if f.HomeScore == nil || *f.HomeScore != 2 {
		t.Errorf("home score = %v, want 2", f.HomeScore)
	}

	// Second row carries no standings or scores.
	g := fixtures[1]
	if g.HomeStanding != nil || g.HomeScore != nil {
		t.Errorf("absent cells should stay nil: standing=%v score=%v", g.HomeStanding, g.HomeScore)
	}
	if g.AwayOdds == nil || *g.AwayOdds != 4.20 {
		t.Errorf("away odds = %v, want 4.20", g.AwayOdds)
	}
}

func TestReadFixturesAlternateHeaders(t *testing.T) {
	data := strings.Join([]string{
		"home;away;1;x;2;eloHomeO;eloAwayO",
		"Alpha;Beta;2.00;3.40;3.80;1600;1500",
	}, "\n")

	fixtures, err := NewReader(';').ReadFixtures(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadFixtures: %v", err)
	}
	f := fixtures[0]
	if f.HomeTeam != "Alpha" {
		t.Errorf("home team = %q", f.HomeTeam)
	}
	if f.DrawOdds == nil || *f.DrawOdds != 3.40 {
		t.Errorf("draw odds = %v, want 3.40", f.DrawOdds)
	}
	if f.AwayRating == nil || *f.AwayRating != 1500 {
		t.Errorf("away rating = %v, want 1500", f.AwayRating)
	}
}

func TestReadFixturesCommaSeparator(t *testing.T) {
	data := strings.Join([]string{
		"home,away,1,x,2",
		"Alpha,Beta,2.00,3.40,3.80",
	}, "\n")

	fixtures, err := NewReader(',').ReadFixtures(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadFixtures: %v", err)
	}
	if len(fixtures) != 1 || fixtures[0].HomeTeam != "Alpha" {
		t.Errorf("fixtures = %+v", fixtures)
	}
}

func TestReadFixturesMalformedCells(t *testing.T) {
	data := strings.Join([]string{
		"home;away;1;x;2;eloc",
		"Alpha;Beta;abc;3.40;3.80;n/a",
	}, "\n")

	fixtures, err := NewReader(';').ReadFixtures(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadFixtures: %v", err)
	}
	f := fixtures[0]
	if f.HomeOdds != nil {
		t.Errorf("malformed odds cell should be nil, got %v", *f.HomeOdds)
	}
	if f.HomeRating != nil {
		t.Errorf("malformed rating cell should be nil, got %v", *f.HomeRating)
	}
}

func TestReadFixturesDropsEmptyRows(t *testing.T) {
	data := strings.Join([]string{
		"home;away;1;x;2",
		"Alpha;Beta;2.00;3.40;3.80",
		";;;;",
	}, "\n")

	fixtures, err := NewReader(';').ReadFixtures(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadFixtures: %v", err)
	}
	if len(fixtures) != 1 {
		t.Errorf("got %d fixtures, want 1", len(fixtures))
	}
}

func TestReadFixturesEmptyDataset(t *testing.T) {
	if _, err := NewReader(';').ReadFixtures(strings.NewReader("")); err != models.ErrEmptyDataset {
		t.Errorf("empty input: err = %v, want ErrEmptyDataset", err)
	}

	headerOnly := "home;away;1;x;2\n"
	if _, err := NewReader(';').ReadFixtures(strings.NewReader(headerOnly)); err != models.ErrEmptyDataset {
		t.Errorf("header only: err = %v, want ErrEmptyDataset", err)
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"2.10", models.Float64Ptr(2.10)},
		{"2,10", models.Float64Ptr(2.10)},
		{"1600", models.Float64Ptr(1600)},
		{"", nil},
		{"-", nil},
		{"abc", nil},
	}
	for _, tc := range cases {
		got := parseNumber(tc.in)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("parseNumber(%q) = %v, want nil", tc.in, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Errorf("parseNumber(%q) = %v, want %v", tc.in, got, *tc.want)
		}
	}
}
