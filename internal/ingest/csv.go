// Package ingest reads delimited fixture files into the core's row
// model, normalizing column names and numeric formats on the way in.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/value-sniper/internal/models"
)

// Reader parses delimited fixture datasets.
type Reader struct {
	separator rune
}

// NewReader creates a reader for the given field separator; the feeds
// this tool consumes default to semicolons.
func NewReader(separator rune) *Reader {
	if separator == 0 {
		separator = ';'
	}
	return &Reader{separator: separator}
}

// ReadFixtures parses a dataset into fixtures. Header names are trimmed
// and matched case-insensitively against the known aliases; unknown
// columns are ignored. Rows without a home price are dropped as empty,
// matching the upstream export format. Malformed numeric cells become
// absent values, never errors: one bad cell must not lose the batch.
func (r *Reader) ReadFixtures(src io.Reader) ([]*models.Fixture, error) {
	cr := csv.NewReader(src)
	cr.Comma = r.separator
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, models.ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := resolveColumns(header)

	var fixtures []*models.Fixture
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip unparsable lines the way the source tolerated bad rows.
			if _, ok := err.(*csv.ParseError); ok {
				continue
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		fixture := buildFixture(columns, record)
		if fixture.HomeOdds == nil && fixture.HomeTeam == "" {
			continue
		}
		fixtures = append(fixtures, fixture)
	}

	if len(fixtures) == 0 {
		return nil, models.ErrEmptyDataset
	}
	return fixtures, nil
}

// resolveColumns maps record positions to canonical field names.
func resolveColumns(header []string) map[int]string {
	columns := make(map[int]string, len(header))
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		if canonical, ok := headerAliases[name]; ok {
			// First matching column wins for a duplicated alias.
			if !containsValue(columns, canonical) {
				columns[i] = canonical
			}
		}
	}
	return columns
}

func containsValue(columns map[int]string, value string) bool {
	for _, v := range columns {
		if v == value {
			return true
		}
	}
	return false
}

func buildFixture(columns map[int]string, record []string) *models.Fixture {
	f := &models.Fixture{}
	for i, field := range columns {
		if i >= len(record) {
			continue
		}
		cell := strings.TrimSpace(record[i])
		switch field {
		case fieldHomeTeam:
			f.HomeTeam = cell
		case fieldAwayTeam:
			f.AwayTeam = cell
		case fieldLeague:
			f.League = cell
		case fieldDate:
			f.Date = cell
		case fieldHomeOdds:
			f.HomeOdds = parseNumber(cell)
		case fieldDrawOdds:
			f.DrawOdds = parseNumber(cell)
		case fieldAwayOdds:
			f.AwayOdds = parseNumber(cell)
		case fieldHomeRating:
			f.HomeRating = parseNumber(cell)
		case fieldAwayRating:
			f.AwayRating = parseNumber(cell)
		case fieldHomeStanding:
			f.HomeStanding = parseNumber(cell)
		case fieldAwayStanding:
			f.AwayStanding = parseNumber(cell)
		case fieldHomeScore:
			f.HomeScore = parseNumber(cell)
		case fieldAwayScore:
			f.AwayScore = parseNumber(cell)
		}
	}
	return f
}

// parseNumber accepts either '.' or ',' as the decimal separator and
// returns nil for anything that is not a well-formed number, which the
// core treats as an explicit absent marker.
func parseNumber(cell string) *float64 {
	if cell == "" || cell == "-" {
		return nil
	}
	normalized := strings.ReplaceAll(cell, ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}
