package ingest

// Canonical field names exposed to the core. Source files arrive with a
// mix of header spellings across providers and exports; headerAliases
// folds the known variants (compared lower-cased and trimmed) onto one
// canonical name per field.
const (
	fieldHomeTeam     = "home_team"
	fieldAwayTeam     = "away_team"
	fieldLeague       = "league"
	fieldDate         = "date"
	fieldHomeOdds     = "home_odds"
	fieldDrawOdds     = "draw_odds"
	fieldAwayOdds     = "away_odds"
	fieldHomeRating   = "home_rating"
	fieldAwayRating   = "away_rating"
	fieldHomeStanding = "home_standing"
	fieldAwayStanding = "away_standing"
	fieldHomeScore    = "home_score"
	fieldAwayScore    = "away_score"
)

var headerAliases = map[string]string{
	"1":     fieldHomeOdds,
	"cotaa": fieldHomeOdds,
	"x":     fieldDrawOdds,
	"cotae": fieldDrawOdds,
	"2":     fieldAwayOdds,
	"cotad": fieldAwayOdds,

	"eloc":     fieldHomeRating,
	"elohomeo": fieldHomeRating,
	"eloo":     fieldAwayRating,
	"eloawayo": fieldAwayRating,

	"home":       fieldHomeTeam,
	"casa":       fieldHomeTeam,
	"txtechipa1": fieldHomeTeam,
	"away":       fieldAwayTeam,
	"ospite":     fieldAwayTeam,
	"txtechipa2": fieldAwayTeam,

	"league":   fieldLeague,
	"datameci": fieldDate,

	"place1a":  fieldHomeStanding,
	"place 1a": fieldHomeStanding,
	"place2d":  fieldAwayStanding,
	"place 2d": fieldAwayStanding,

	"gfinc": fieldHomeScore,
	"scor1": fieldHomeScore,
	"gfino": fieldAwayScore,
	"scor2": fieldAwayScore,
}
