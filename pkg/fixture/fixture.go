// Package fixture models the game records a sharepic is rendered from and
// the filtering that selects the active calendar week.
//
// Records arrive per team (one CSV or one fetched table each) with German
// column names matching the DEB Online export: Datum, Zeit, Gegner,
// Spielstand. The Gegner column doubles as a location for the youngest
// divisions, which play tournaments rather than scored fixtures.
package fixture

import (
	"strings"
	"time"
)

// DateLayout is the day-first date format used across fixtures.
const DateLayout = "02.01.2006"

// awayPrefix marks away games in the Gegner column.
const awayPrefix = "@ "

// Game is one row of a team's fixture table.
type Game struct {
	Team     string    // division label, e.g. "U17"
	Date     time.Time // game date
	Time     string    // kickoff, free-form "18:30"
	Opponent string    // opponent abbreviation or location, away prefix stripped
	Away     bool      // true when the raw opponent carried the away prefix
	Score    string    // raw "A:B" result, empty when not reported
}

// SplitOpponent strips the away marker from a raw Gegner value and reports
// whether it was present.
func SplitOpponent(raw string) (opponent string, away bool) {
	if rest, ok := strings.CutPrefix(raw, awayPrefix); ok {
		return strings.TrimSpace(rest), true
	}
	return strings.TrimSpace(raw), false
}

// Opponents maps team abbreviations to full club names.
type Opponents map[string]string

// Expand resolves an abbreviation to the full club name, falling back to
// the abbreviation itself when no entry exists.
func (o Opponents) Expand(abbrev string) string {
	if full, ok := o[abbrev]; ok {
		return full
	}
	return abbrev
}

// FilterWeek returns the games whose date falls into the given ISO
// calendar week. Matching is by week number only, following the fixture
// files which never span a year boundary within one season view.
func FilterWeek(games []Game, week int) []Game {
	var out []Game
	for _, g := range games {
		if _, w := g.Date.ISOWeek(); w == week {
			out = append(out, g)
		}
	}
	return out
}

// TeamGames groups one team's rows for the active period.
type TeamGames struct {
	Team  string
	Games []Game
}

// GroupByTeam buckets games per team, returning groups in the order teams
// are listed in order. Teams without games are omitted; games for unknown
// teams are dropped.
func GroupByTeam(games []Game, order []string) []TeamGames {
	byTeam := make(map[string][]Game, len(order))
	for _, g := range games {
		byTeam[g.Team] = append(byTeam[g.Team], g)
	}

	groups := make([]TeamGames, 0, len(order))
	for _, team := range order {
		if rows := byTeam[team]; len(rows) > 0 {
			groups = append(groups, TeamGames{Team: team, Games: rows})
		}
	}
	return groups
}
