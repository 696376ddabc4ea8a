package deb

import (
	"bytes"
	"strings"
	"time"

	"golang.org/x/net/html"

	apperrors "github.com/young-islanders/sharepic/pkg/errors"
	"github.com/young-islanders/sharepic/pkg/fixture"
)

// ParseGamesTable extracts the games table from a DEB Online team page.
// The page must contain exactly one table whose header row names the
// Datum, Zeit and Gegner columns; the Spielstand column is optional.
func ParseGamesTable(page []byte, team string) ([]fixture.Game, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRecord, err, "parse team page for %s", team)
	}

	tables := findTables(doc)
	var matches [][][]string
	for _, tbl := range tables {
		rows := tableRows(tbl)
		if len(rows) > 0 && isGamesHeader(rows[0]) {
			matches = append(matches, rows)
		}
	}
	if len(matches) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "no games table found for %s", team)
	}
	if len(matches) > 1 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRecord, "found %d games tables for %s, want 1", len(matches), team)
	}

	return rowsToGames(matches[0], team)
}

func rowsToGames(rows [][]string, team string) ([]fixture.Game, error) {
	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		idx[name] = i
	}

	var games []fixture.Game
	for _, row := range rows[1:] {
		get := func(col string) string {
			if i, ok := idx[col]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		date, err := time.Parse(fixture.DateLayout, get("Datum"))
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRecord, err, "games row for %s has a bad date", team)
		}

		opponent, away := fixture.SplitOpponent(get("Gegner"))
		games = append(games, fixture.Game{
			Team:     team,
			Date:     date,
			Time:     get("Zeit"),
			Opponent: opponent,
			Away:     away,
			Score:    normalizeScore(get("Spielstand")),
		})
	}
	return games, nil
}

// normalizeScore maps the site's placeholder for unplayed games to empty.
func normalizeScore(s string) string {
	if s == "-" || s == "-:-" {
		return ""
	}
	return s
}

func isGamesHeader(row []string) bool {
	seen := make(map[string]bool, len(row))
	for _, cell := range row {
		seen[cell] = true
	}
	return seen["Datum"] && seen["Zeit"] && seen["Gegner"]
}

func findTables(n *html.Node) []*html.Node {
	var tables []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables = append(tables, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return tables
}

// tableRows flattens a table element into trimmed cell text, one slice
// per tr, reading both th and td cells.
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, strings.TrimSpace(nodeText(c)))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
