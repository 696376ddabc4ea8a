package fixture

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"

	apperrors "github.com/young-islanders/sharepic/pkg/errors"
)

// Fixture CSV column headers, matching the DEB Online table export.
const (
	colDate     = "Datum"
	colTime     = "Zeit"
	colOpponent = "Gegner"
	colScore    = "Spielstand"
)

// ReadCSV parses one team's fixture file. The first row must be a header
// naming at least the Datum, Zeit and Gegner columns; Spielstand is
// optional since preview-only divisions never report results.
func ReadCSV(r io.Reader, team string) ([]Game, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRecord, err, "read fixture header for %s", team)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colDate, colTime, colOpponent} {
		if _, ok := idx[required]; !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRecord, "fixture file for %s is missing column %q", team, required)
		}
	}

	var games []Game
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRecord, err, "read fixture row %d for %s", line, team)
		}

		date, err := time.Parse(DateLayout, strings.TrimSpace(record[idx[colDate]]))
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRecord, err, "fixture row %d for %s has a bad date", line, team)
		}

		opponent, away := SplitOpponent(record[idx[colOpponent]])
		g := Game{
			Team:     team,
			Date:     date,
			Time:     strings.TrimSpace(record[idx[colTime]]),
			Opponent: opponent,
			Away:     away,
		}
		if i, ok := idx[colScore]; ok && i < len(record) {
			g.Score = strings.TrimSpace(record[i])
		}
		games = append(games, g)
	}
	return games, nil
}

// LoadCSV reads a team's fixture file from disk.
func LoadCSV(path, team string) ([]Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open fixture file %s", path)
	}
	defer f.Close()
	return ReadCSV(f, team)
}

// WriteCSV writes games in the fixture file format, one header row plus
// one row per game. Away games restore the "@ " opponent prefix so the
// files round-trip.
func WriteCSV(w io.Writer, games []Game) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{colDate, colTime, colOpponent, colScore}); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write fixture header")
	}
	for _, g := range games {
		opponent := g.Opponent
		if g.Away {
			opponent = awayPrefix + opponent
		}
		row := []string{g.Date.Format(DateLayout), g.Time, opponent, g.Score}
		if err := cw.Write(row); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write fixture row")
		}
	}
	cw.Flush()
	return cw.Error()
}
