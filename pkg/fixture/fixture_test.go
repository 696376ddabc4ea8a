package fixture

import (
	"strings"
	"testing"
	"time"

	apperrors "github.com/young-islanders/sharepic/pkg/errors"
)

func day(s string) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSplitOpponent(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		opponent string
		away     bool
	}{
		{"home game", "KEM", "KEM", false},
		{"away game", "@ KEM", "KEM", true},
		{"away with extra spaces", "@ KEM ", "KEM", true},
		{"location row", "Eisstadion Landsberg", "Eisstadion Landsberg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opponent, away := SplitOpponent(tt.raw)
			if opponent != tt.opponent || away != tt.away {
				t.Errorf("SplitOpponent(%q) = (%q, %v), want (%q, %v)", tt.raw, opponent, away, tt.opponent, tt.away)
			}
		})
	}
}

func TestOpponentsExpand(t *testing.T) {
	o := Opponents{"KEM": "ESC Kempten"}

	if got := o.Expand("KEM"); got != "ESC Kempten" {
		t.Errorf("Expand(KEM) = %q, want %q", got, "ESC Kempten")
	}
	if got := o.Expand("XYZ"); got != "XYZ" {
		t.Errorf("Expand(XYZ) = %q, want passthrough %q", got, "XYZ")
	}
}

func TestFilterWeek(t *testing.T) {
	games := []Game{
		{Team: "U17", Date: day("03.11.2025")}, // ISO week 45
		{Team: "U15", Date: day("08.11.2025")}, // ISO week 45
		{Team: "U13", Date: day("15.11.2025")}, // ISO week 46
	}

	got := FilterWeek(games, 45)
	if len(got) != 2 {
		t.Fatalf("FilterWeek(45) returned %d games, want 2", len(got))
	}
	if got[0].Team != "U17" || got[1].Team != "U15" {
		t.Errorf("FilterWeek(45) teams = %s, %s; want U17, U15", got[0].Team, got[1].Team)
	}

	if got := FilterWeek(games, 1); len(got) != 0 {
		t.Errorf("FilterWeek(1) returned %d games, want 0", len(got))
	}
}

func TestGroupByTeamOrder(t *testing.T) {
	games := []Game{
		{Team: "U13", Date: day("03.11.2025")},
		{Team: "U17", Date: day("03.11.2025")},
		{Team: "U17", Date: day("05.11.2025")},
	}
	order := []string{"U17", "U15", "U13", "U11"}

	groups := GroupByTeam(games, order)
	if len(groups) != 2 {
		t.Fatalf("GroupByTeam returned %d groups, want 2", len(groups))
	}
	if groups[0].Team != "U17" || len(groups[0].Games) != 2 {
		t.Errorf("group 0 = %s with %d games, want U17 with 2", groups[0].Team, len(groups[0].Games))
	}
	if groups[1].Team != "U13" || len(groups[1].Games) != 1 {
		t.Errorf("group 1 = %s with %d games, want U13 with 1", groups[1].Team, len(groups[1].Games))
	}
}

func TestGroupByTeamDropsUnknown(t *testing.T) {
	games := []Game{{Team: "SENIORS", Date: day("03.11.2025")}}
	if groups := GroupByTeam(games, []string{"U17"}); len(groups) != 0 {
		t.Errorf("GroupByTeam returned %d groups, want 0", len(groups))
	}
}

const sampleCSV = `Datum,Zeit,Gegner,Spielstand
03.11.2025,18:30,@ KEM,3:5
08.11.2025,10:00,MEM,
`

func TestReadCSV(t *testing.T) {
	games, err := ReadCSV(strings.NewReader(sampleCSV), "U17")
	if err != nil {
		t.Fatalf("ReadCSV() returned error: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("ReadCSV() returned %d games, want 2", len(games))
	}

	first := games[0]
	if first.Team != "U17" {
		t.Errorf("Team = %q, want U17", first.Team)
	}
	if !first.Away || first.Opponent != "KEM" {
		t.Errorf("first game = opponent %q away %v, want KEM away", first.Opponent, first.Away)
	}
	if first.Time != "18:30" || first.Score != "3:5" {
		t.Errorf("first game = time %q score %q, want 18:30 and 3:5", first.Time, first.Score)
	}

	second := games[1]
	if second.Away || second.Opponent != "MEM" || second.Score != "" {
		t.Errorf("second game = %+v, want home MEM without score", second)
	}
}

func TestReadCSVWithoutScoreColumn(t *testing.T) {
	csv := "Datum,Zeit,Gegner\n03.11.2025,10:00,Eisstadion Landsberg\n"
	games, err := ReadCSV(strings.NewReader(csv), "U9")
	if err != nil {
		t.Fatalf("ReadCSV() returned error: %v", err)
	}
	if len(games) != 1 || games[0].Score != "" {
		t.Errorf("games = %+v, want one game without score", games)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"missing column", "Datum,Zeit\n03.11.2025,10:00\n"},
		{"bad date", "Datum,Zeit,Gegner\n2025-11-03,10:00,KEM\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.csv), "U17")
			if err == nil {
				t.Fatal("ReadCSV() = nil error, want error")
			}
			if !apperrors.Is(err, apperrors.ErrCodeInvalidRecord) {
				t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidRecord)
			}
		})
	}
}

func TestCSVRoundTrip(t *testing.T) {
	games := []Game{
		{Team: "U17", Date: day("03.11.2025"), Time: "18:30", Opponent: "KEM", Away: true, Score: "3:5"},
		{Team: "U17", Date: day("08.11.2025"), Time: "10:00", Opponent: "MEM"},
	}

	var buf strings.Builder
	if err := WriteCSV(&buf, games); err != nil {
		t.Fatalf("WriteCSV() returned error: %v", err)
	}

	got, err := ReadCSV(strings.NewReader(buf.String()), "U17")
	if err != nil {
		t.Fatalf("ReadCSV() returned error: %v", err)
	}
	if len(got) != len(games) {
		t.Fatalf("round trip returned %d games, want %d", len(got), len(games))
	}
	for i := range games {
		if got[i] != games[i] {
			t.Errorf("game %d = %+v, want %+v", i, got[i], games[i])
		}
	}
}
