package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/young-islanders/sharepic/pkg/config"
	"github.com/young-islanders/sharepic/pkg/sharepic"
)

func TestValidateMode(t *testing.T) {
	for _, valid := range []string{"preview", "results"} {
		if err := validateMode(valid); err != nil {
			t.Errorf("validateMode(%q) returned error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "Preview", "scores", "vorschau"} {
		if err := validateMode(invalid); err == nil {
			t.Errorf("validateMode(%q) should return error", invalid)
		}
	}
}

func TestParseMode(t *testing.T) {
	if got := parseMode("results"); got != sharepic.ModeResults {
		t.Errorf("parseMode(results) = %v, want results mode", got)
	}
	if got := parseMode("preview"); got != sharepic.ModePreview {
		t.Errorf("parseMode(preview) = %v, want preview mode", got)
	}
}

func TestCurrentWeek(t *testing.T) {
	if got := currentWeek(45); got != 45 {
		t.Errorf("currentWeek(45) = %d, want 45", got)
	}
	if got := currentWeek(0); got < 1 || got > 53 {
		t.Errorf("currentWeek(0) = %d, want a valid ISO week", got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(\"\") returned error: %v", err)
	}
	if cfg.Title == "" || len(cfg.Teams) == 0 {
		t.Error("default config should have a title and teams")
	}
}

func TestLoadWeekSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	csv := "Team,Datum,Zeit,Gegner\nU17,03.11.2025,18:30,@ ESCK\n"
	if err := os.WriteFile(filepath.Join(dir, "u17.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	groups, err := loadWeek(context.Background(), cfg, dir, 45)
	if err != nil {
		t.Fatalf("loadWeek() returned error: %v", err)
	}

	// Only the one team with a CSV file present survives.
	if len(groups) != 1 {
		t.Fatalf("loadWeek() returned %d groups, want 1", len(groups))
	}
	if groups[0].Team != "U17" {
		t.Errorf("group team = %s, want U17", groups[0].Team)
	}
	if !groups[0].Games[0].Away {
		t.Error("away prefix should be parsed from the opponent column")
	}
}
