// Package config loads the sharepic configuration file: asset paths, the
// club's divisions, the opponent abbreviation table and the DEB Online
// team ids. The file is TOML.
package config

import (
	"github.com/BurntSushi/toml"

	apperrors "github.com/young-islanders/sharepic/pkg/errors"
	"github.com/young-islanders/sharepic/pkg/fixture"
	"github.com/young-islanders/sharepic/pkg/fixture/deb"
)

// Config is the full sharepic configuration.
type Config struct {
	// Title is the headline on every sharepic.
	Title string `toml:"title"`
	// Footer is the caption line at the bottom edge.
	Footer string `toml:"footer"`

	// Teams lists the club's divisions in display order, oldest first.
	Teams []string `toml:"teams"`
	// NoScore names divisions that never report results; they are skipped
	// entirely in score mode. For these divisions the opponent column
	// holds the venue instead of an abbreviation.
	NoScore []string `toml:"no_score"`

	Assets    Assets                `toml:"assets"`
	Opponents fixture.Opponents     `toml:"opponents"`
	DEB       map[string]deb.TeamID `toml:"deb"`
}

// Assets names the files a render pass loads up front.
type Assets struct {
	Background string `toml:"background"`
	Logo       string `toml:"logo"`
	VSGlyph    string `toml:"vs_glyph"`
	FontName   string `toml:"font_name"`
	FontFile   string `toml:"font_file"`
}

// Default returns the configuration for the Young Islanders sharepics.
func Default() Config {
	return Config{
		Title:   "YOUNG ISLANDERS",
		Footer:  "www.young-islanders.com",
		Teams:   []string{"U17", "U15", "U13", "U11", "U9"},
		NoScore: []string{"U11", "U9"},
		Assets: Assets{
			Background: "bckgrnd.jpeg",
			Logo:       "logo.svg",
			VSGlyph:    "vs.svg",
			FontName:   "Industry",
		},
	}
}

// Load reads a TOML config file and fills unset fields from Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the invariants the renderer relies on.
func (c Config) Validate() error {
	if len(c.Teams) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "config lists no teams")
	}
	teams := make(map[string]bool, len(c.Teams))
	for _, t := range c.Teams {
		if t == "" {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "config contains an empty team name")
		}
		if teams[t] {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "config lists team %q twice", t)
		}
		teams[t] = true
	}
	for _, t := range c.NoScore {
		if !teams[t] {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "no_score names unknown team %q", t)
		}
	}
	return nil
}

// ScoresReported reports whether the given division plays scored games.
func (c Config) ScoresReported(team string) bool {
	for _, t := range c.NoScore {
		if t == team {
			return false
		}
	}
	return true
}
