package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/young-islanders/sharepic/pkg/assets"
	"github.com/young-islanders/sharepic/pkg/config"
	"github.com/young-islanders/sharepic/pkg/fixture"
	"github.com/young-islanders/sharepic/pkg/layout"
	"github.com/young-islanders/sharepic/pkg/sharepic"
)

// defaultVSWidth is the raster width of the "vs" glyph between the date and
// opponent columns.
const defaultVSWidth = 80

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output   string // output PNG path
	csvDir   string // directory holding one fixture CSV per team
	assetDir string // directory holding background, logo and glyph files
	week     int    // ISO calendar week to render, 0 means the current week
	mode     string // "preview" or "results"
}

// newGenerateCmd creates the generate command for rendering weekly sharepics.
func newGenerateCmd(configPath *string) *cobra.Command {
	opts := generateOpts{
		csvDir:   ".",
		assetDir: ".",
		mode:     "preview",
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a weekly sharepic PNG from fixture CSVs",
		Long: `Generate reads one fixture CSV per configured team, filters the games of
the requested calendar week and composes the 1080x1350 sharepic. Preview
mode shows kickoff times, results mode shows colon-aligned scores.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateMode(opts.mode); err != nil {
				return err
			}
			return runGenerate(cmd.Context(), *configPath, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default sharepic_kw<week>.png)")
	cmd.Flags().StringVar(&opts.csvDir, "csv-dir", opts.csvDir, "directory with per-team fixture CSVs")
	cmd.Flags().StringVar(&opts.assetDir, "asset-dir", opts.assetDir, "directory with background, logo and font files")
	cmd.Flags().IntVarP(&opts.week, "week", "w", 0, "ISO calendar week (default: current week)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", opts.mode, "render mode: preview or results")

	return cmd
}

// validateMode checks that the mode is either "preview" or "results".
func validateMode(s string) error {
	if s != "preview" && s != "results" {
		return fmt.Errorf("invalid mode: %s (must be 'preview' or 'results')", s)
	}
	return nil
}

// parseMode maps the --mode flag onto a render mode. Call validateMode first.
func parseMode(s string) sharepic.Mode {
	if s == "results" {
		return sharepic.ModeResults
	}
	return sharepic.ModePreview
}

// currentWeek resolves the week flag, falling back to the current ISO week.
func currentWeek(flag int) int {
	if flag > 0 {
		return flag
	}
	_, week := time.Now().ISOWeek()
	return week
}

// loadConfig reads the config file, or falls back to the built-in defaults
// when no path was given.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// loadBundle materializes the configured assets relative to dir.
func loadBundle(cfg config.Config, dir string) (*assets.Bundle, error) {
	m := layout.Default()
	paths := assets.Paths{
		Background: filepath.Join(dir, cfg.Assets.Background),
		Logo:       filepath.Join(dir, cfg.Assets.Logo),
		VSGlyph:    filepath.Join(dir, cfg.Assets.VSGlyph),
		FontName:   cfg.Assets.FontName,
	}
	if cfg.Assets.FontFile != "" {
		paths.FontFile = filepath.Join(dir, cfg.Assets.FontFile)
	}
	return assets.Load(paths, int(m.LogoW), defaultVSWidth)
}

// loadWeek reads each team's fixture CSV from dir and returns the games of
// the requested week, grouped in configured team order. Teams without a CSV
// file are skipped with a warning so a missing division doesn't block the
// whole render.
func loadWeek(ctx context.Context, cfg config.Config, dir string, week int) ([]fixture.TeamGames, error) {
	logger := loggerFromContext(ctx)

	var all []fixture.Game
	for _, team := range cfg.Teams {
		path := filepath.Join(dir, strings.ToLower(team)+".csv")
		games, err := fixture.LoadCSV(path, team)
		if err != nil {
			logger.Warnf("Skipping %s: %v", team, err)
			continue
		}
		all = append(all, games...)
	}

	return fixture.GroupByTeam(fixture.FilterWeek(all, week), cfg.Teams), nil
}

// runGenerate loads config, assets and fixtures, renders the sharepic and
// writes it as PNG.
func runGenerate(ctx context.Context, configPath string, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	week := currentWeek(opts.week)
	mode := parseMode(opts.mode)
	logger.Infof("Rendering %s for calendar week %d", mode, week)

	bundle, err := loadBundle(cfg, opts.assetDir)
	if err != nil {
		return err
	}

	groups, err := loadWeek(ctx, cfg, opts.csvDir, week)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded fixtures for %d teams", len(groups))

	cards := sharepic.FromFixtures(groups, cfg.Opponents, mode, cfg.ScoresReported)

	gen, err := sharepic.New(bundle, sharepic.WithFooter(cfg.Footer))
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	img, err := gen.Render(cards, cfg.Title, week, mode)
	if err != nil {
		return err
	}
	prog.done("Rendered sharepic")

	output := opts.output
	if output == "" {
		output = fmt.Sprintf("sharepic_kw%d.png", week)
	}
	if err := imaging.Save(img, output); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}

	printSuccess("Generated %s sharepic for KW %d", mode, week)
	printFile(output)
	return nil
}
