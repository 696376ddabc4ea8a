package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/young-islanders/sharepic/pkg/config"
	"github.com/young-islanders/sharepic/pkg/fixture"
	"github.com/young-islanders/sharepic/pkg/svgtmpl"
)

// templateOpts holds the command-line flags for the template command.
type templateOpts struct {
	template string // SVG template file
	output   string // filled SVG output path
	csvDir   string // directory holding one fixture CSV per team
	week     int    // ISO calendar week, 0 means the current week
}

// newTemplateCmd creates the template command for filling the legacy SVG
// announcement template.
func newTemplateCmd(configPath *string) *cobra.Command {
	opts := templateOpts{
		template: "template.svg",
		output:   "modified.svg",
		csvDir:   ".",
	}

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Fill the SVG announcement template from fixture CSVs",
		Long: `Template writes each team's next game of the requested week into the
addressable text fields of the SVG announcement template. Teams without
a game that week get their fields blanked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplate(cmd.Context(), *configPath, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", opts.template, "SVG template file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output SVG file")
	cmd.Flags().StringVar(&opts.csvDir, "csv-dir", opts.csvDir, "directory with per-team fixture CSVs")
	cmd.Flags().IntVarP(&opts.week, "week", "w", 0, "ISO calendar week (default: current week)")

	return cmd
}

// runTemplate fills the SVG template with the selected week's games.
func runTemplate(ctx context.Context, configPath string, opts *templateOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	week := currentWeek(opts.week)
	logger.Infof("Filling template for calendar week %d", week)

	tmpl, err := svgtmpl.Load(opts.template)
	if err != nil {
		return err
	}
	if err := tmpl.SetCalendarWeek(week); err != nil {
		return err
	}

	groups, err := loadWeek(ctx, cfg, opts.csvDir, week)
	if err != nil {
		return err
	}
	byTeam := make(map[string][]fixture.Game, len(groups))
	for _, g := range groups {
		byTeam[g.Team] = g.Games
	}

	for _, team := range cfg.Teams {
		age := strings.TrimPrefix(team, "U")
		games := byTeam[team]
		if len(games) == 0 {
			logger.Debugf("%s has no game in week %d, clearing fields", team, week)
			if err := tmpl.ClearFields(age); err != nil {
				return err
			}
			continue
		}
		if err := fillTeam(tmpl, cfg, age, games[0]); err != nil {
			return err
		}
	}

	if err := tmpl.WriteFile(opts.output); err != nil {
		return err
	}

	printSuccess("Filled template for KW %d", week)
	printFile(opts.output)
	return nil
}

// fillTeam writes one game into the template fields of one age class.
//
// Score-reporting divisions show the expanded opponent name with a home or
// away marker. The remaining divisions play tournaments, so the opponent
// column holds the venue and gets no marker.
func fillTeam(tmpl *svgtmpl.Template, cfg config.Config, age string, game fixture.Game) error {
	opponent := game.Opponent
	venue := ""
	if cfg.ScoresReported(game.Team) {
		opponent = cfg.Opponents.Expand(game.Opponent)
		venue = "H"
		if game.Away {
			venue = "A"
		}
	}

	if err := tmpl.SetOpponent(age, opponent, venue); err != nil {
		return err
	}
	if err := tmpl.SetField(svgtmpl.FieldDate, age, game.Date.Format(fixture.DateLayout)); err != nil {
		return err
	}
	return tmpl.SetField(svgtmpl.FieldTime, age, game.Time)
}
