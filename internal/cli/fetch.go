package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/young-islanders/sharepic/pkg/config"
	"github.com/young-islanders/sharepic/pkg/fixture"
	"github.com/young-islanders/sharepic/pkg/fixture/deb"
	"github.com/young-islanders/sharepic/pkg/httputil"
)

// cacheTTL bounds how long fetched DEB pages are reused. Schedules change
// rarely within a day, scores change right after the weekend.
const cacheTTL = 6 * time.Hour

// fetchOpts holds the command-line flags for the fetch command.
type fetchOpts struct {
	outDir  string // directory the per-team CSVs are written to
	noCache bool   // bypass the HTTP response cache
	teams   string // comma-separated subset of configured teams
}

// newFetchCmd creates the fetch command for downloading fixture data.
func newFetchCmd(configPath *string) *cobra.Command {
	opts := fetchOpts{outDir: "."}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download fixture data from the DEB portal into CSV files",
		Long: `Fetch scrapes the game schedule table of each configured team from the
DEB game portal and writes one fixture CSV per team. The CSVs feed the
generate and template commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), *configPath, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", opts.outDir, "directory to write fixture CSVs to")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the HTTP response cache")
	cmd.Flags().StringVarP(&opts.teams, "teams", "t", "", "comma-separated subset of teams to fetch")

	return cmd
}

// newHTTPCache opens the response cache, or returns nil (no caching) when
// disabled or unavailable.
func newHTTPCache(noCache bool) *httputil.Cache {
	if noCache {
		return nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil
	}
	cache, err := httputil.NewCache(dir, cacheTTL)
	if err != nil {
		return nil
	}
	return cache
}

// selectTeams resolves the --teams flag against the configured DEB mapping,
// keeping the configured display order.
func selectTeams(cfg config.Config, flag string) ([]string, error) {
	var requested map[string]bool
	if flag != "" {
		requested = make(map[string]bool)
		for _, t := range strings.Split(flag, ",") {
			requested[strings.TrimSpace(t)] = true
		}
	}

	var teams []string
	for _, team := range cfg.Teams {
		if _, ok := cfg.DEB[team]; !ok {
			continue
		}
		if requested == nil || requested[team] {
			teams = append(teams, team)
		}
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("no teams with a DEB mapping selected (check the [deb] config section)")
	}
	return teams, nil
}

// runFetch downloads the schedule of every selected team and writes the CSVs.
func runFetch(ctx context.Context, configPath string, opts *fetchOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	teams, err := selectTeams(cfg, opts.teams)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var clientOpts []deb.Option
	if cache := newHTTPCache(opts.noCache); cache != nil {
		clientOpts = append(clientOpts, deb.WithCache(cache))
	}
	client := deb.New(logger, clientOpts...)

	prog := newProgress(logger)
	for _, team := range teams {
		if err := fetchTeam(ctx, client, team, cfg.DEB[team], opts.outDir); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Fetched %d teams", len(teams)))

	return nil
}

// fetchTeam downloads one team's schedule and writes its fixture CSV.
func fetchTeam(ctx context.Context, client *deb.Client, team string, id deb.TeamID, outDir string) error {
	spinner := newSpinner(ctx, fmt.Sprintf("Fetching %s schedule...", team))
	spinner.Start()

	games, err := client.Games(ctx, team, id)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Fetching %s failed", team))
		return err
	}

	path := filepath.Join(outDir, strings.ToLower(team)+".csv")
	f, err := os.Create(path)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Writing %s failed", path))
		return err
	}
	defer f.Close()

	if err := fixture.WriteCSV(f, games); err != nil {
		spinner.StopWithError(fmt.Sprintf("Writing %s failed", path))
		return err
	}

	spinner.StopWithSuccess(fmt.Sprintf("%s: %d games", team, len(games)))
	printFile(path)
	return nil
}
