package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/young-islanders/sharepic/pkg/assets"
	"github.com/young-islanders/sharepic/pkg/config"
	apperrors "github.com/young-islanders/sharepic/pkg/errors"
	"github.com/young-islanders/sharepic/pkg/sharepic"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // HTTP listen address
	csvDir   string // directory holding one fixture CSV per team
	assetDir string // directory holding background, logo and glyph files
}

// newServeCmd creates the serve command for previewing sharepics over HTTP.
func newServeCmd(configPath *string) *cobra.Command {
	opts := serveOpts{
		addr:     ":8080",
		csvDir:   ".",
		assetDir: ".",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve freshly rendered sharepics over HTTP",
		Long: `Serve starts a small HTTP server that renders the sharepic on every
request, re-reading the fixture CSVs each time. Useful to iterate on
assets and fixture data with a browser open.

Endpoints:
  GET /sharepic.png?week=<n>&mode=<preview|results>
  GET /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", opts.addr, "HTTP listen address")
	cmd.Flags().StringVar(&opts.csvDir, "csv-dir", opts.csvDir, "directory with per-team fixture CSVs")
	cmd.Flags().StringVar(&opts.assetDir, "asset-dir", opts.assetDir, "directory with background, logo and font files")

	return cmd
}

// server renders sharepics on demand. Assets are loaded once at startup,
// fixture CSVs are re-read per request.
type server struct {
	cfg    config.Config
	bundle *assets.Bundle
	csvDir string
}

// runServe loads config and assets, then serves until the context is
// cancelled.
func runServe(ctx context.Context, configPath string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	bundle, err := loadBundle(cfg, opts.assetDir)
	if err != nil {
		return err
	}

	s := &server{cfg: cfg, bundle: bundle, csvDir: opts.csvDir}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/sharepic.png", s.handleSharepic)

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           r,
		BaseContext:       func(net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Infof("Serving sharepics on %s", opts.addr)
	printInfo("Open http://localhost%s/sharepic.png", opts.addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleSharepic renders one sharepic per request. Layout overflow and
// malformed fixture data map to 422, everything else to 500.
func (s *server) handleSharepic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := loggerFromContext(ctx).With("render", uuid.New().String()[:8])

	week := currentWeek(atoiOr(r.URL.Query().Get("week"), 0))
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "preview"
	}
	if err := validateMode(mode); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	groups, err := loadWeek(withLogger(ctx, logger), s.cfg, s.csvDir, week)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cards := sharepic.FromFixtures(groups, s.cfg.Opponents, parseMode(mode), s.cfg.ScoresReported)

	gen, err := sharepic.New(s.bundle, sharepic.WithFooter(s.cfg.Footer))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	logger.Infof("Rendering %s for week %d", mode, week)
	img, err := gen.Render(cards, s.cfg.Title, week, parseMode(mode))
	if err != nil {
		status := http.StatusInternalServerError
		switch apperrors.GetCode(err) {
		case apperrors.ErrCodeLayoutOverflow, apperrors.ErrCodeInvalidScore:
			status = http.StatusUnprocessableEntity
		}
		logger.Errorf("Render failed: %v", err)
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		logger.Errorf("Encode failed: %v", err)
	}
}

// atoiOr parses s as int, returning fallback on empty or invalid input.
func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
