// Package deb fetches fixture tables from DEB Online, the German ice
// hockey federation's results site. One page per (team, division) pair
// holds the full season table: date, kickoff, opponent, result.
package deb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/young-islanders/sharepic/pkg/errors"
	"github.com/young-islanders/sharepic/pkg/fixture"
	"github.com/young-islanders/sharepic/pkg/httputil"
)

// DefaultBaseURL is the DEB Online team page endpoint.
const DefaultBaseURL = "https://deb-online.live"

// TeamID identifies one team's table on DEB Online.
type TeamID struct {
	Team     int `toml:"team"`
	Division int `toml:"division"`
}

// Client fetches and parses fixture tables. The zero value is not usable;
// construct with New.
type Client struct {
	http    *http.Client
	cache   *httputil.Cache
	logger  *log.Logger
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the DEB Online endpoint, mainly for tests.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithCache enables caching of fetched pages.
func WithCache(cache *httputil.Cache) Option { return func(c *Client) { c.cache = cache } }

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// New creates a fixture client.
func New(logger *log.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = log.Default()
	}
	c := &Client{
		http:    &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Games fetches and parses the fixture table for one team.
func (c *Client) Games(ctx context.Context, team string, id TeamID) ([]fixture.Game, error) {
	url := fmt.Sprintf("%s/team/?teamId=%d&divisionId=%d", c.baseURL, id.Team, id.Division)

	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	games, err := ParseGamesTable(body, team)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("parsed fixture table", "team", team, "games", len(games))
	return games, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	if c.cache != nil {
		if data, ok := c.cache.Get(url); ok {
			c.logger.Debug("fixture page served from cache", "url", url)
			return data, nil
		}
	}

	var body []byte
	err := httputil.Retry(ctx, 3, time.Second, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInternal, err, "build request for %s", url)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return &httputil.RetryableError{Err: fmt.Errorf("server returned %s", resp.Status)}
		}
		if resp.StatusCode != http.StatusOK {
			return apperrors.New(apperrors.ErrCodeNetwork, "fetch %s: unexpected status %s", url, resp.Status)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		if apperrors.GetCode(err) != "" {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetch %s", url)
	}

	if c.cache != nil {
		if err := c.cache.Set(url, body); err != nil {
			c.logger.Warn("could not cache fixture page", "url", url, "err", err)
		}
	}
	return body, nil
}
