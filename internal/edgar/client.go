// Package edgar is the SEC EDGAR client shared by the lookup proxy and the
// filing client. It fetches public, unauthenticated documents:
//
//   - the company index (company_tickers.json),
//   - the per-company submissions document (submissions/CIK##########.json),
//   - the current filings Atom feed.
//
// No API key required. Every request carries a descriptive User-Agent per
// SEC fair-access policy.
// Docs: https://www.sec.gov/edgar/sec-api-documentation
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/secfilings/internal/infra"
)

const (
	// DefaultTickersURL is the company index document.
	DefaultTickersURL = "https://www.sec.gov/files/company_tickers.json"

	// DefaultSubmissionsURL is the base of the per-company submissions documents.
	DefaultSubmissionsURL = "https://data.sec.gov/submissions"

	// DefaultUserAgent identifies this client to SEC EDGAR.
	DefaultUserAgent = "SEC Filings Search (open-source-project)"

	// pingCIK is Apple Inc., pinged to check the submissions endpoint.
	pingCIK = "320193"
)

// Client talks to SEC EDGAR. The zero value is not usable; use NewClient.
type Client struct {
	httpClient     *http.Client
	userAgent      string
	tickersURL     string
	submissionsURL string
	feedURL        string
	logger         *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for upstream requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the client-identifying User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTickersURL overrides the company index URL.
func WithTickersURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.tickersURL = u
		}
	}
}

// WithSubmissionsURL overrides the submissions base URL.
func WithSubmissionsURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.submissionsURL = u
		}
	}
}

// WithLogger attaches a logger for upstream request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates an EDGAR client with SEC defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:     infra.NewHTTPClient(infra.DefaultTimeout),
		userAgent:      DefaultUserAgent,
		tickersURL:     DefaultTickersURL,
		submissionsURL: DefaultSubmissionsURL,
		feedURL:        DefaultFeedURL,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserAgent returns the User-Agent sent upstream.
func (c *Client) UserAgent() string { return c.userAgent }

// SubmissionsURL returns the submissions document URL for cik, padded to 10 digits.
func (c *Client) SubmissionsURL(cik string) string {
	return fmt.Sprintf("%s/CIK%s.json", c.submissionsURL, PadCIK(cik))
}

// Submissions fetches the submissions document for cik.
func (c *Client) Submissions(ctx context.Context, cik string) (*Submissions, error) {
	u := c.SubmissionsURL(cik)
	var resp Submissions
	if err := c.fetchJSON(ctx, u, &resp); err != nil {
		return nil, &UpstreamError{Op: "submissions", URL: u, Err: err}
	}
	return &resp, nil
}

// Ping checks connectivity to both upstream documents concurrently.
func (c *Client) Ping(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, u := range []string{c.tickersURL, c.SubmissionsURL(pingCIK)} {
		g.Go(func() error {
			body, _, err := infra.DoGet(gctx, c.httpClient, u, c.headers())
			if err != nil {
				return &UpstreamError{Op: "ping", URL: u, Err: err}
			}
			body.Close()
			return nil
		})
	}
	return g.Wait()
}

// --- Shared helpers ---

func (c *Client) headers() map[string]string {
	return map[string]string{
		"User-Agent": c.userAgent,
		"Accept":     "application/json",
	}
}

// fetchJSON performs a GET request to EDGAR and decodes JSON into dest.
func (c *Client) fetchJSON(ctx context.Context, url string, dest any) error {
	start := time.Now()
	body, status, err := infra.DoGet(ctx, c.httpClient, url, c.headers())
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read SEC response: %w", err)
	}
	c.logger.Debug("edgar fetch",
		zap.String("url", url),
		zap.Int("status", status),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse SEC JSON: %w", err)
	}
	return nil
}
