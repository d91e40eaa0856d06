package edgar

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/seenimoa/secfilings/internal/infra"
	"github.com/seenimoa/secfilings/pkg/models"
)

// --- Current filings feed (www.sec.gov/cgi-bin/browse-edgar?action=getcurrent) ---
// An Atom feed of the latest filings across all filers. Entry titles look like
// "10-K - Apple Inc. (0000320193) (Filer)"; entry ids end in
// "accession-number=0000320193-24-000123".

// DefaultFeedURL is the EDGAR company browse endpoint serving the current feed.
const DefaultFeedURL = "https://www.sec.gov/cgi-bin/browse-edgar"

// MaxFeedEntries is the largest page EDGAR serves for the current feed.
const MaxFeedEntries = 100

var feedTitle = regexp.MustCompile(`^(.+?) - (.+?) \((\d+)\)`)

// WithFeedURL overrides the current filings feed URL.
func WithFeedURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.feedURL = u
		}
	}
}

// CurrentFeedURL returns the feed URL for form ("" or "all" for every form)
// and count entries.
func (c *Client) CurrentFeedURL(form string, count int) string {
	if count <= 0 || count > MaxFeedEntries {
		count = MaxFeedEntries
	}
	if form == models.FormAll {
		form = ""
	}
	q := url.Values{}
	q.Set("action", "getcurrent")
	q.Set("type", form)
	q.Set("company", "")
	q.Set("dateb", "")
	q.Set("owner", "include")
	q.Set("count", strconv.Itoa(count))
	q.Set("output", "atom")
	return c.feedURL + "?" + q.Encode()
}

// CurrentFilings fetches the latest filings across EDGAR, most recent first.
// Entries whose title or id cannot be parsed are skipped.
func (c *Client) CurrentFilings(ctx context.Context, form string, count int) ([]models.FilingRecord, error) {
	u := c.CurrentFeedURL(form, count)
	headers := c.headers()
	headers["Accept"] = "application/atom+xml"

	body, _, err := infra.DoGet(ctx, c.httpClient, u, headers)
	if err != nil {
		return nil, &UpstreamError{Op: "current feed", URL: u, Err: err}
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, &UpstreamError{Op: "current feed", URL: u, Err: fmt.Errorf("parse feed: %w", err)}
	}

	records := make([]models.FilingRecord, 0, len(feed.Items))
	for _, item := range feed.Items {
		rec, ok := feedRecord(item)
		if !ok {
			c.logger.Debug("skipping feed entry", zap.String("title", item.Title), zap.String("id", item.GUID))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func feedRecord(item *gofeed.Item) (models.FilingRecord, bool) {
	m := feedTitle.FindStringSubmatch(strings.TrimSpace(item.Title))
	if m == nil {
		return models.FilingRecord{}, false
	}
	_, accession, found := strings.Cut(item.GUID, "accession-number=")
	if !found || accession == "" {
		return models.FilingRecord{}, false
	}

	form := m[1]
	if len(item.Categories) > 0 && item.Categories[0] != "" {
		form = item.Categories[0]
	}

	// Feed timestamps carry the Eastern offset; the filing date is the
	// calendar day at that offset.
	var filed time.Time
	stamp := item.UpdatedParsed
	if stamp == nil {
		stamp = item.PublishedParsed
	}
	if stamp != nil {
		y, m, d := stamp.Date()
		filed = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	return models.FilingRecord{
		FormType:          form,
		FilingDate:        filed,
		AccessionID:       accession,
		Description:       m[2],
		CompanyIdentifier: PadCIK(m[3]),
	}, true
}
