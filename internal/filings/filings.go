// Package filings retrieves a company's recent SEC filings and filters them
// by date range and form type.
package filings

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/seenimoa/secfilings/internal/edgar"
	"github.com/seenimoa/secfilings/pkg/models"
	"github.com/seenimoa/secfilings/pkg/utils"
)

var (
	// ErrInvalidIdentifier is returned for a blank or non-numeric CIK.
	ErrInvalidIdentifier = errors.New("identifier must be a numeric CIK")

	// ErrMalformed is wrapped in an *edgar.UpstreamError when the parallel
	// filing arrays disagree in length.
	ErrMalformed = errors.New("malformed submissions: filing arrays differ in length")
)

// SubmissionsSource fetches submissions documents. *edgar.Client satisfies it.
type SubmissionsSource interface {
	Submissions(ctx context.Context, cik string) (*edgar.Submissions, error)
	SubmissionsURL(cik string) string
}

// Client fetches filing lists.
type Client struct {
	source SubmissionsSource
	logger *zap.Logger
}

// NewClient creates a filing client. A nil logger discards output.
func NewClient(source SubmissionsSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{source: source, logger: logger}
}

// Fetch returns the recent filings of identifier in upstream order, most
// recent first. A single request is made; there is no retry.
func (c *Client) Fetch(ctx context.Context, identifier string) ([]models.FilingRecord, error) {
	if !edgar.IsNumeric(identifier) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, identifier)
	}
	cik := edgar.PadCIK(identifier)

	subs, err := c.source.Submissions(ctx, cik)
	if err != nil {
		c.logger.Warn("submissions unavailable", zap.String("cik", cik), zap.Error(err))
		return nil, err
	}

	records, err := Zip(cik, subs.Filings.Recent)
	if err != nil {
		c.logger.Warn("submissions malformed", zap.String("cik", cik), zap.Error(err))
		return nil, &edgar.UpstreamError{Op: "submissions", URL: c.source.SubmissionsURL(cik), Err: err}
	}
	return records, nil
}

// Zip reconstructs filing records from the parallel arrays of set,
// position by position.
func Zip(cik string, set edgar.FilingSet) ([]models.FilingRecord, error) {
	n, ok := set.Len()
	if !ok {
		return nil, ErrMalformed
	}
	cik = edgar.PadCIK(cik)

	records := make([]models.FilingRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, models.FilingRecord{
			FormType:          set.Form[i],
			FilingDate:        utils.ParseSECDate(set.FilingDate[i]),
			AccessionID:       set.AccessionNumber[i],
			Description:       set.PrimaryDocument[i],
			CompanyIdentifier: cik,
		})
	}
	return records, nil
}
