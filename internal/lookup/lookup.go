// Package lookup resolves a free-text company query (name or ticker) to a
// single entry of the SEC company index.
//
// Matching is a single linear pass in upstream listing order: an entry
// matches when the lowercased query equals its lowercased ticker, or is a
// substring of its lowercased display name. The first match wins.
package lookup

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/seenimoa/secfilings/pkg/models"
)

var (
	// ErrInvalidRequest is returned for an empty or whitespace-only query.
	ErrInvalidRequest = errors.New("company name is required")

	// ErrNotFound is returned when no index entry matches the query.
	ErrNotFound = errors.New("company not found")
)

// IndexSource supplies the company index in upstream listing order.
// *edgar.Client satisfies it.
type IndexSource interface {
	CompanyIndex(ctx context.Context) ([]models.CompanyRecord, error)
}

// Match returns the first entry whose ticker equals query or whose display
// name contains it, ignoring case.
func Match(entries []models.CompanyRecord, query string) (models.CompanyRecord, bool) {
	q := strings.ToLower(query)
	if q == "" {
		return models.CompanyRecord{}, false
	}
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.DisplayName), q) || strings.ToLower(e.Ticker) == q {
			return e, true
		}
	}
	return models.CompanyRecord{}, false
}

// Service resolves queries against a freshly fetched index.
type Service struct {
	index  IndexSource
	logger *zap.Logger
}

// NewService creates a lookup service. A nil logger discards output.
func NewService(index IndexSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{index: index, logger: logger}
}

// Resolve returns the company matching query. A blank query is
// ErrInvalidRequest; otherwise query is matched as given, surrounding spaces
// included. Other errors are ErrNotFound or the index source's error
// unchanged (an *edgar.UpstreamError for the EDGAR client).
func (s *Service) Resolve(ctx context.Context, query string) (models.CompanyRecord, error) {
	if strings.TrimSpace(query) == "" {
		return models.CompanyRecord{}, ErrInvalidRequest
	}

	entries, err := s.index.CompanyIndex(ctx)
	if err != nil {
		s.logger.Warn("company index unavailable", zap.String("query", query), zap.Error(err))
		return models.CompanyRecord{}, err
	}

	rec, ok := Match(entries, query)
	if !ok {
		s.logger.Debug("no company match", zap.String("query", query), zap.Int("entries", len(entries)))
		return models.CompanyRecord{}, ErrNotFound
	}
	return rec, nil
}
