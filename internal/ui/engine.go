package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/seenimoa/secfilings/internal/filings"
	"github.com/seenimoa/secfilings/internal/lookup"
	"github.com/seenimoa/secfilings/pkg/models"
)

// User-visible error messages.
const (
	MsgNotFound     = "Company not found. Please check the company name or ticker symbol and try again."
	MsgRequired     = "Company name is required"
	MsgInvalidDate  = "Invalid date: use YYYY-MM-DD"
	MsgFetchFailure = "Error fetching company data"
)

// Message converts a search error into the single line shown to the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, lookup.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, lookup.ErrInvalidRequest):
		return MsgRequired
	case errors.Is(err, filings.ErrInvalidDate):
		return MsgInvalidDate
	default:
		return MsgFetchFailure
	}
}

// Resolver resolves a company query. *lookup.Service satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, query string) (models.CompanyRecord, error)
}

// Fetcher lists a company's filings. *filings.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, identifier string) ([]models.FilingRecord, error)
}

// Engine runs searches: resolve, then fetch, then filter.
type Engine struct {
	resolver Resolver
	fetcher  Fetcher
}

// NewEngine creates a search engine.
func NewEngine(resolver Resolver, fetcher Fetcher) *Engine {
	return &Engine{resolver: resolver, fetcher: fetcher}
}

// Run performs the search described by s and returns the completing action.
// It makes at most two sequential upstream calls and does not touch s.
func (e *Engine) Run(ctx context.Context, s State) Action {
	if strings.TrimSpace(s.Query) == "" {
		return SearchFailed{Err: lookup.ErrInvalidRequest}
	}
	criteria, err := filings.ParseCriteria(s.StartDate, s.EndDate, s.FormType)
	if err != nil {
		return SearchFailed{Err: err}
	}

	company, err := e.resolver.Resolve(ctx, s.Query)
	if err != nil {
		return SearchFailed{Err: err}
	}
	records, err := e.fetcher.Fetch(ctx, company.Identifier)
	if err != nil {
		return SearchFailed{Err: err}
	}
	return SearchSucceeded{Company: company, Results: filings.Apply(records, criteria)}
}

// Search starts a search from s, runs it and returns the final state.
// A state that is already loading is returned unchanged.
func (e *Engine) Search(ctx context.Context, s State) State {
	if s.Loading {
		return s
	}
	s = Update(s, SearchStarted{})
	return Update(s, e.Run(ctx, s))
}
