package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/seenimoa/secfilings/internal/edgar"
	"github.com/seenimoa/secfilings/internal/filings"
	"github.com/seenimoa/secfilings/internal/lookup"
	"github.com/seenimoa/secfilings/internal/present"
	"github.com/seenimoa/secfilings/internal/ui"
	"github.com/seenimoa/secfilings/web"
)

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ErrorResponse is the error body of the lookup endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CIKLookupResponse is the body of a successful GET /cik-lookup.
// Identifier is the 10-digit CIK; CIK is the value as listed in the index.
type CIKLookupResponse struct {
	Identifier  string `json:"identifier"`
	CIK         string `json:"cik"`
	CompanyName string `json:"companyName"`
	Ticker      string `json:"ticker"`
}

// FilingsResponse is the body of a successful GET /filings.
type FilingsResponse struct {
	Identifier string         `json:"identifier"`
	Count      int            `json:"count"`
	Filings    []present.Card `json:"filings"`
}

// pageData feeds the search page template.
type pageData struct {
	State     ui.State
	Cards     []present.Card
	Options   []present.FormOption
	Searched  bool
	PaddedCIK string
}

var (
	errNameRequired       = ErrorResponse{Error: "Company name is required"}
	errCompanyNotFound    = ErrorResponse{Error: "Company not found", Message: "Please check the company name or ticker symbol and try again"}
	errServer             = ErrorResponse{Error: "Server error", Message: "An unexpected error occurred"}
	errIdentifierRequired = ErrorResponse{Error: "Identifier is required"}
)

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "ok",
			"version": Version,
		},
	})
}

// handleCIKLookup resolves ?name= to a company.
func (s *Server) handleCIKLookup(w http.ResponseWriter, r *http.Request) {
	rec, err := s.lookup.Resolve(r.Context(), r.URL.Query().Get("name"))
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, CIKLookupResponse{
			Identifier:  edgar.PadCIK(rec.Identifier),
			CIK:         rec.Identifier,
			CompanyName: rec.DisplayName,
			Ticker:      rec.Ticker,
		})
	case errors.Is(err, lookup.ErrInvalidRequest):
		s.writeJSON(w, http.StatusBadRequest, errNameRequired)
	case errors.Is(err, lookup.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errCompanyNotFound)
	default:
		s.logger.Error("cik lookup failed", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errServer)
	}
}

// handleFilings lists the filings of ?identifier=, filtered by ?form=,
// ?start= and ?end=.
func (s *Server) handleFilings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	identifier := q.Get("identifier")
	if identifier == "" {
		s.writeJSON(w, http.StatusBadRequest, errIdentifierRequired)
		return
	}
	criteria, err := filings.ParseCriteria(q.Get("start"), q.Get("end"), q.Get("form"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ui.MsgInvalidDate})
		return
	}

	records, err := s.filings.Fetch(r.Context(), identifier)
	if err != nil {
		var upErr *edgar.UpstreamError
		switch {
		case errors.Is(err, filings.ErrInvalidIdentifier):
			s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Identifier must be a numeric CIK"})
		case errors.As(err, &upErr):
			s.logger.Error("filings fetch failed", zap.String("op", upErr.Op), zap.Error(err))
			s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Server error", Message: ui.MsgFetchFailure})
		default:
			s.logger.Error("filings fetch failed", zap.Error(err))
			s.writeJSON(w, http.StatusInternalServerError, errServer)
		}
		return
	}

	cards := present.Cards(filings.Apply(records, criteria))
	s.writeJSON(w, http.StatusOK, FilingsResponse{
		Identifier: edgar.PadCIK(identifier),
		Count:      len(cards),
		Filings:    cards,
	})
}

// handleIndex renders the search page, running a search when ?company= is
// present.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := ui.NewState()
	state = ui.Update(state, ui.SetQuery{Value: q.Get("company")})
	// Forms outside the selector widen to all forms, so the page shows the
	// filter it applied.
	form := present.FormOptions[present.FormOptionIndex(q.Get("form"))].Value
	state = ui.Update(state, ui.SetFormType{Value: form})
	state = ui.Update(state, ui.SetStartDate{Value: q.Get("start")})
	state = ui.Update(state, ui.SetEndDate{Value: q.Get("end")})

	searched := q.Has("company")
	if searched {
		state = s.engine.Search(r.Context(), state)
	}

	data := pageData{
		State:    state,
		Cards:    state.Cards(),
		Options:  present.FormOptions,
		Searched: searched,
	}
	if state.Company != nil {
		data.PaddedCIK = edgar.PadCIK(state.Company.Identifier)
	}

	var buf bytes.Buffer
	if err := s.page.ExecuteTemplate(&buf, web.PageName, data); err != nil {
		s.logger.Error("render page", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write JSON response", zap.Int("status", status), zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
