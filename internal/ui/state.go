// Package ui holds the search screen state shared by the web page and the
// terminal front-end. State is a value; every user action produces a new
// State through Update.
package ui

import (
	"github.com/seenimoa/secfilings/internal/present"
	"github.com/seenimoa/secfilings/pkg/models"
)

// State is one snapshot of the search screen.
type State struct {
	Query     string
	FormType  string
	StartDate string // raw YYYY-MM-DD input
	EndDate   string

	Company *models.CompanyRecord
	Results []models.FilingRecord
	Loading bool
	Err     string
}

// NewState returns the initial screen: empty form, all forms selected.
func NewState() State {
	return State{FormType: models.FormAll}
}

// Cards renders the current results.
func (s State) Cards() []present.Card {
	return present.Cards(s.Results)
}

// CanSubmit reports whether a search may start from this state.
func (s State) CanSubmit() bool {
	return !s.Loading
}

// Action is a user or search event.
type Action interface{ action() }

type (
	SetQuery     struct{ Value string }
	SetFormType  struct{ Value string }
	SetStartDate struct{ Value string }
	SetEndDate   struct{ Value string }

	// SearchStarted marks the search busy and clears the previous outcome.
	SearchStarted struct{}

	// SearchSucceeded carries the resolved company and its filtered filings.
	SearchSucceeded struct {
		Company models.CompanyRecord
		Results []models.FilingRecord
	}

	// SearchFailed carries the error that ended the search.
	SearchFailed struct{ Err error }
)

func (SetQuery) action()        {}
func (SetFormType) action()     {}
func (SetStartDate) action()    {}
func (SetEndDate) action()      {}
func (SearchStarted) action()   {}
func (SearchSucceeded) action() {}
func (SearchFailed) action()    {}

// Update returns the state that follows s after a.
func Update(s State, a Action) State {
	switch a := a.(type) {
	case SetQuery:
		s.Query = a.Value
	case SetFormType:
		s.FormType = a.Value
		if s.FormType == "" {
			s.FormType = models.FormAll
		}
	case SetStartDate:
		s.StartDate = a.Value
	case SetEndDate:
		s.EndDate = a.Value
	case SearchStarted:
		if s.Loading {
			return s
		}
		s.Loading = true
		s.Company = nil
		s.Results = nil
		s.Err = ""
	case SearchSucceeded:
		if !s.Loading {
			return s
		}
		company := a.Company
		s.Company = &company
		s.Results = append([]models.FilingRecord(nil), a.Results...)
		s.Loading = false
		s.Err = ""
	case SearchFailed:
		if !s.Loading {
			return s
		}
		s.Company = nil
		s.Results = nil
		s.Loading = false
		s.Err = Message(a.Err)
	}
	return s
}
