package models

import "time"

// FormAll is the form-type criterion that matches every filing.
const FormAll = "all"

// --- SEC registry ---

// CompanyRecord is a single entry of the SEC company index, resolved from a
// user query.
type CompanyRecord struct {
	Identifier  string `json:"identifier"` // CIK as listed upstream, unpadded
	DisplayName string `json:"companyName"`
	Ticker      string `json:"ticker"`
}

// FilingRecord represents one SEC filing reconstructed from the submissions
// parallel arrays.
type FilingRecord struct {
	FormType          string    `json:"formType"` // "10-K", "10-Q", "8-K", etc.
	FilingDate        time.Time `json:"filingDate"`
	AccessionID       string    `json:"accessionNumber"`
	Description       string    `json:"description"` // primary document file name, or filer name from the current feed
	CompanyIdentifier string    `json:"cik"`         // 10-digit padded CIK
}

// SearchFilterCriteria narrows a filing list by date range and form type.
// Nil bounds are open.
type SearchFilterCriteria struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	FormType  string     `json:"formType"`
}

// AllForms reports whether the criteria place no constraint on form type.
func (c SearchFilterCriteria) AllForms() bool {
	return c.FormType == "" || c.FormType == FormAll
}
