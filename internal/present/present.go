// Package present maps filing records to display cards: a readable form
// label, the filing date, a short description and a link to the filing's
// public index page.
package present

import (
	"fmt"
	"strings"

	"github.com/seenimoa/secfilings/internal/edgar"
	"github.com/seenimoa/secfilings/pkg/models"
	"github.com/seenimoa/secfilings/pkg/utils"
)

// ArchivesBaseURL is the root of the EDGAR document archive.
const ArchivesBaseURL = "https://www.sec.gov/Archives/edgar/data"

var formLabels = map[string]string{
	"10-K":    "Annual Report",
	"10-Q":    "Quarterly Report",
	"8-K":     "Current Report",
	"6-K":     "Foreign Issues Report",
	"20-F":    "Foreign Annual Report",
	"S-1":     "Initial Registration",
	"424B":    "Prospectus",
	"DEF 14A": "Proxy Statement",
	"10-K/A":  "Annual Report Amendment",
	"10-Q/A":  "Quarterly Report Amendment",
	"8-K/A":   "Current Report Amendment",
	"F-1":     "Foreign Registration Statement",
	"F-4":     "Foreign Merger Registration",
}

// FormLabel returns the readable name of a form code, or the code itself
// when it is not in the table.
func FormLabel(code string) string {
	if label, ok := formLabels[code]; ok {
		return label
	}
	return code
}

// FormOption is one entry of the form-type selector.
type FormOption struct {
	Value string
	Label string
}

// FormOptions lists the selector entries in display order.
var FormOptions = []FormOption{
	{Value: models.FormAll, Label: "All Forms"},
	{Value: "10-K", Label: "Annual Report (10-K)"},
	{Value: "10-Q", Label: "Quarterly Report (10-Q)"},
	{Value: "8-K", Label: "Current Report (8-K)"},
	{Value: "20-F", Label: "Foreign Annual Report (20-F)"},
	{Value: "DEF 14A", Label: "Proxy Statement"},
	{Value: "10-K/A", Label: "Annual Report Amendment"},
	{Value: "10-Q/A", Label: "Quarterly Report Amendment"},
}

// FormOptionIndex returns the selector position of value, or 0 (all forms)
// when value is not offered.
func FormOptionIndex(value string) int {
	for i, o := range FormOptions {
		if o.Value == value {
			return i
		}
	}
	return 0
}

// TruncateDescription returns the text before the first period.
func TruncateDescription(s string) string {
	before, _, _ := strings.Cut(s, ".")
	return before
}

// DocumentURL builds the filing index page URL:
//
//	https://www.sec.gov/Archives/edgar/data/{cik}/{accession without dashes}/{accession}-index.html
//
// The index page lists every document of the filing, whatever the format of
// the primary document.
func DocumentURL(identifier, accession string) string {
	return fmt.Sprintf("%s/%s/%s/%s-index.html",
		ArchivesBaseURL,
		edgar.PadCIK(identifier),
		strings.ReplaceAll(accession, "-", ""),
		accession,
	)
}

// Card is the display form of one filing.
type Card struct {
	Label       string `json:"formLabel"`
	Form        string `json:"formType"`
	Subtitle    string `json:"-"`
	FiledOn     string `json:"-"`
	FilingDate  string `json:"filingDate"`
	Accession   string `json:"accessionNumber"`
	Description string `json:"description"`
	URL         string `json:"documentUrl"`
}

// NewCard builds the card for r.
func NewCard(r models.FilingRecord) Card {
	return Card{
		Label:       FormLabel(r.FormType),
		Form:        r.FormType,
		Subtitle:    "Form " + r.FormType,
		FiledOn:     utils.FormatLongDate(r.FilingDate),
		FilingDate:  utils.FormatDate(r.FilingDate),
		Accession:   r.AccessionID,
		Description: TruncateDescription(r.Description),
		URL:         DocumentURL(r.CompanyIdentifier, r.AccessionID),
	}
}

// Cards builds one card per record, in order.
func Cards(records []models.FilingRecord) []Card {
	cards := make([]Card, len(records))
	for i, r := range records {
		cards[i] = NewCard(r)
	}
	return cards
}
