package present

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/seenimoa/secfilings/pkg/models"
)

func TestFormLabel(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"10-K", "Annual Report"},
		{"10-Q", "Quarterly Report"},
		{"8-K", "Current Report"},
		{"6-K", "Foreign Issues Report"},
		{"20-F", "Foreign Annual Report"},
		{"S-1", "Initial Registration"},
		{"424B", "Prospectus"},
		{"DEF 14A", "Proxy Statement"},
		{"10-K/A", "Annual Report Amendment"},
		{"10-Q/A", "Quarterly Report Amendment"},
		{"8-K/A", "Current Report Amendment"},
		{"F-1", "Foreign Registration Statement"},
		{"F-4", "Foreign Merger Registration"},
		{"SC 13G", "SC 13G"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormLabel(tt.code); got != tt.want {
			t.Errorf("FormLabel(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
	if len(formLabels) != 13 {
		t.Errorf("label table has %d entries, want 13", len(formLabels))
	}
}

func TestFormOptions(t *testing.T) {
	if len(FormOptions) != 8 {
		t.Fatalf("got %d options, want 8", len(FormOptions))
	}
	if FormOptions[0].Value != models.FormAll {
		t.Errorf("first option should be %q, got %q", models.FormAll, FormOptions[0].Value)
	}
	if FormOptionIndex("DEF 14A") != 5 {
		t.Errorf("FormOptionIndex(DEF 14A) = %d", FormOptionIndex("DEF 14A"))
	}
	if FormOptionIndex("S-1") != 0 {
		t.Errorf("unknown option should map to 0")
	}
}

func TestTruncateDescription(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"aapl-20240928.htm", "aapl-20240928"},
		{"Annual report. Fiscal 2024.", "Annual report"},
		{"no period here", "no period here"},
		{".htm", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TruncateDescription(tt.in); got != tt.want {
			t.Errorf("TruncateDescription(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDocumentURL(t *testing.T) {
	got := DocumentURL("320193", "0000320193-24-000123")
	want := "https://www.sec.gov/Archives/edgar/data/0000320193/000032019324000123/0000320193-24-000123-index.html"
	if got != want {
		t.Errorf("DocumentURL:\n got  %s\n want %s", got, want)
	}
	if DocumentURL("0000320193", "0000320193-24-000123") != want {
		t.Error("padded and unpadded identifiers should build the same URL")
	}
}

func TestNewCard(t *testing.T) {
	r := models.FilingRecord{
		FormType:          "10-K",
		FilingDate:        time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		AccessionID:       "0000320193-24-000123",
		Description:       "aapl-20240928.htm",
		CompanyIdentifier: "0000320193",
	}
	c := NewCard(r)

	if c.Label != "Annual Report" || c.Subtitle != "Form 10-K" {
		t.Errorf("label/subtitle: %q / %q", c.Label, c.Subtitle)
	}
	if c.FiledOn != "November 1, 2024" || c.FilingDate != "2024-11-01" {
		t.Errorf("dates: %q / %q", c.FiledOn, c.FilingDate)
	}
	if c.Description != "aapl-20240928" {
		t.Errorf("Description: %q", c.Description)
	}
	if c.URL != DocumentURL("320193", r.AccessionID) {
		t.Errorf("URL: %q", c.URL)
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"formType", "formLabel", "filingDate", "accessionNumber", "description", "documentUrl"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing JSON key %q", key)
		}
	}
	if len(m) != 6 {
		t.Errorf("expected 6 JSON keys, got %d: %v", len(m), m)
	}
}

func TestNewCardUnknownDate(t *testing.T) {
	c := NewCard(models.FilingRecord{FormType: "ABS-15G", AccessionID: "1-2-3", CompanyIdentifier: "1"})
	if c.FiledOn != "Unknown date" || c.FilingDate != "" {
		t.Errorf("dates: %q / %q", c.FiledOn, c.FilingDate)
	}
	if c.Label != "ABS-15G" {
		t.Errorf("Label: %q", c.Label)
	}
}

func TestCards(t *testing.T) {
	records := []models.FilingRecord{
		{FormType: "8-K", AccessionID: "a"},
		{FormType: "10-Q", AccessionID: "b"},
	}
	cards := Cards(records)
	if len(cards) != 2 || cards[0].Form != "8-K" || cards[1].Form != "10-Q" {
		t.Errorf("Cards: %+v", cards)
	}
}
