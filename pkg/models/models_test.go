package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// ── CompanyRecord ──

func TestCompanyRecordJSONFieldNames(t *testing.T) {
	c := CompanyRecord{Identifier: "320193", DisplayName: "Apple Inc.", Ticker: "AAPL"}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("json.Marshal(CompanyRecord) error: %v", err)
	}
	for _, key := range []string{`"identifier":"320193"`, `"companyName":"Apple Inc."`, `"ticker":"AAPL"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("marshalled record %s missing %s", data, key)
		}
	}
}

// ── FilingRecord ──

func TestFilingRecordJSONFieldNames(t *testing.T) {
	r := FilingRecord{
		FormType:          "10-K",
		FilingDate:        time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		AccessionID:       "0000320193-24-000123",
		Description:       "aapl-20240928.htm",
		CompanyIdentifier: "0000320193",
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("json.Marshal(FilingRecord) error: %v", err)
	}
	for _, key := range []string{`"formType":"10-K"`, `"accessionNumber":"0000320193-24-000123"`, `"cik":"0000320193"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("marshalled record %s missing %s", data, key)
		}
	}
}

// ── SearchFilterCriteria ──

func TestSearchFilterCriteriaAllForms(t *testing.T) {
	tests := []struct {
		form string
		want bool
	}{
		{"", true},
		{FormAll, true},
		{"10-K", false},
		{"ALL", false},
	}
	for _, tt := range tests {
		c := SearchFilterCriteria{FormType: tt.form}
		if got := c.AllForms(); got != tt.want {
			t.Errorf("AllForms(%q) = %v, want %v", tt.form, got, tt.want)
		}
	}
}
