package edgar

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// --- Company index (www.sec.gov/files/company_tickers.json) ---
// The document is an object keyed by row number:
// {"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."}, ...}

// tickerEntry is a row of the company index.
type tickerEntry struct {
	CIK    cikValue `json:"cik_str"`
	Ticker string   `json:"ticker"`
	Title  string   `json:"title"`
}

// cikValue accepts a CIK encoded as either a JSON number or a JSON string.
type cikValue string

func (v *cikValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = cikValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cik: %w", err)
	}
	if _, err := n.Int64(); err != nil {
		return fmt.Errorf("cik %s is not an integer", n)
	}
	*v = cikValue(n.String())
	return nil
}

// --- Submissions (data.sec.gov/submissions) ---

// Submissions is the subset of the company submissions document this tool reads.
type Submissions struct {
	CIK     cikValue    `json:"cik"`
	Name    string      `json:"name"`
	Tickers []string    `json:"tickers"`
	Filings FilingsData `json:"filings"`
}

// FilingsData holds the recent filing block.
type FilingsData struct {
	Recent FilingSet `json:"recent"`
}

// FilingSet holds parallel arrays of filing attributes; index i across the
// arrays describes one filing, most recent first.
type FilingSet struct {
	AccessionNumber       []string `json:"accessionNumber"` // e.g., "0000320193-24-000123"
	FilingDate            []string `json:"filingDate"`      // e.g., "2024-11-01"
	ReportDate            []string `json:"reportDate"`
	Form                  []string `json:"form"`            // "10-K", "10-Q", "8-K"
	PrimaryDocument       []string `json:"primaryDocument"` // filename
	PrimaryDocDescription []string `json:"primaryDocDescription"`
}

// Len returns the number of filings when the four required arrays agree in
// length, and false otherwise.
func (s FilingSet) Len() (int, bool) {
	n := len(s.Form)
	if len(s.FilingDate) != n || len(s.AccessionNumber) != n || len(s.PrimaryDocument) != n {
		return 0, false
	}
	return n, true
}
