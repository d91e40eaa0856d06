package filings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/seenimoa/secfilings/internal/edgar"
)

func testEdgar(t *testing.T, body string) (*edgar.Client, *[]string) {
	t.Helper()
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if body == "" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(body)) //nolint:errcheck
	}))
	t.Cleanup(ts.Close)
	return edgar.NewClient(edgar.WithHTTPClient(ts.Client()), edgar.WithSubmissionsURL(ts.URL)), &paths
}

func TestFetchZipsInUpstreamOrder(t *testing.T) {
	client, paths := testEdgar(t, `{"cik":"320193","name":"Apple Inc.","filings":{"recent":{
		"accessionNumber": ["0000320193-24-000123","0000320193-24-000081","0001140361-24-041790"],
		"filingDate":      ["2024-11-01","2024-08-02","not-a-date"],
		"form":            ["10-K","10-Q","8-K"],
		"primaryDocument": ["aapl-20240928.htm","aapl-20240629.htm","ef2024.htm"]
	}}}`)

	records, err := NewClient(client, nil).Fetch(context.Background(), "320193")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(*paths) != 1 || (*paths)[0] != "/CIK0000320193.json" {
		t.Errorf("upstream paths: got %v", *paths)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	first := records[0]
	if first.FormType != "10-K" || first.AccessionID != "0000320193-24-000123" || first.Description != "aapl-20240928.htm" {
		t.Errorf("first record: %+v", first)
	}
	if first.CompanyIdentifier != "0000320193" {
		t.Errorf("CompanyIdentifier: got %q", first.CompanyIdentifier)
	}
	if !first.FilingDate.Equal(time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("FilingDate: got %v", first.FilingDate)
	}
	if !records[2].FilingDate.IsZero() {
		t.Errorf("unparseable date should be zero, got %v", records[2].FilingDate)
	}
}

func TestFetchInvalidIdentifier(t *testing.T) {
	client, paths := testEdgar(t, `{}`)
	for _, id := range []string{"", "abc", "32-0193", " 320193"} {
		_, err := NewClient(client, nil).Fetch(context.Background(), id)
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("Fetch(%q): expected ErrInvalidIdentifier, got %v", id, err)
		}
	}
	if len(*paths) != 0 {
		t.Errorf("expected no upstream calls, got %v", *paths)
	}
}

func TestFetchMalformedArrays(t *testing.T) {
	client, _ := testEdgar(t, `{"filings":{"recent":{
		"accessionNumber": ["a","b"],
		"filingDate":      ["2024-11-01"],
		"form":            ["10-K","10-Q"],
		"primaryDocument": ["x.htm","y.htm"]
	}}}`)

	_, err := NewClient(client, nil).Fetch(context.Background(), "320193")
	var upErr *edgar.UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *edgar.UpstreamError, got %T (%v)", err, err)
	}
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed in chain, got %v", err)
	}
	if !strings.HasSuffix(upErr.URL, "/CIK0000320193.json") {
		t.Errorf("URL: got %q", upErr.URL)
	}
}

func TestFetchUpstreamFailure(t *testing.T) {
	client, _ := testEdgar(t, "")
	_, err := NewClient(client, nil).Fetch(context.Background(), "320193")
	var upErr *edgar.UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *edgar.UpstreamError, got %T (%v)", err, err)
	}
}

func TestZipEmpty(t *testing.T) {
	records, err := Zip("1", edgar.FilingSet{})
	if err != nil {
		t.Fatalf("Zip error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
