package utils

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date layout used by SEC EDGAR and by HTML date inputs.
const DateLayout = "2006-01-02"

// LongDateLayout renders dates the way the filing cards show them, e.g. "January 2, 2006".
const LongDateLayout = "January 2, 2006"

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// ParseOptionalDate parses s when non-blank. A blank input yields a nil date.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseSECDate parses the date formats EDGAR uses in its JSON documents.
// It returns the zero time when no layout matches.
func ParseSECDate(s string) time.Time {
	for _, layout := range []string{
		DateLayout,
		"2006-01-02T15:04:05.000Z",
		"01/02/2006",
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// TruncateToDay drops the clock component, keeping the calendar date in UTC.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate formats t as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// FormatLongDate formats t as "January 2, 2006", or "Unknown date" for the zero time.
func FormatLongDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown date"
	}
	return t.UTC().Format(LongDateLayout)
}
