package edgar

import "strings"

// cikWidth is the canonical width of a CIK in EDGAR URLs.
const cikWidth = 10

// PadCIK pads a CIK number to 10 digits with leading zeros.
// Longer values are returned unchanged.
func PadCIK(cik string) string {
	cik = strings.TrimSpace(cik)
	if len(cik) >= cikWidth {
		return cik
	}
	return strings.Repeat("0", cikWidth-len(cik)) + cik
}

// IsNumeric reports whether s is a non-empty run of ASCII digits.
func IsNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
