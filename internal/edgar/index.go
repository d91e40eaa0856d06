package edgar

import (
	"context"
	"sort"
	"strconv"

	"github.com/seenimoa/secfilings/pkg/models"
)

// CompanyIndex fetches the full company index and returns it in upstream
// listing order. It is fetched fresh on every call.
func (c *Client) CompanyIndex(ctx context.Context) ([]models.CompanyRecord, error) {
	var rows map[string]tickerEntry
	if err := c.fetchJSON(ctx, c.tickersURL, &rows); err != nil {
		return nil, &UpstreamError{Op: "company index", URL: c.tickersURL, Err: err}
	}
	return orderedRecords(rows), nil
}

// orderedRecords flattens the keyed index into records ordered by row key.
// Numeric keys sort numerically ahead of any non-numeric keys.
func orderedRecords(rows map[string]tickerEntry) []models.CompanyRecord {
	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})

	records := make([]models.CompanyRecord, 0, len(keys))
	for _, k := range keys {
		row := rows[k]
		records = append(records, models.CompanyRecord{
			Identifier:  string(row.CIK),
			DisplayName: row.Title,
			Ticker:      row.Ticker,
		})
	}
	return records
}
