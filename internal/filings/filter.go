package filings

import (
	"errors"
	"fmt"

	"github.com/seenimoa/secfilings/pkg/models"
	"github.com/seenimoa/secfilings/pkg/utils"
)

// ErrInvalidDate is returned when a date bound is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date: use YYYY-MM-DD")

// Criteria is the filter applied to a filing list.
type Criteria models.SearchFilterCriteria

// ParseCriteria builds criteria from raw form inputs. Blank dates are open
// bounds; a blank form means all forms.
func ParseCriteria(start, end, form string) (Criteria, error) {
	var c Criteria
	var err error
	if c.StartDate, err = utils.ParseOptionalDate(start); err != nil {
		return Criteria{}, fmt.Errorf("%w: start %q", ErrInvalidDate, start)
	}
	if c.EndDate, err = utils.ParseOptionalDate(end); err != nil {
		return Criteria{}, fmt.Errorf("%w: end %q", ErrInvalidDate, end)
	}
	c.FormType = form
	if c.FormType == "" {
		c.FormType = models.FormAll
	}
	return c, nil
}

// Matches reports whether r satisfies every bound. Date bounds are inclusive
// and compared by calendar day. A record without a filing date fails any
// date bound.
func (c Criteria) Matches(r models.FilingRecord) bool {
	if c.StartDate != nil || c.EndDate != nil {
		if r.FilingDate.IsZero() {
			return false
		}
		day := utils.TruncateToDay(r.FilingDate)
		if c.StartDate != nil && day.Before(utils.TruncateToDay(*c.StartDate)) {
			return false
		}
		if c.EndDate != nil && day.After(utils.TruncateToDay(*c.EndDate)) {
			return false
		}
	}
	return models.SearchFilterCriteria(c).AllForms() || c.FormType == r.FormType
}

// Apply returns the records matching c in their original order. The input
// slice is not modified.
func Apply(records []models.FilingRecord, c Criteria) []models.FilingRecord {
	out := make([]models.FilingRecord, 0, len(records))
	for _, r := range records {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
