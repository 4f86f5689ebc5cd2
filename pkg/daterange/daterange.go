// Package daterange converts inclusive calendar-day ranges into half-open UTC intervals.
package daterange

import (
	"time"

	"github.com/tair/pos-backoffice/pkg/apperr"
)

// Day truncates t to midnight UTC of its calendar day
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Bounds returns [start 00:00, end+1 00:00) for the inclusive days start..end.
// It fails with InvalidRange when end is before start.
func Bounds(start, end time.Time) (from, to time.Time, err error) {
	from, last := Day(start), Day(end)
	if last.Before(from) {
		return time.Time{}, time.Time{}, apperr.InvalidRange(
			"end date %s is before start date %s", last.Format("2006-01-02"), from.Format("2006-01-02"))
	}
	return from, last.AddDate(0, 0, 1), nil
}
