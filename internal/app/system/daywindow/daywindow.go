// Package daywindow computes the calendar-day window used by the
// one-record-per-day attendance rules. The window is half-open:
// [start of day, start of next day).
package daywindow

import "time"

// Range returns the start of t's calendar day and the start of the next
// day, in t's location. Queries use {$gte: start, $lt: end}.
func Range(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 0, 1)
	return start, end
}
