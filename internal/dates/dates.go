package dates

import "time"

// The fleet works in whole calendar days. Every date handled here is expected
// to be a "civil date": a time.Time at midnight UTC, as produced by Day or
// Parse. An absent end date (nil) means an open-ended range.

const Layout = "2006-01-02"

// Day builds a civil date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Today returns the current civil date.
func Today() time.Time {
	now := time.Now().UTC()
	return Day(now.Year(), now.Month(), now.Day())
}

// Parse parses a yyyy-mm-dd string into a civil date.
func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(Layout, s, time.UTC)
}

// InRange reports whether d falls between start and end, both inclusive.
func InRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// Overlap reports whether [aStart, aEnd] and [bStart, bEnd] intersect.
// Both bounds are inclusive; a nil end is treated as open-ended.
func Overlap(aStart time.Time, aEnd *time.Time, bStart time.Time, bEnd *time.Time) bool {
	if aEnd != nil && bStart.After(*aEnd) {
		return false
	}
	if bEnd != nil && aStart.After(*bEnd) {
		return false
	}
	return true
}

// DaysBetween returns the number of whole days from a to b (negative when b
// precedes a).
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// SpanDays returns the inclusive length of [start, end] in days.
func SpanDays(start, end time.Time) int {
	return DaysBetween(start, end) + 1
}
