package utils

import (
	"fmt"
	"time"
)

// ParseDate parses an ISO 8601 date string, accepting YYYY-MM-DD or RFC3339.
// Day-precision dates are anchored at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC3339", s)
}

// FormatDate formats t as a calendar date in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// FormatTimestamp formats t as an RFC3339 timestamp in UTC
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
