package utils

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day form used as the schedule document id.
const DateLayout = "2006-01-02"

// FormatDate renders t as a calendar date in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a "YYYY-MM-DD" string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// IsSunday reports whether the given date string falls on a Sunday.
func IsSunday(date string) (bool, error) {
	t, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	return t.Weekday() == time.Sunday, nil
}

// IsSameDay reports whether date (calendar form) is the same calendar day
// as now in now's location.
func IsSameDay(date string, now time.Time) bool {
	return date == FormatDate(now)
}
