// Package time contains date helpers shared by handlers and repos
package time

import (
	"math"
	"time"
)

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// ParseDate parses a YYYY-MM-DD calendar date as local midnight in loc
// nil loc means UTC
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(time.DateOnly, s, loc)
}

// DaysSince returns the whole days elapsed from then to now, rounded down
// nil then yields nil
func DaysSince(then *time.Time, now time.Time) *int {
	if then == nil {
		return nil
	}
	d := int(math.Floor(now.Sub(*then).Hours() / 24))
	return &d
}
