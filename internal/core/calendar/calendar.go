// Package calendar resolves day, week and month windows into instant ranges,
// lays out Sunday-first calendar grids and groups same-day events by proximity.
// Every function is pure; the zone is always an explicit argument and nil means UTC
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// View is a calendar granularity
type View string

const (
	// ViewDay is a single calendar day
	ViewDay View = "day"
	// ViewWeek is the Sunday-to-Saturday week containing the anchor
	ViewWeek View = "week"
	// ViewMonth is the calendar month containing the anchor
	ViewMonth View = "month"
)

// Views lists the supported views in display order
var Views = []View{ViewDay, ViewWeek, ViewMonth}

// ParseView maps a case-insensitive name to a View
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewDay, ViewWeek, ViewMonth:
		return v, nil
	}
	return "", fmt.Errorf("calendar: unknown view %q", s)
}

// Window is a view anchored at a calendar date
// only the anchor's date in the resolving zone matters, its clock time is ignored
type Window struct {
	View   View
	Anchor time.Time
}

// Span is an inclusive instant range plus its display label
type Span struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether t falls inside the inclusive range
func (s Span) Contains(t time.Time) bool {
	return !t.Before(s.Start) && !t.After(s.End)
}

const (
	dayLabel       = "Mon, Jan 2"
	weekStartLabel = "Jan 2"
	weekEndLabel   = "Jan 2, 2006"
	monthLabel     = "January 2006"

	// lastMilli is 23:59:59.999 expressed as nanoseconds past the second
	lastMilli = 999 * int(time.Millisecond)
)

// Resolve maps a window to its inclusive range and label in loc
func Resolve(w Window, loc *time.Location) Span {
	loc = zone(loc)
	switch w.View {
	case ViewWeek:
		days := WeekGrid(w.Anchor, loc)
		first, last := days[0], days[len(days)-1]
		return Span{
			Start: first,
			End:   EndOfDay(last, loc),
			Label: first.Format(weekStartLabel) + " - " + last.Format(weekEndLabel),
		}
	case ViewMonth:
		y, m, _ := w.Anchor.In(loc).Date()
		first := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		last := time.Date(y, m+1, 0, 0, 0, 0, 0, loc)
		return Span{
			Start: first,
			End:   EndOfDay(last, loc),
			Label: first.Format(monthLabel),
		}
	default:
		start := StartOfDay(w.Anchor, loc)
		return Span{
			Start: start,
			End:   EndOfDay(start, loc),
			Label: start.Format(dayLabel),
		}
	}
}

// Shift moves a window dir steps of its own granularity
// a day view moves by days and a week view by seven days
// a month view moves by calendar months and lands on the first of the month
func Shift(w Window, dir int, loc *time.Location) Window {
	loc = zone(loc)
	y, m, d := w.Anchor.In(loc).Date()
	switch w.View {
	case ViewWeek:
		d += 7 * dir
	case ViewMonth:
		m, d = m+time.Month(dir), 1
	default:
		d += dir
	}
	return Window{View: w.View, Anchor: time.Date(y, m, d, 0, 0, 0, 0, loc)}
}

// StartOfDay returns local midnight of t's calendar date in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	loc = zone(loc)
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EndOfDay returns 23:59:59.999 of t's calendar date in loc
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	loc = zone(loc)
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, lastMilli, loc)
}

// SameDay reports whether a and b share a calendar date in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	loc = zone(loc)
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// Days returns the local midnights of every calendar date the span touches
func Days(s Span, loc *time.Location) []time.Time {
	loc = zone(loc)
	if s.End.Before(s.Start) {
		return []time.Time{}
	}
	first := StartOfDay(s.Start, loc)
	y, m, d := first.Date()
	out := []time.Time{first}
	for i := 1; ; i++ {
		next := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		if next.After(s.End) {
			return out
		}
		out = append(out, next)
	}
}

func zone(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
