package calendar

import "time"

// WeekGrid returns the seven local midnights, Sunday first, of the week containing anchor
func WeekGrid(anchor time.Time, loc *time.Location) []time.Time {
	loc = zone(loc)
	local := anchor.In(loc)
	y, m, d := local.Date()
	sunday := d - int(local.Weekday())

	out := make([]time.Time, 7)
	for i := range out {
		out[i] = time.Date(y, m, sunday+i, 0, 0, 0, 0, loc)
	}
	return out
}

// MonthGrid returns the padded Sunday-to-Saturday cells of a month view
// month0 is zero based, so 0 is January; out-of-range months roll into adjacent years
func MonthGrid(year, month0 int, loc *time.Location) []time.Time {
	loc = zone(loc)
	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, loc)
	last := time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, loc)

	lead := int(first.Weekday())
	trail := 6 - int(last.Weekday())
	n := lead + last.Day() + trail

	y, m, _ := first.Date()
	out := make([]time.Time, n)
	for i := range out {
		out[i] = time.Date(y, m, 1-lead+i, 0, 0, 0, 0, loc)
	}
	return out
}

// Grid returns the cells a window renders: one day, a week row or a padded month
func Grid(w Window, loc *time.Location) []time.Time {
	loc = zone(loc)
	switch w.View {
	case ViewWeek:
		return WeekGrid(w.Anchor, loc)
	case ViewMonth:
		y, m, _ := w.Anchor.In(loc).Date()
		return MonthGrid(y, int(m)-1, loc)
	default:
		return []time.Time{StartOfDay(w.Anchor, loc)}
	}
}
