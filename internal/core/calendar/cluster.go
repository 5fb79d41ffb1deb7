package calendar

import (
	"sort"
	"time"
)

// Threshold is the largest gap between neighbouring events that keeps them in one cluster
const Threshold = 30 * time.Minute

// Cluster keeps the events that fall on day's calendar date in loc and chains them
// into clusters; an event joins the open cluster when it is at most Threshold after
// the event immediately before it
// the input slice is not reordered
func Cluster[T any](events []T, at func(T) time.Time, day time.Time, loc *time.Location) [][]T {
	loc = zone(loc)
	same := make([]T, 0, len(events))
	for _, e := range events {
		if SameDay(at(e), day, loc) {
			same = append(same, e)
		}
	}
	return chain(same, at)
}

// ClusterAll chains events without filtering them to a single day
func ClusterAll[T any](events []T, at func(T) time.Time) [][]T {
	cp := make([]T, len(events))
	copy(cp, events)
	return chain(cp, at)
}

// chain sorts evs in place and splits it at every gap wider than Threshold
func chain[T any](evs []T, at func(T) time.Time) [][]T {
	out := [][]T{}
	if len(evs) == 0 {
		return out
	}
	sort.SliceStable(evs, func(i, j int) bool { return at(evs[i]).Before(at(evs[j])) })

	cur := []T{evs[0]}
	for i := 1; i < len(evs); i++ {
		if at(evs[i]).Sub(at(evs[i-1])) <= Threshold {
			cur = append(cur, evs[i])
			continue
		}
		out = append(out, cur)
		cur = []T{evs[i]}
	}
	return append(out, cur)
}

// Flatten concatenates clusters back into one ordered slice
func Flatten[T any](clusters [][]T) []T {
	n := 0
	for _, c := range clusters {
		n += len(c)
	}
	out := make([]T, 0, n)
	for _, c := range clusters {
		out = append(out, c...)
	}
	return out
}
