package service

import (
	"context"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"babyfood/internal/core/calendar"
	"babyfood/internal/core/normalize"
	"babyfood/internal/services/api/calendar/domain"
	logs "babyfood/internal/services/api/foodlogs/domain"
)

// SittingTail is how long the last feeding of a sitting is assumed to last
const SittingTail = 15 * time.Minute

const prodID = "-//babyfood//calendar//EN"

// ICS renders the window as an iCalendar document with one event per sitting
func (s *Svc) ICS(ctx context.Context, babyID, userID string, q domain.Query) ([]byte, error) {
	rv, feedings, err := s.load(ctx, babyID, userID, q)
	if err != nil {
		return nil, err
	}
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)
	cal.SetName("Feedings " + rv.span.Label)
	cal.SetXWRTimezone(rv.loc.String())

	stamp := s.now().UTC()
	for _, day := range calendar.Days(rv.span, rv.loc) {
		for _, sitting := range calendar.Cluster(feedings, logs.Log.At, day, rv.loc) {
			addSitting(cal, sitting, rv.loc, stamp)
		}
	}
	return []byte(cal.Serialize()), nil
}

func addSitting(cal *ics.Calendar, sitting []logs.Log, loc *time.Location, stamp time.Time) {
	first, last := sitting[0], sitting[len(sitting)-1]

	ev := cal.AddEvent(first.ID + "@babyfood")
	ev.SetDtStampTime(stamp)
	ev.SetStartAt(first.FedAt)
	ev.SetEndAt(last.FedAt.Add(SittingTail))
	ev.SetSummary(summary(sitting))
	ev.SetDescription(describe(sitting, loc))
}

// summary lists each food once, in the order first fed
func summary(sitting []logs.Log) string {
	seen := map[string]bool{}
	names := make([]string, 0, len(sitting))
	for _, l := range sitting {
		k := normalize.Key(l.FoodName)
		if seen[k] {
			continue
		}
		seen[k] = true
		names = append(names, l.FoodName)
	}
	return strings.Join(names, ", ")
}

// describe writes one line per feeding: local time, food, reaction and notes
func describe(sitting []logs.Log, loc *time.Location) string {
	lines := make([]string, 0, len(sitting))
	for _, l := range sitting {
		line := l.FedAt.In(loc).Format("15:04") + " " + l.FoodName
		if l.Reaction != nil {
			line += " (" + normalize.Label(string(*l.Reaction)) + ")"
		}
		if l.Notes != nil && *l.Notes != "" {
			line += ": " + strings.ReplaceAll(*l.Notes, "\n", " ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
