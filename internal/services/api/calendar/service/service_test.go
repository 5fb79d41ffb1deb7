package service

import (
	"context"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"

	perr "babyfood/internal/platform/errors"
	"babyfood/internal/services/api/babies/babiestest"
	babies "babyfood/internal/services/api/babies/domain"
	"babyfood/internal/services/api/calendar/domain"
	logs "babyfood/internal/services/api/foodlogs/domain"
)

type fakeReader struct {
	logs       []logs.Log
	start, end time.Time
}

func (f *fakeReader) Range(_ context.Context, _ string, start, end time.Time) ([]logs.Log, error) {
	f.start, f.end = start, end
	out := []logs.Log{}
	for _, l := range f.logs {
		if !l.FedAt.Before(start) && !l.FedAt.After(end) {
			out = append(out, l)
		}
	}
	return out, nil
}

const (
	baby   = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	member = "22222222-2222-2222-2222-222222222222"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("zoneinfo unavailable: %v", err)
	}
	return loc
}

func feeding(id, food string, at time.Time) logs.Log {
	return logs.Log{ID: id, BabyID: baby, FoodName: food, FedAt: at}
}

func TestBuild_WeekInBabyZone(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	// Wed 2024-03-06 in New York
	day := time.Date(2024, 3, 6, 0, 0, 0, 0, ny)
	r := &fakeReader{logs: []logs.Log{
		feeding("a", "Pear", day.Add(8*time.Hour)),
		feeding("b", "Oats", day.Add(8*time.Hour+20*time.Minute)),
		feeding("c", "Egg", day.Add(12*time.Hour)),
		// 23:30 local on Saturday the 9th, already the 10th in UTC
		feeding("d", "Kiwi", time.Date(2024, 3, 9, 23, 30, 0, 0, ny)),
	}}
	s := New(babiestest.Access{member: babies.RoleMember}, babiestest.Zones{baby: ny}, r, time.UTC, nil)

	got, err := s.Build(context.Background(), baby, member, domain.Query{Date: "2024-03-06"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got.View != "week" || got.Zone != "America/New_York" || got.Label != "Mar 3 - Mar 9, 2024" {
		t.Fatalf("header = %s %s %q", got.View, got.Zone, got.Label)
	}
	if got.Prev != "2024-02-28" || got.Next != "2024-03-13" {
		t.Fatalf("prev/next = %s %s", got.Prev, got.Next)
	}
	if len(got.Days) != 7 || got.Days[0].Date != "2024-03-03" {
		t.Fatalf("days = %+v", got.Days)
	}
	wed := got.Days[3]
	if len(wed.Clusters) != 2 || len(wed.Clusters[0]) != 2 || wed.Clusters[1][0].ID != "c" {
		t.Fatalf("wednesday = %+v", wed.Clusters)
	}
	if sat := got.Days[6]; len(sat.Clusters) != 1 || sat.Clusters[0][0].ID != "d" {
		t.Fatalf("saturday = %+v", sat.Clusters)
	}
	if want := time.Date(2024, 3, 3, 0, 0, 0, 0, ny); !r.start.Equal(want) {
		t.Fatalf("read start = %v, want %v", r.start, want)
	}
}

func TestBuild_MonthPadsAndMarks(t *testing.T) {
	s := New(babiestest.Access{member: babies.RoleMember}, babiestest.Zones{}, &fakeReader{}, time.UTC, nil)
	got, err := s.Build(context.Background(), baby, member, domain.Query{View: "Month", Date: "2024-02-14"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Feb 2024 starts on Thursday and ends on Thursday
	if len(got.Days) != 35 || got.Days[0].Date != "2024-01-28" {
		t.Fatalf("grid = %d from %s", len(got.Days), got.Days[0].Date)
	}
	if got.Days[0].InMonth || !got.Days[4].InMonth || got.Days[34].InMonth {
		t.Fatalf("in_month flags wrong")
	}
	if got.Label != "February 2024" || got.Zone != "UTC" || got.Prev != "2024-01-01" || got.Next != "2024-03-01" {
		t.Fatalf("header = %q %s %s %s", got.Label, got.Zone, got.Prev, got.Next)
	}
}

func TestBuild_ZonePrecedence(t *testing.T) {
	berlin := mustZone(t, "Europe/Berlin")
	tokyo := mustZone(t, "Asia/Tokyo")
	access := babiestest.Access{member: babies.RoleMember}

	s := New(access, babiestest.Zones{baby: berlin}, &fakeReader{}, tokyo, nil)
	got, _ := s.Build(context.Background(), baby, member, domain.Query{Date: "2024-03-06", TZ: "America/New_York"})
	if got.Zone != "America/New_York" {
		t.Fatalf("tz param zone = %s", got.Zone)
	}
	got, _ = s.Build(context.Background(), baby, member, domain.Query{Date: "2024-03-06"})
	if got.Zone != "Europe/Berlin" {
		t.Fatalf("baby zone = %s", got.Zone)
	}
	s = New(access, babiestest.Zones{}, &fakeReader{}, tokyo, nil)
	got, _ = s.Build(context.Background(), baby, member, domain.Query{Date: "2024-03-06"})
	if got.Zone != "Asia/Tokyo" {
		t.Fatalf("fallback zone = %s", got.Zone)
	}
}

func TestBuild_DefaultsToToday(t *testing.T) {
	now := time.Date(2024, 3, 6, 23, 30, 0, 0, time.UTC)
	s := New(babiestest.Access{member: babies.RoleMember}, babiestest.Zones{}, &fakeReader{}, time.UTC, func() time.Time { return now })
	got, err := s.Build(context.Background(), baby, member, domain.Query{View: "day"})
	if err != nil || got.Days[0].Date != "2024-03-06" {
		t.Fatalf("Build = %+v, %v", got.Days, err)
	}
}

func TestBuild_Errors(t *testing.T) {
	s := New(babiestest.Access{member: babies.RoleMember}, babiestest.Zones{}, &fakeReader{}, time.UTC, nil)
	ctx := context.Background()
	cases := []struct {
		name  string
		user  string
		q     domain.Query
		code  perr.ErrorCode
		field string
	}{
		{"stranger", "nobody", domain.Query{}, perr.ErrorCodeNotFound, ""},
		{"bad view", member, domain.Query{View: "year"}, perr.ErrorCodeInvalidArgument, "view"},
		{"bad date", member, domain.Query{Date: "03/06/2024"}, perr.ErrorCodeInvalidArgument, "date"},
		{"bad zone", member, domain.Query{TZ: "Mars/Olympus"}, perr.ErrorCodeInvalidArgument, "tz"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := s.Build(ctx, baby, c.user, c.q)
			if !perr.IsCode(err, c.code) {
				t.Fatalf("err = %v", err)
			}
			if e, _ := perr.As(err); c.field != "" && e.Field() != c.field {
				t.Fatalf("field = %q", e.Field())
			}
		})
	}
}

func TestICS_OneEventPerSitting(t *testing.T) {
	day := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	loved := logs.Loved
	notes := "ate\nhalf"
	r := &fakeReader{logs: []logs.Log{
		{ID: "a", FoodName: "Pear", FedAt: day.Add(8 * time.Hour), Reaction: &loved},
		{ID: "b", FoodName: "pear", FedAt: day.Add(8*time.Hour + 10*time.Minute), Notes: &notes},
		{ID: "c", FoodName: "Oats", FedAt: day.Add(8*time.Hour + 25*time.Minute)},
		{ID: "d", FoodName: "Egg", FedAt: day.Add(18 * time.Hour)},
	}}
	s := New(babiestest.Access{member: babies.RoleMember}, babiestest.Zones{}, r, time.UTC, func() time.Time { return day })

	raw, err := s.ICS(context.Background(), baby, member, domain.Query{View: "day", Date: "2024-03-06"})
	if err != nil {
		t.Fatalf("ICS: %v", err)
	}
	cal, err := ics.ParseCalendar(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("ParseCalendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("events = %d", len(events))
	}
	first := events[0]
	if got := first.GetProperty(ics.ComponentPropertySummary).Value; got != "Pear, Oats" {
		t.Fatalf("summary = %q", got)
	}
	if got := first.GetProperty(ics.ComponentPropertyUniqueId).Value; got != "a@babyfood" {
		t.Fatalf("uid = %q", got)
	}
	if got := first.GetProperty(ics.ComponentPropertyDtEnd).Value; got != "20240306T084000Z" {
		t.Fatalf("dtend = %q", got)
	}
}

func TestDescribe(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	okay := logs.Okay
	notes := "spat\nsome out"
	got := describe([]logs.Log{
		{FoodName: "Pear", FedAt: time.Date(2024, 3, 6, 13, 5, 0, 0, time.UTC), Reaction: &okay, Notes: &notes},
		{FoodName: "Oats", FedAt: time.Date(2024, 3, 6, 13, 20, 0, 0, time.UTC)},
	}, ny)
	want := "08:05 Pear (Okay): spat some out\n08:20 Oats"
	if got != want {
		t.Fatalf("describe = %q, want %q", got, want)
	}
}
