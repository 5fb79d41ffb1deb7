// Package service lays feedings out on day, week and month grids and exports them as iCalendar
package service

import (
	"context"
	"time"

	"babyfood/internal/core/calendar"
	perr "babyfood/internal/platform/errors"
	ptime "babyfood/internal/platform/time"
	babies "babyfood/internal/services/api/babies/domain"
	"babyfood/internal/services/api/calendar/domain"
	logs "babyfood/internal/services/api/foodlogs/domain"
)

// Service is the calendar service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	access babies.Access
	zones  babies.Zones
	logs   logs.Reader

	// fallback is the zone for babies without one
	fallback *time.Location
	now      func() time.Time
}

// New constructs the service
func New(access babies.Access, zones babies.Zones, reader logs.Reader, fallback *time.Location, now func() time.Time) *Svc {
	if access == nil || zones == nil || reader == nil {
		panic("calendar.Service requires access, zones and reader ports")
	}
	if fallback == nil {
		fallback = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Svc{access: access, zones: zones, logs: reader, fallback: fallback, now: now}
}

var _ Service = (*Svc)(nil)

// resolved is a query turned into a window in a concrete zone
type resolved struct {
	win  calendar.Window
	loc  *time.Location
	span calendar.Span
}

// resolve picks the zone (tz param, then the baby's zone, then the fallback) and the window
func (s *Svc) resolve(ctx context.Context, babyID string, q domain.Query) (resolved, error) {
	loc, err := s.zone(ctx, babyID, q.TZ)
	if err != nil {
		return resolved{}, err
	}
	view := calendar.ViewWeek
	if q.View != "" {
		if view, err = calendar.ParseView(q.View); err != nil {
			return resolved{}, perr.WithField(perr.InvalidArgf("view must be day, week or month"), "view")
		}
	}
	anchor := s.now().In(loc)
	if q.Date != "" {
		if anchor, err = ptime.ParseDate(q.Date, loc); err != nil {
			return resolved{}, perr.WithField(perr.InvalidArgf("date must be YYYY-MM-DD"), "date")
		}
	}
	win := calendar.Window{View: view, Anchor: anchor}
	return resolved{win: win, loc: loc, span: calendar.Resolve(win, loc)}, nil
}

func (s *Svc) zone(ctx context.Context, babyID, tz string) (*time.Location, error) {
	if tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, perr.WithField(perr.InvalidArgf("unknown time zone %q", tz), "tz")
		}
		return loc, nil
	}
	loc, err := s.zones.Zone(ctx, babyID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return s.fallback, nil
	}
	return loc, nil
}

func (s *Svc) load(ctx context.Context, babyID, userID string, q domain.Query) (resolved, []logs.Log, error) {
	if _, err := s.access.Require(ctx, babyID, userID, babies.RoleMember); err != nil {
		return resolved{}, nil, err
	}
	rv, err := s.resolve(ctx, babyID, q)
	if err != nil {
		return resolved{}, nil, err
	}
	feedings, err := s.logs.Range(ctx, babyID, rv.span.Start, rv.span.End)
	if err != nil {
		return resolved{}, nil, err
	}
	return rv, feedings, nil
}

// Build resolves the window, reads its feedings and clusters each grid day
func (s *Svc) Build(ctx context.Context, babyID, userID string, q domain.Query) (domain.Calendar, error) {
	rv, feedings, err := s.load(ctx, babyID, userID, q)
	if err != nil {
		return domain.Calendar{}, err
	}
	_, anchorMonth, _ := rv.win.Anchor.In(rv.loc).Date()

	cells := calendar.Grid(rv.win, rv.loc)
	days := make([]domain.Day, 0, len(cells))
	for _, cell := range cells {
		days = append(days, domain.Day{
			Date:     cell.Format(time.DateOnly),
			InMonth:  rv.win.View != calendar.ViewMonth || cell.Month() == anchorMonth,
			Clusters: calendar.Cluster(feedings, logs.Log.At, cell, rv.loc),
		})
	}
	return domain.Calendar{
		View:  string(rv.win.View),
		Label: rv.span.Label,
		Start: rv.span.Start,
		End:   rv.span.End,
		Zone:  rv.loc.String(),
		Prev:  calendar.Shift(rv.win, -1, rv.loc).Anchor.Format(time.DateOnly),
		Next:  calendar.Shift(rv.win, 1, rv.loc).Anchor.Format(time.DateOnly),
		Days:  days,
	}, nil
}
