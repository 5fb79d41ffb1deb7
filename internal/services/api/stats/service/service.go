// Package service implements feeding statistics
package service

import (
	"context"
	"time"

	"babyfood/internal/modkit/repokit"
	perr "babyfood/internal/platform/errors"
	ptime "babyfood/internal/platform/time"
	babies "babyfood/internal/services/api/babies/domain"
	"babyfood/internal/services/api/stats/domain"
	"babyfood/internal/services/api/stats/repo"
)

// MaxHeatmapDays bounds a single heatmap read
const MaxHeatmapDays = 366

// Service is the stats service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	Repo   repo.Repo
	CH     repo.Analytics
	access babies.Access
	now    func() time.Time
}

// New constructs the service; a nil ch disables the heatmap
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], ch repo.Analytics, access babies.Access, now func() time.Time) *Svc {
	if db == nil {
		panic("stats.Service requires a non nil TxRunner")
	}
	if now == nil {
		now = time.Now
	}
	return &Svc{Repo: binder.Bind(db), CH: ch, access: access, now: now}
}

var _ Service = (*Svc)(nil)

// Foods ranks the library by times fed
func (s *Svc) Foods(ctx context.Context, babyID, userID string, in domain.FoodsInput) ([]domain.FoodStat, error) {
	if _, err := s.access.Require(ctx, babyID, userID, babies.RoleMember); err != nil {
		return nil, err
	}
	out, err := s.Repo.FoodStats(ctx, babyID, in)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range out {
		out[i].DaysSinceLastFed = ptime.DaysSince(out[i].LastFedAt, now)
	}
	return out, nil
}

// Heatmap returns one cell per day in [start, end], zero-filled where nothing was logged
func (s *Svc) Heatmap(ctx context.Context, babyID, userID string, in domain.HeatmapInput) ([]domain.HeatCell, error) {
	if _, err := s.access.Require(ctx, babyID, userID, babies.RoleMember); err != nil {
		return nil, err
	}
	if s.CH == nil {
		return nil, perr.Unavailablef("analytics store is not configured")
	}
	start, err := ptime.ParseDate(in.Start, time.UTC)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("start must be a date formatted YYYY-MM-DD"), "start")
	}
	end, err := ptime.ParseDate(in.End, time.UTC)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("end must be a date formatted YYYY-MM-DD"), "end")
	}
	if end.Before(start) {
		return nil, perr.WithField(perr.InvalidArgf("end must not be before start"), "end")
	}
	if int(end.Sub(start).Hours()/24)+1 > MaxHeatmapDays {
		return nil, perr.WithField(perr.InvalidArgf("range must not exceed %d days", MaxHeatmapDays), "end")
	}

	rows, err := s.CH.Heatmap(ctx, babyID, in.Start, in.End)
	if err != nil {
		return nil, err
	}
	return densify(rows, start, end), nil
}

func densify(rows []domain.HeatCell, start, end time.Time) []domain.HeatCell {
	byDay := make(map[string]domain.HeatCell, len(rows))
	for _, r := range rows {
		byDay[r.Day] = r
	}
	var out []domain.HeatCell
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		c, ok := byDay[key]
		if !ok {
			c = domain.HeatCell{Day: key}
		}
		out = append(out, c)
	}
	return out
}
