// Package repo provides postgres and clickhouse access for stats
package repo

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"babyfood/internal/modkit/repokit"
	perr "babyfood/internal/platform/errors"
	"babyfood/internal/platform/store"
	logs "babyfood/internal/services/api/foodlogs/domain"
	"babyfood/internal/services/api/stats/domain"
)

// Repo is the postgres surface for stats
type Repo interface {
	FoodStats(ctx context.Context, babyID string, in domain.FoodsInput) ([]domain.FoodStat, error)
}

// Analytics is the clickhouse surface for stats
type Analytics interface {
	Heatmap(ctx context.Context, babyID, start, end string) ([]domain.HeatCell, error)
}

type (
	// PG binds Repo to a Queryer
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

var _ Repo = (*queries)(nil)

// NewPG returns the postgres binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const latestReaction = `left join lateral (
  select x.reaction from food_logs x
  where x.food_item_id = f.id
  order by x.fed_at desc, x.id desc
  limit 1
) last on true`

func (r *queries) FoodStats(ctx context.Context, babyID string, in domain.FoodsInput) ([]domain.FoodStat, error) {
	out, err := repokit.Many(ctx, r.q, foodStatsQuery(babyID, in), func(row store.Row) (domain.FoodStat, error) {
		var s domain.FoodStat
		var last *time.Time
		var reaction *string
		err := row.Scan(&s.ID, &s.Name, &s.Categories, &s.StatsDismissed, &s.TimesFed, &last, &reaction)
		s.LastFedAt = last
		if reaction != nil {
			rx := logs.Reaction(*reaction)
			s.LastReaction = &rx
		}
		return s, err
	})
	return out, perr.FromPostgres(err, "food stats")
}

func foodStatsQuery(babyID string, in domain.FoodsInput) squirrel.SelectBuilder {
	b := repokit.SQL.
		Select(
			"f.id::text", "f.name", "f.category", "f.stats_dismissed",
			"count(l.id)", "max(l.fed_at)", "last.reaction",
		).
		From("food_items f").
		LeftJoin("food_logs l on l.food_item_id = f.id").
		JoinClause(latestReaction).
		Where(repokit.Eq{"f.baby_id": babyID}).
		GroupBy("f.id", "last.reaction").
		OrderBy("count(l.id) desc", "lower(f.name)")
	if !in.IncludeDismissed {
		b = b.Where(repokit.Eq{"f.stats_dismissed": false})
	}
	if len(in.Reactions) > 0 {
		b = b.Where(latestIn(in.Reactions))
	}
	return b
}

// latestIn matches any of rs against the latest reaction; NoReaction also matches foods never fed
func latestIn(rs []logs.Reaction) squirrel.Sqlizer {
	var named []string
	or := squirrel.Or{}
	for _, r := range rs {
		if r == logs.NoReaction {
			or = append(or, squirrel.Eq{"last.reaction": nil})
			continue
		}
		named = append(named, string(r))
	}
	if len(named) > 0 {
		or = append(or, squirrel.Eq{"last.reaction": named})
	}
	return or
}

// CH reads the daily rollup the worker maintains
type CH struct{ c store.Clickhouse }

// NewCH returns nil when clickhouse is not configured
func NewCH(c store.Clickhouse) Analytics {
	if c == nil {
		return nil
	}
	return &CH{c: c}
}

const heatmapSQL = `
SELECT toString(day), toInt64(feedings), toInt64(foods)
FROM feeding_daily FINAL
WHERE baby_id = ? AND day >= toDate(?) AND day <= toDate(?)
ORDER BY day
`

// Heatmap returns the days with activity; quiet days are absent
func (r *CH) Heatmap(ctx context.Context, babyID, start, end string) ([]domain.HeatCell, error) {
	rows, err := r.c.Query(ctx, heatmapSQL, babyID, start, end)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "heatmap query")
	}
	defer rows.Close()
	out := []domain.HeatCell{}
	for rows.Next() {
		var c domain.HeatCell
		if err := rows.Scan(&c.Day, &c.Feedings, &c.Foods); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "heatmap scan")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "heatmap rows")
	}
	return out, nil
}
