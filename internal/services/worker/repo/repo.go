// Package repo provides the rollup storage: feedings from postgres, feeding_daily in clickhouse
package repo

import (
	"context"
	"fmt"
	"time"

	"babyfood/internal/modkit/repokit"
	perr "babyfood/internal/platform/errors"
	"babyfood/internal/platform/store"
	"babyfood/internal/services/worker/domain"
)

// Table is the clickhouse rollup table
const Table = "feeding_daily"

// NewHybrid returns a binder that reads feedings through the bound Queryer
// and reads and writes feeding_daily through ch
func NewHybrid(ch store.Clickhouse) repokit.Binder[domain.StorageRepo] {
	return &hybridBinder{ch: ch}
}

type hybridBinder struct{ ch store.Clickhouse }

func (b *hybridBinder) Bind(q repokit.Queryer) domain.StorageRepo {
	return &hybridStore{pg: q, ch: b.ch}
}

type hybridStore struct {
	pg repokit.Queryer
	ch store.Clickhouse
}

// the fed_at prefilter keeps the index usable; the local-day filter is exact
const dailyCountsSQL = `
SELECT l.baby_id::text,
       to_char((l.fed_at AT TIME ZONE coalesce(b.time_zone, $3))::date, 'YYYY-MM-DD') AS day,
       count(*),
       count(DISTINCT l.food_item_id)
  FROM food_logs l
  JOIN babies b ON b.id = l.baby_id
 WHERE l.fed_at >= $1::date - interval '2 days'
   AND (l.fed_at AT TIME ZONE coalesce(b.time_zone, $3))::date >= $2::date
 GROUP BY 1, 2
 ORDER BY 1, 2`

func (s *hybridStore) DailyCounts(ctx context.Context, since string, fallback *time.Location) ([]domain.DailyCount, error) {
	if fallback == nil {
		fallback = time.UTC
	}
	out, err := store.Many(ctx, s.pg, func(r store.Row) (domain.DailyCount, error) {
		var d domain.DailyCount
		err := r.Scan(&d.BabyID, &d.Day, &d.Feedings, &d.Foods)
		return d, err
	}, dailyCountsSQL, since, since, fallback.String())
	return out, perr.FromPostgres(err, "daily counts")
}

const knownDaysSQL = `
SELECT baby_id, toString(day), toInt64(feedings), toInt64(foods)
FROM feeding_daily FINAL
WHERE day >= toDate(?) AND feedings > 0
`

func (s *hybridStore) KnownDays(ctx context.Context, since string) ([]domain.DailyCount, error) {
	rows, err := s.ch.Query(ctx, knownDaysSQL, since)
	if err != nil {
		return nil, fmt.Errorf("known days: %w", err)
	}
	defer rows.Close()
	var out []domain.DailyCount
	for rows.Next() {
		var d domain.DailyCount
		if err := rows.Scan(&d.BabyID, &d.Day, &d.Feedings, &d.Foods); err != nil {
			return nil, fmt.Errorf("known days scan: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// SchemaSQL creates the rollup table; FINAL reads collapse rows by highest version
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS feeding_daily (
  baby_id  String,
  day      Date,
  feedings UInt32,
  foods    UInt32,
  version  UInt64
)
ENGINE = ReplacingMergeTree(version)
ORDER BY (baby_id, day)
`

func (s *hybridStore) EnsureSchema(ctx context.Context) error {
	if err := s.ch.Exec(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("ensure %s: %w", Table, err)
	}
	return nil
}

var columns = []string{"baby_id", "day", "feedings", "foods", "version"}

func (s *hybridStore) Write(ctx context.Context, rows []domain.DailyCount, version uint64) error {
	if len(rows) == 0 {
		return nil
	}
	batch := make([][]any, 0, len(rows))
	for _, r := range rows {
		day, err := time.Parse(time.DateOnly, r.Day)
		if err != nil {
			return fmt.Errorf("rollup day %q: %w", r.Day, err)
		}
		batch = append(batch, []any{r.BabyID, day, uint32(r.Feedings), uint32(r.Foods), version})
	}
	if err := s.ch.Insert(ctx, Table, columns, batch); err != nil {
		return fmt.Errorf("insert %s: %w", Table, err)
	}
	return nil
}
