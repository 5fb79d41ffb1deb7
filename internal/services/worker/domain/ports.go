// Package domain defines the worker's ports and rollup types
package domain

import (
	"context"
	"time"
)

// RunnerPort is what the scheduler and the one-shot command call
type RunnerPort interface {
	// Sweep marks pending invitations past expiry as expired
	Sweep(ctx context.Context) (int64, error)

	// Rollup recomputes recent per-day feeding counts into the analytics store
	Rollup(ctx context.Context) (RollupResult, error)
}

// DailyCount is one baby's feedings on one local calendar day
type DailyCount struct {
	BabyID   string
	Day      string // YYYY-MM-DD in the baby's zone
	Feedings int64
	Foods    int64
}

// Key identifies the row a DailyCount replaces
func (d DailyCount) Key() string { return d.BabyID + "/" + d.Day }

// RollupResult summarizes one rollup run
type RollupResult struct {
	Since   string // first local day recomputed
	Rows    int    // rows written, zeroed days included
	Zeroed  int    // days that had counts but no longer have feedings
	Batches int
}

// StorageRepo covers everything the rollup reads and writes
// Postgres holds the feedings; ClickHouse holds feeding_daily
type StorageRepo interface {
	// DailyCounts groups feedings on or after the local day since, each in its baby's zone
	// babies without a zone use fallback
	DailyCounts(ctx context.Context, since string, fallback *time.Location) ([]DailyCount, error)

	// KnownDays lists rollup rows on or after since with non-zero feedings
	KnownDays(ctx context.Context, since string) ([]DailyCount, error)

	// EnsureSchema creates feeding_daily when missing
	EnsureSchema(ctx context.Context) error

	// Write inserts rows stamped with version; newer versions replace older ones on merge
	Write(ctx context.Context, rows []DailyCount, version uint64) error
}
