// Package service implements the background jobs: invitation sweep and feeding rollup
package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"babyfood/internal/modkit/repokit"
	"babyfood/internal/platform/logger"
	invites "babyfood/internal/services/api/invites/domain"
	"babyfood/internal/services/worker/domain"
	"babyfood/internal/services/worker/guardrails"
)

// ErrNoAnalytics is returned by Rollup when clickhouse is not configured
var ErrNoAnalytics = errors.New("worker: rollup needs clickhouse")

// Config controls the rollup window and batching
type Config struct {
	// Lookback is how far back each rollup recomputes, default 35 days
	Lookback time.Duration

	// BatchSize caps rows per clickhouse insert, default 5000
	BatchSize int

	// Zone is used for babies without a zone
	Zone *time.Location

	Now func() time.Time
}

// Service wires TxRunner + Binder into the jobs
type Service struct {
	DB      repokit.TxRunner
	Binder  repokit.Binder[domain.StorageRepo] // nil disables Rollup
	Sweeper invites.Sweeper
	Cfg     Config
	Lease   guardrails.LeaseFunc

	schemaReady atomic.Bool
}

var _ domain.RunnerPort = (*Service)(nil)

// New constructs the worker service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[domain.StorageRepo],
	sweeper invites.Sweeper,
	cfg Config,
	lease guardrails.LeaseFunc,
) *Service {
	if db == nil {
		panic("worker.Service requires a non nil TxRunner")
	}
	if sweeper == nil {
		panic("worker.Service requires an invitation Sweeper")
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = 35 * 24 * time.Hour
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 5000
	}
	if cfg.Zone == nil {
		cfg.Zone = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if lease == nil {
		lease = guardrails.NoLease
	}
	return &Service{DB: db, Binder: binder, Sweeper: sweeper, Cfg: cfg, Lease: lease}
}

// Sweep expires lapsed invitations
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	var n int64
	err := s.Lease(ctx, "sweep", func(ctx context.Context) error {
		var err error
		n, err = s.Sweeper.ExpireStale(ctx)
		return err
	})
	if errors.Is(err, guardrails.ErrLeaseHeld) {
		logger.C(ctx).Debug().Str("job", "sweep").Msg("worker: lease held elsewhere; skip")
		return 0, nil
	}
	return n, err
}

// Rollup recomputes feeding_daily for the lookback window
// days that lost all their feedings are rewritten as zero so deletes reach the heatmap
func (s *Service) Rollup(ctx context.Context) (domain.RollupResult, error) {
	if s.Binder == nil {
		return domain.RollupResult{}, ErrNoAnalytics
	}
	var res domain.RollupResult
	err := s.Lease(ctx, "rollup", func(ctx context.Context) error {
		var err error
		res, err = s.rollup(ctx)
		return err
	})
	if errors.Is(err, guardrails.ErrLeaseHeld) {
		logger.C(ctx).Debug().Str("job", "rollup").Msg("worker: lease held elsewhere; skip")
		return domain.RollupResult{}, nil
	}
	return res, err
}

func (s *Service) rollup(ctx context.Context) (domain.RollupResult, error) {
	now := s.Cfg.Now()
	since := now.In(s.Cfg.Zone).Add(-s.Cfg.Lookback).Format(time.DateOnly)
	res := domain.RollupResult{Since: since}

	var fresh, known []domain.DailyCount
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)
		if !s.schemaReady.Load() {
			if err := r.EnsureSchema(ctx); err != nil {
				return err
			}
			s.schemaReady.Store(true)
		}
		var err error
		if fresh, err = r.DailyCounts(ctx, since, s.Cfg.Zone); err != nil {
			return err
		}
		known, err = r.KnownDays(ctx, since)
		return err
	})
	if err != nil {
		return res, err
	}

	rows := withZeroes(fresh, known)
	res.Zeroed = len(rows) - len(fresh)
	version := uint64(now.UnixMilli())

	r := s.Binder.Bind(s.DB)
	for start := 0; start < len(rows); start += s.Cfg.BatchSize {
		end := min(start+s.Cfg.BatchSize, len(rows))
		if err := r.Write(ctx, rows[start:end], version); err != nil {
			return res, err
		}
		res.Rows += end - start
		res.Batches++
	}

	logger.C(ctx).Info().
		Str("since", since).
		Int("rows", res.Rows).
		Int("zeroed", res.Zeroed).
		Int("batches", res.Batches).
		Msg("worker: rollup done")
	return res, nil
}

// withZeroes appends a zero row for every known day missing from fresh
func withZeroes(fresh, known []domain.DailyCount) []domain.DailyCount {
	seen := make(map[string]struct{}, len(fresh))
	for _, d := range fresh {
		seen[d.Key()] = struct{}{}
	}
	out := append([]domain.DailyCount(nil), fresh...)
	for _, d := range known {
		if _, ok := seen[d.Key()]; ok {
			continue
		}
		out = append(out, domain.DailyCount{BabyID: d.BabyID, Day: d.Day})
	}
	return out
}
