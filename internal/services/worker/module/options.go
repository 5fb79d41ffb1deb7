package module

import (
	"time"

	"babyfood/internal/platform/config"
)

// Options for the worker module
type Options struct {
	SweepCron  string
	RollupCron string
	Lookback   time.Duration
	BatchSize  int

	// EnableLeases takes a postgres advisory lock per job so replicas do not overlap
	EnableLeases bool
}

// FromConfig fills options from WORKER_* below cfg
// WORKER_SWEEP_CRON (default "@every 15m") schedules the invitation sweep
// WORKER_ROLLUP_CRON (default "@every 5m") schedules the feeding rollup
// WORKER_ROLLUP_LOOKBACK (default 840h, 35 days) is the recomputed window
// WORKER_ROLLUP_BATCH (default 5000) caps rows per clickhouse insert
// WORKER_LEASES (default true) enables the advisory lock around each job
func FromConfig(cfg config.Conf) Options {
	w := cfg.Prefix("WORKER_")
	return Options{
		SweepCron:    w.MayCron("SWEEP_CRON", "@every 15m"),
		RollupCron:   w.MayCron("ROLLUP_CRON", "@every 5m"),
		Lookback:     w.MayDuration("ROLLUP_LOOKBACK", 35*24*time.Hour),
		BatchSize:    w.MayInt("ROLLUP_BATCH", 5000),
		EnableLeases: w.MayBool("LEASES", true),
	}
}
