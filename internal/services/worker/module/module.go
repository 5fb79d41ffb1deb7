// Package module wires the background jobs into a cron scheduler
package module

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"

	"babyfood/internal/modkit"
	"babyfood/internal/modkit/httpkit"
	"babyfood/internal/platform/logger"

	invrepo "babyfood/internal/services/api/invites/repo"
	invsvc "babyfood/internal/services/api/invites/service"
	wdom "babyfood/internal/services/worker/domain"
	"babyfood/internal/services/worker/guardrails"
	wrepo "babyfood/internal/services/worker/repo"
	wsvc "babyfood/internal/services/worker/service"
)

// Ports exported by the worker module
type Ports struct {
	Runner wdom.RunnerPort
}

// Module implements module.Module for the worker; it has no routes
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
	log   *logger.Logger
}

// New constructs and wires the worker module
func New(deps modkit.Deps, opts Options) *Module {
	// the sweep never checks membership, so invites gets no Access port
	sweeper := invsvc.New(deps.PG, invrepo.NewPG(), nil, invsvc.Options{Now: deps.Clock()})

	var binder = wrepo.NewHybrid(deps.CH)
	if deps.CH == nil {
		binder = nil
	}
	lease := guardrails.NoLease
	if opts.EnableLeases {
		lease = guardrails.AdvisoryLease(deps.PG)
	}

	svc := wsvc.New(deps.PG, binder, sweeper, wsvc.Config{
		Lookback:  opts.Lookback,
		BatchSize: opts.BatchSize,
		Zone:      deps.Location(),
		Now:       deps.Clock(),
	}, lease)

	return &Module{
		deps:  deps,
		opts:  opts,
		ports: Ports{Runner: svc},
		log:   logger.Named("worker"),
	}
}

// Name returns the module name
func (m *Module) Name() string { return "worker" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op: the worker has no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}

// Schedule builds the cron scheduler in the fallback zone; overlapping runs of a job are skipped
// rollup is left out when clickhouse is not configured
func (m *Module) Schedule(ctx context.Context) (*cron.Cron, error) {
	cl := cronLogger{l: m.log}
	c := cron.New(
		cron.WithLocation(m.deps.Location()),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	if _, err := c.AddFunc(m.opts.SweepCron, func() { m.RunOnce(ctx, "sweep") }); err != nil {
		return nil, fmt.Errorf("sweep schedule %q: %w", m.opts.SweepCron, err)
	}
	if m.deps.CH != nil {
		if _, err := c.AddFunc(m.opts.RollupCron, func() { m.RunOnce(ctx, "rollup") }); err != nil {
			return nil, fmt.Errorf("rollup schedule %q: %w", m.opts.RollupCron, err)
		}
	} else {
		m.log.Warn().Msg("clickhouse not configured; rollup disabled")
	}
	return c, nil
}

// ErrUnknownJob is returned by RunOnce for names other than sweep and rollup
var ErrUnknownJob = errors.New("worker: unknown job")

// RunOnce runs one job now and logs its outcome
func (m *Module) RunOnce(ctx context.Context, job string) error {
	l := m.log.With().Str("job", job).Logger()
	switch job {
	case "sweep":
		n, err := m.ports.Runner.Sweep(ctx)
		if err != nil {
			l.Error().Err(err).Msg("sweep failed")
			return err
		}
		l.Info().Int64("expired", n).Msg("sweep done")
	case "rollup":
		res, err := m.ports.Runner.Rollup(ctx)
		if err != nil {
			l.Error().Err(err).Msg("rollup failed")
			return err
		}
		l.Debug().Interface("result", res).Msg("rollup done")
	default:
		return fmt.Errorf("%w %q", ErrUnknownJob, job)
	}
	return nil
}

// Run schedules the jobs and blocks until ctx is cancelled, then waits for running jobs
func (m *Module) Run(ctx context.Context) error {
	c, err := m.Schedule(ctx)
	if err != nil {
		return err
	}
	c.Start()
	m.log.Info().Str("sweep", m.opts.SweepCron).Str("rollup", m.opts.RollupCron).
		Str("zone", m.deps.Location().String()).Msg("worker started")
	<-ctx.Done()
	<-c.Stop().Done()
	m.log.Info().Msg("worker stopped")
	return nil
}
