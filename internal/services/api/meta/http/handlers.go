// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"babyfood/internal/core/version"
	"babyfood/internal/modkit/httpkit"
	"babyfood/internal/platform/store"
)

// Check names one backend the readiness probe pings; a nil Pinger is reported as skipped
type Check struct {
	Name   string
	Pinger store.Pinger
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Checks      []Check
	Now         func() time.Time

	// ReadyTimeout bounds the whole probe, default 2s
	ReadyTimeout time.Duration
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := &handlers{deps: d}

	r.Get("/health", httpkit.Call(h.health))
	r.Get("/ready", httpkit.Call(h.ready))
	r.Get("/version", httpkit.Call(h.version))
	r.Get("/service", httpkit.Call(h.service))
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok" example:"true"`
	Service string `json:"service" example:"babyfood-api"`
	Started string `json:"started" example:"2024-03-06T08:00:00Z"`
	Now     string `json:"now" example:"2024-03-06T08:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name" example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now" example:"2024-03-06T08:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name" example:"babyfood-api"`
	Started string `json:"started" example:"2024-03-06T08:00:00Z"`
	Uptime  int64  `json:"uptime" example:"300"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.deps.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.deps.ReadyTimeout)
	defer cancel()

	checks := make([]ReadyCheck, 0, len(h.deps.Checks))
	overall := "ok"
	for _, c := range h.deps.Checks {
		rc := ReadyCheck{Name: c.Name, Status: "ok"}
		switch {
		case c.Pinger == nil:
			rc.Status = "skipped"
			if overall == "ok" {
				overall = "degraded"
			}
		default:
			if err := c.Pinger.Ping(ctx); err != nil {
				rc.Status, rc.Error = "fail", err.Error()
				overall = "fail"
			}
		}
		checks = append(checks, rc)
	}

	return ReadyResponse{
		Status: overall,
		Checks: checks,
		Now:    h.deps.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(h.deps.Now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}
