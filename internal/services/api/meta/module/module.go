// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "babyfood/internal/modkit"
	"babyfood/internal/modkit/httpkit"
	"babyfood/internal/modkit/module"
	"babyfood/internal/platform/store"
	str "babyfood/internal/platform/strings"

	metahttp "babyfood/internal/services/api/meta/http"
)

// ServiceName is reported by the health, version and service endpoints
const ServiceName = "babyfood-api"

// Needs carries the backends the readiness probe pings; nil entries are reported as skipped
type Needs struct {
	PG store.Pinger
	CH store.Pinger
}

// Module implements the module.Module interface
type Module struct {
	deps      modkit.Deps
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	startedAt time.Time
}

// New constructs a meta module; WithPorts may carry Needs
func New(deps modkit.Deps, opts ...modkit.Option) module.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	needs, _ := b.Ports.(Needs)
	now := deps.Clock()

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		startedAt: now(),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   m.startedAt,
			Now:         now,
			Checks: []metahttp.Check{
				{Name: "pg", Pinger: needs.PG},
				{Name: "ch", Pinger: needs.CH},
			},
		})
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes mounts the public meta routes
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns nil; meta exposes nothing to other modules
func (m *Module) Ports() any { return nil }
