// Package module wires the calendar into the API using modkit
package module

import (
	"net/http"

	modkit "babyfood/internal/modkit"
	"babyfood/internal/modkit/httpkit"
	"babyfood/internal/modkit/module"
	str "babyfood/internal/platform/strings"
	babies "babyfood/internal/services/api/babies/domain"
	calhttp "babyfood/internal/services/api/calendar/http"
	calsvc "babyfood/internal/services/api/calendar/service"
	logs "babyfood/internal/services/api/foodlogs/domain"
)

// Module implements the calendar module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc calsvc.Service
}

// Needs is what the module takes through modkit.WithPorts
type Needs struct {
	Access babies.Access
	Zones  babies.Zones
	Logs   logs.Reader
}

// New constructs the calendar module; it owns no tables
func New(deps modkit.Deps, opts ...modkit.Option) module.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("calendar"), modkit.WithPrefix("/babies/{babyID}/calendar")}, opts...)...)

	needs, ok := b.Ports.(Needs)
	if !ok {
		panic("calendar module requires babies and foodlogs ports")
	}
	svc := calsvc.New(needs.Access, needs.Zones, needs.Logs, deps.Location(), deps.Clock())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		calhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes behind auth and the baby scope
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		httpkit.Protected(rr, m.deps.Auth, func(pr httpkit.Router) {
			pr.Use(httpkit.ScopeBaby)
			m.register(pr)
		})
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports is nil; nothing consumes the calendar
func (m *Module) Ports() any { return m.ports }
