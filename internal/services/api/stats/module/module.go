// Package module wires feeding statistics into the API using modkit
package module

import (
	"net/http"

	modkit "babyfood/internal/modkit"
	"babyfood/internal/modkit/httpkit"
	"babyfood/internal/modkit/module"
	str "babyfood/internal/platform/strings"
	babies "babyfood/internal/services/api/babies/domain"
	statshttp "babyfood/internal/services/api/stats/http"
	statsrepo "babyfood/internal/services/api/stats/repo"
	statssvc "babyfood/internal/services/api/stats/service"
)

// Module implements the stats module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc statssvc.Service
}

// New constructs the stats module; WithPorts must carry babies Access
// the heatmap answers 503 when deps.CH is nil
func New(deps modkit.Deps, opts ...modkit.Option) module.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("stats"), modkit.WithPrefix("/babies/{babyID}/stats")}, opts...)...)

	access, ok := b.Ports.(babies.Access)
	if !ok {
		panic("stats module requires babies Access port")
	}
	svc := statssvc.New(deps.PG, statsrepo.NewPG(), statsrepo.NewCH(deps.CH), access, deps.Clock())

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
		statshttp.Register(r, m.svc)
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

// Ports returns nil; stats exposes nothing to other modules
func (m *Module) Ports() any { return nil }
