// Package module wires feeding logs into the API using modkit
package module

import (
	"net/http"

	modkit "babyfood/internal/modkit"
	"babyfood/internal/modkit/httpkit"
	"babyfood/internal/modkit/module"
	str "babyfood/internal/platform/strings"
	babies "babyfood/internal/services/api/babies/domain"
	foodlogshttp "babyfood/internal/services/api/foodlogs/http"
	foodlogsrepo "babyfood/internal/services/api/foodlogs/repo"
	foodlogssvc "babyfood/internal/services/api/foodlogs/service"
	foods "babyfood/internal/services/api/foods/domain"
)

// Module implements the foodlogs module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc foodlogssvc.Service
}

// Needs is what the module takes through modkit.WithPorts
type Needs struct {
	Access babies.Access
	Foods  foods.Belongs
}

// New constructs the foodlogs module
func New(deps modkit.Deps, opts ...modkit.Option) module.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("foodlogs"), modkit.WithPrefix("/babies/{babyID}/logs")}, opts...)...)

	needs, ok := b.Ports.(Needs)
	if !ok || needs.Access == nil || needs.Foods == nil {
		panic("foodlogs module requires babies Access and foods Belongs ports")
	}
	svc := foodlogssvc.New(deps.PG, foodlogsrepo.NewPG(), needs.Access, needs.Foods)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = svc

	external := b.Register
	m.register = func(r httpkit.Router) {
		foodlogshttp.Register(r, m.svc)
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

// Ports exposes the Reader
func (m *Module) Ports() any { return m.ports }
