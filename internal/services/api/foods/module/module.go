// Package module wires the food library into the API using modkit
package module

import (
	"net/http"

	modkit "babyfood/internal/modkit"
	"babyfood/internal/modkit/httpkit"
	"babyfood/internal/modkit/module"
	str "babyfood/internal/platform/strings"
	babies "babyfood/internal/services/api/babies/domain"
	foodshttp "babyfood/internal/services/api/foods/http"
	foodsrepo "babyfood/internal/services/api/foods/repo"
	foodssvc "babyfood/internal/services/api/foods/service"
)

// Module implements the foods module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc foodssvc.Service
}

// New constructs the foods module; WithPorts must carry babies Access
func New(deps modkit.Deps, opts ...modkit.Option) module.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("foods"), modkit.WithPrefix("/babies/{babyID}/foods")}, opts...)...)

	access, ok := b.Ports.(babies.Access)
	if !ok {
		panic("foods module requires babies Access port")
	}
	svc := foodssvc.New(deps.PG, foodsrepo.NewPG(), access, deps.Clock())

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
		foodshttp.Register(r, m.svc)
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

// Ports exposes Belongs
func (m *Module) Ports() any { return m.ports }
