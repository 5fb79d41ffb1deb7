// Package module wires babies into the API using modkit
package module

import (
	"net/http"

	modkit "babyfood/internal/modkit"
	"babyfood/internal/modkit/httpkit"
	"babyfood/internal/modkit/module"
	str "babyfood/internal/platform/strings"
	babieshttp "babyfood/internal/services/api/babies/http"
	babiesrepo "babyfood/internal/services/api/babies/repo"
	babiessvc "babyfood/internal/services/api/babies/service"
)

// Module implements the babies module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc babiessvc.Service
}

// New constructs the babies module
func New(deps modkit.Deps, opts ...modkit.Option) module.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("babies"), modkit.WithPrefix("/babies")}, opts...)...)

	svc := babiessvc.New(deps.PG, babiesrepo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Access: svc, Zones: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		babieshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes behind auth
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		httpkit.Protected(rr, m.deps.Auth, m.register)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
