// Package module wires invitations into the API using modkit
package module

import (
	"net/http"
	"time"

	modkit "babyfood/internal/modkit"
	"babyfood/internal/modkit/httpkit"
	"babyfood/internal/modkit/module"
	str "babyfood/internal/platform/strings"
	babies "babyfood/internal/services/api/babies/domain"
	inviteshttp "babyfood/internal/services/api/invites/http"
	invitesrepo "babyfood/internal/services/api/invites/repo"
	invitessvc "babyfood/internal/services/api/invites/service"
)

// Module implements the invites module
// it owns two trees: the baby-scoped owner routes and the token routes
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc invitessvc.Service
}

// New constructs the invites module; WithPorts must carry babies Access
func New(deps modkit.Deps, opts ...modkit.Option) module.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("invites"), modkit.WithPrefix("/invitations")}, opts...)...)

	access, ok := b.Ports.(babies.Access)
	if !ok {
		panic("invites module requires babies Access port")
	}
	svc := invitessvc.New(deps.PG, invitesrepo.NewPG(), access, invitessvc.Options{
		PublicURL: deps.Cfg.MayString("PUBLIC_URL", "http://localhost:3000"),
		TTL:       deps.Cfg.MayDuration("INVITE_TTL", 7*24*time.Hour),
		Now:       deps.Clock(),
	})

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
		inviteshttp.RegisterToken(r, m.svc, m.deps.Auth)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the token routes at the prefix and the owner routes under the baby
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		m.register(rr)
	})
	r.Route("/babies/{"+httpkit.BabyParam+"}"+m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		httpkit.Protected(rr, m.deps.Auth, func(pr httpkit.Router) {
			inviteshttp.RegisterBaby(pr, m.svc)
		})
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports exposes the Sweeper
func (m *Module) Ports() any { return m.ports }
