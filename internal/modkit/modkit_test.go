package modkit

import (
	"net/http"
	"testing"
	"time"

	phttp "babyfood/internal/platform/net/http"
)

type accessPort interface{ Owner() string }

type ownerIs string

func (o ownerIs) Owner() string { return string(o) }

func TestBuild_Defaults(t *testing.T) {
	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Ports != nil || b.SwaggerOn {
		t.Fatalf("unexpected defaults %+v", b)
	}
	if b.Subrouter == nil || b.Register == nil {
		t.Fatalf("hooks should default to no-ops")
	}
	var r phttp.Router
	if got := b.Subrouter(r); got != nil {
		t.Fatalf("identity subrouter changed router")
	}
	b.Register(nil)
}

func TestBuild_OptionsApplyInOrder(t *testing.T) {
	mw := func(h http.Handler) http.Handler { return h }
	registered := false
	b := Build(
		WithName("foods"),
		WithPrefix("/babies/{babyID}/foods"),
		WithName("foods-v2"),
		WithMiddlewares(mw),
		WithMiddlewares(mw, mw),
		WithPorts[accessPort](ownerIs("u-1")),
		WithSwagger(true),
		WithRegister(func(phttp.Router) { registered = true }),
	)
	if b.Name != "foods-v2" || b.Prefix != "/babies/{babyID}/foods" {
		t.Fatalf("name/prefix = %q %q", b.Name, b.Prefix)
	}
	if len(b.Mw) != 3 || !b.SwaggerOn {
		t.Fatalf("mw=%d swagger=%v", len(b.Mw), b.SwaggerOn)
	}
	p, ok := b.Ports.(accessPort)
	if !ok || p.Owner() != "u-1" {
		t.Fatalf("ports = %#v", b.Ports)
	}
	b.Register(nil)
	if !registered {
		t.Fatalf("register hook not used")
	}
}

func TestDeps_Fallbacks(t *testing.T) {
	var d Deps
	if d.Location() != time.UTC {
		t.Fatalf("zone fallback = %v", d.Location())
	}
	if d.Clock()().IsZero() {
		t.Fatalf("clock fallback returned zero time")
	}

	at := time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)
	loc := time.FixedZone("X", 3600)
	d = Deps{Zone: loc, Now: func() time.Time { return at }}
	if d.Location() != loc || !d.Clock()().Equal(at) {
		t.Fatalf("deps ignored overrides")
	}
}
