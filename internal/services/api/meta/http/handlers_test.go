package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	phttp "babyfood/internal/platform/net/http"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

var started = time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC)

func serve(t *testing.T, d Deps, path string, out any) {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), d)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("%s status = %d", path, rec.Code)
	}
	env := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestReady(t *testing.T) {
	cases := map[string]struct {
		checks []Check
		want   string
	}{
		"all ok":   {[]Check{{"pg", pinger{}}, {"ch", pinger{}}}, "ok"},
		"skipped":  {[]Check{{"pg", pinger{}}, {"ch", nil}}, "degraded"},
		"pg fails": {[]Check{{"pg", pinger{errors.New("refused")}}, {"ch", nil}}, "fail"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var got ReadyResponse
			serve(t, Deps{ServiceName: "babyfood-api", Checks: tc.checks}, "/ready", &got)
			if got.Status != tc.want || len(got.Checks) != len(tc.checks) {
				t.Fatalf("ready = %+v", got)
			}
		})
	}
}

func TestServiceUptime(t *testing.T) {
	now := func() time.Time { return started.Add(5 * time.Minute) }
	var got ServiceResponse
	serve(t, Deps{ServiceName: "babyfood-api", StartedAt: started, Now: now}, "/service", &got)
	if got.Uptime != 300 || got.Name != "babyfood-api" || got.Started != "2024-03-06T08:00:00Z" {
		t.Fatalf("service = %+v", got)
	}
}

func TestHealthAndVersion(t *testing.T) {
	var h HealthResponse
	serve(t, Deps{ServiceName: "babyfood-api", StartedAt: started}, "/health", &h)
	if !h.OK || h.Service != "babyfood-api" {
		t.Fatalf("health = %+v", h)
	}
	var v struct {
		Service string `json:"service"`
	}
	serve(t, Deps{ServiceName: "babyfood-api"}, "/version", &v)
	if v.Service != "babyfood-api" {
		t.Fatalf("version = %+v", v)
	}
}
