package middleware_test

import (
	"compress/flate"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	perr "babyfood/internal/platform/errors"
	pnet "babyfood/internal/platform/net"
	"babyfood/internal/platform/net/middleware"
	kit "babyfood/internal/platform/testkit"
)

type fakeAuthPort struct {
	user string
	err  error
}

func (f fakeAuthPort) Parse(*http.Request) (string, error) { return f.user, f.err }

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestAuth(t *testing.T) {
	cases := []struct {
		name     string
		port     middleware.AuthPort
		wantCode int
		wantUser string
	}{
		{"nil port passes through", nil, http.StatusOK, ""},
		{"port error is written", fakeAuthPort{err: perr.Unauthorizedf("bad token")}, http.StatusUnauthorized, ""},
		{"foreign error is a 500", fakeAuthPort{err: errors.New("boom")}, http.StatusInternalServerError, ""},
		{"user stored on context", fakeAuthPort{user: "u-1"}, http.StatusOK, "u-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = pnet.UserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			rr := httptest.NewRecorder()
			middleware.Auth(tc.port, writeJSON)(next).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

			if rr.Code != tc.wantCode {
				t.Fatalf("code=%d want %d", rr.Code, tc.wantCode)
			}
			if seen != tc.wantUser {
				t.Fatalf("user=%q want %q", seen, tc.wantUser)
			}
		})
	}
}

func TestAccessLog_PassesThrough(t *testing.T) {
	mws := []func(http.Handler) http.Handler{
		middleware.AccessLogZerolog(middleware.AccessLogOptions{}),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Nanosecond}),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Skip: []string{"/x"}}),
	}
	for i, mw := range mws {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, "ok")
		})
		rr := httptest.NewRecorder()
		mw(next).ServeHTTP(rr, httptest.NewRequest("GET", "/x", nil))
		if rr.Code != http.StatusCreated || rr.Body.String() != "ok" {
			t.Fatalf("mw %d: code=%d body=%q", i, rr.Code, rr.Body.String())
		}
	}
}

func TestAccessLog_RequestIDReachesHandler(t *testing.T) {
	var seen string
	h := chimw.RequestID(middleware.AccessLogZerolog(middleware.AccessLogOptions{})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = pnet.RequestID(r.Context())
		}),
	))
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-Id", "rid-42")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "rid-42" {
		t.Fatalf("request id=%q", seen)
	}
}

func TestRecoverJSON(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))
	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(pnet.WithRequestID(req.Context(), "rid-p"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("code=%d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") != "rid-p" {
		t.Fatalf("missing request id header")
	}
	var body pnet.Wire
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Reason != "panic" || body.RequestID != "rid-p" {
		t.Fatalf("body=%+v", body)
	}
	kit.MustNotContain(t, rr.Body.String(), "kaboom")
}

func TestRecoverJSON_AbortHandlerRepanics(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	kit.MustPanic(t, func() { h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil)) })
}

func TestCompress(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = io.WriteString(w, strings.Repeat("a", 4<<10))
	})
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	middleware.Compress(flate.BestSpeed, "text/calendar")(h).ServeHTTP(rr, req)
	if rr.Result().Header.Get("Content-Encoding") == "" {
		t.Fatalf("expected compressed calendar body")
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://app.example"}})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) }),
	)
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("allow-origin=%q", got)
	}
	kit.MustContain(t, rr.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestWrappers_ReturnHandlers(t *testing.T) {
	if middleware.RequestID() == nil ||
		middleware.RealIP() == nil ||
		middleware.Timeout(time.Second) == nil ||
		middleware.NoCache() == nil ||
		middleware.StripSlashes() == nil ||
		middleware.Heartbeat("/healthz") == nil {
		t.Fatal("expected non nil handlers from wrappers")
	}
}
