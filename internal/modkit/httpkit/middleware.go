package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "babyfood/internal/platform/net/http"
	"babyfood/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORS    middleware.CORSOptions
	Timeout time.Duration // default 30s
	Slow    time.Duration // default 500ms
}

// CommonStack is the middleware every API route runs behind
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Slow <= 0 {
		o.Slow = 500 * time.Millisecond
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow, Skip: []string{"/api/v1/meta/health"}}),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed, "text/calendar"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}

// Protected groups routes behind bearer auth; the caller becomes the store actor
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p), actor)
		fn(gr)
	})
}
