package httpkit

import (
	"net/http"

	pnet "babyfood/internal/platform/net"
	phttp "babyfood/internal/platform/net/http"
	"babyfood/internal/platform/store"
)

// BabyParam is the path parameter every baby-scoped route carries
const BabyParam = "babyID"

// ScopeBaby validates {babyID} and tags the request context with it
func ScopeBaby(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := UUIDParam(r, BabyParam)
		if err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(pnet.WithBaby(r.Context(), id)))
	})
}

// Baby returns the baby id set by ScopeBaby
func Baby(r *http.Request) string { return pnet.BabyID(r.Context()) }

// actor copies the authenticated user into the store context so transactions are tagged with it
func actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := store.WithActor(r.Context(), pnet.UserID(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
