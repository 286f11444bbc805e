// Package requestid bridges chi's request ID into the transport-agnostic
// request context so services can log it without importing net/http.
// Apply after chi's middleware.RequestID.
package requestid

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"aegis/pkg/requestcontext"
)

// Middleware copies the chi-assigned request ID into requestcontext.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := chimiddleware.GetReqID(ctx); id != "" {
			ctx = requestcontext.WithRequestID(ctx, id)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
