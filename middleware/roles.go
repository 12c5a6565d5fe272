package middleware

import (
	"net/http"

	"github.com/alumnet/portal/models"
	"github.com/alumnet/portal/userctx"
)

// RequireRole allows only users carrying one of the given roles. Denied
// callers are silently redirected to the landing page; the request ends with
// no body. Must run after RequireAuth.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !userctx.HasRole(r.Context(), roles...) {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
