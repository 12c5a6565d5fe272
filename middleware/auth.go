package middleware

import (
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/alumnet/portal/services"
	"github.com/alumnet/portal/userctx"
)

// SessionUserKey is the session key holding the authenticated user's ID.
const SessionUserKey = "user_id"

// RequireAuth ensures the user is authenticated. The session carries only the
// user ID; the full record is loaded per request so role changes take effect
// without re-login. Unauthenticated callers are redirected to /login with the
// intended destination remembered.
func RequireAuth(users services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.GetSession(r)
			userID, ok := sess.Get(SessionUserKey).(int)
			if !ok {
				sess.Set("redirect_after_login", r.URL.Path)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				// Stale session, e.g. the account was removed.
				sess.Delete(SessionUserKey)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := userctx.SetUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
