package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/innovatech/hr-portal/internal/shared"
)

// Guard wires the session and role checks for HTTP handlers. Authentication
// must be mounted before authorization: RequireRole assumes RequireSession
// already ran.
type Guard struct {
	Identity *Identity
	Logger   *slog.Logger
}

// RequireSession redirects to the login-initiation endpoint when the session
// carries no access token. Presence is the only check here; the token is
// verified wherever claims are actually consulted.
func (g Guard) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil || sess.Get(SessionKeyAccessToken) == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole responds 403 Forbidden unless the session's verified token
// carries at least one of the required realm roles.
func (g Guard) RequireRole(roles ...string) func(http.Handler) http.Handler {
	required := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		role = strings.TrimSpace(role)
		if role != "" {
			required[role] = struct{}{}
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(required) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			sess := shared.SessionFromContext(r.Context())
			for _, held := range g.Identity.Roles(sess) {
				if _, ok := required[held]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}
			if g.Logger != nil {
				g.Logger.Warn("role check rejected request", slog.String("path", r.URL.Path))
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}
