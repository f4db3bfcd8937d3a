// Package guard gates the application shell. It is a client-visible
// routing state machine only: the data layer enforces its own checks
// through the authz middleware, and nothing here substitutes for them.
package guard

import (
	"log/slog"
	"net/http"

	"github.com/proven-platform/proven/internal/nav"
	"github.com/proven-platform/proven/internal/platform/httpx"
	"github.com/proven-platform/proven/internal/session"
	"github.com/proven-platform/proven/internal/shared"
)

const (
	// LoginPath is where unauthenticated shell requests are sent.
	LoginPath = "/login"
	// DashboardPath is the authenticated root.
	DashboardPath = "/dashboard"
)

// Guard wires the session store into routing decisions.
type Guard struct {
	Store  *session.Store
	Logger *slog.Logger
}

// Protect admits authenticated shell requests and redirects everyone
// else to the login page.
func (g Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil || !sess.Authenticated() {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginGate wraps the login page: a principal that is already signed in
// is sent to the dashboard instead of being shown the login form again.
func (g Guard) LoginGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess != nil && sess.Authenticated() {
			http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSession is the API rendition of Protect: a problem response
// instead of a redirect.
func (g Guard) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil || !sess.Authenticated() {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "sign in to continue")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DashboardRedirect sends the dashboard root to the role-specific
// landing page. While the identity is still resolving no navigation
// decision is made: the generic shell renders a neutral loading state.
// A null or unmapped role also stays on the generic dashboard.
func (g Guard) DashboardRedirect(shell http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil || !sess.Authenticated() {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		ident, loading := g.Store.Snapshot(sess.Principal())
		if loading {
			shell.ServeHTTP(w, r)
			return
		}
		var landing string
		if ident == nil {
			landing = DashboardPath
		} else {
			landing = nav.LandingPath(ident.Role)
		}
		if landing == DashboardPath {
			shell.ServeHTTP(w, r)
			return
		}
		http.Redirect(w, r, landing, http.StatusSeeOther)
	}
}
