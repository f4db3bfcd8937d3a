package authz

import (
	"log/slog"
	"net/http"

	"github.com/proven-platform/proven/internal/identity"
	"github.com/proven-platform/proven/internal/platform/httpx"
	"github.com/proven-platform/proven/internal/session"
	"github.com/proven-platform/proven/internal/shared"
)

// Middleware enforces role checks on API routes. It resolves the
// request's principal through the session store, so an identity still
// loading or resolved without a role is denied.
type Middleware struct {
	Store  *session.Store
	Logger *slog.Logger
}

// Identity returns the resolved identity for the request, or nil.
func (m Middleware) Identity(r *http.Request) *identity.Identity {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || !sess.Authenticated() {
		return nil
	}
	ident, _ := m.Store.Snapshot(sess.Principal())
	return ident
}

// Require admits requests whose resolved role satisfies the predicate.
func (m Middleware) Require(allow func(role *identity.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := m.Identity(r)
			if ident == nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "sign in to continue")
				return
			}
			if !allow(ident.Role) {
				if m.Logger != nil {
					m.Logger.Warn("authorization denied",
						slog.String("principal", ident.ID),
						slog.String("path", r.URL.Path))
				}
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "your role does not permit this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole admits requests whose resolved role is in the allow list.
func (m Middleware) RequireRole(roles ...identity.Role) func(http.Handler) http.Handler {
	return m.Require(func(role *identity.Role) bool {
		return roleIn(role, roles...)
	})
}
