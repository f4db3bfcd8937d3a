package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/proven-platform/proven/internal/actions"
	"github.com/proven-platform/proven/internal/auth"
	"github.com/proven-platform/proven/internal/authz"
	"github.com/proven-platform/proven/internal/decisions"
	"github.com/proven-platform/proven/internal/documents"
	"github.com/proven-platform/proven/internal/guard"
	"github.com/proven-platform/proven/internal/identity"
	"github.com/proven-platform/proven/internal/issues"
	"github.com/proven-platform/proven/internal/meetings"
	"github.com/proven-platform/proven/internal/nav"
	"github.com/proven-platform/proven/internal/notifications"
	"github.com/proven-platform/proven/internal/observability"
	"github.com/proven-platform/proven/internal/platform/httpx"
	"github.com/proven-platform/proven/internal/projects"
	"github.com/proven-platform/proven/internal/session"
	"github.com/proven-platform/proven/internal/shared"
	"github.com/proven-platform/proven/internal/users"
	"github.com/proven-platform/proven/jobs"
	"github.com/proven-platform/proven/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Store          *session.Store
	Guard          guard.Guard

	AuthHandler          *auth.Handler
	UsersHandler         *users.Handler
	ProjectsHandler      *projects.Handler
	ActionsHandler       *actions.Handler
	DecisionsHandler     *decisions.Handler
	IssuesHandler        *issues.Handler
	MeetingsHandler      *meetings.Handler
	DocumentsHandler     *documents.Handler
	NotificationsHandler *notifications.Handler
	JobHandler           *jobs.Handler

	Metrics *observability.Metrics
}

// shellPaths are the client routes the single-page shell owns. Each one
// serves the same document; the client router takes it from there.
var shellPaths = []string{
	"/dashboard/top-management",
	"/dashboard/project-owner",
	"/dashboard/project-manager",
	"/dashboard/project-officer",
	"/dashboard/admin",
	"/portfolio",
	"/decisions",
	"/issues",
	"/analytics",
	"/actions",
	"/documents",
	"/meetings",
	"/notifications",
	"/user-management",
}

// NewRouter constructs the chi.Router with PROVEN defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	shell := shellHandler(params.Logger, params.CSRFManager)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil || !sess.Authenticated() {
			http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, guard.DashboardPath, http.StatusSeeOther)
	})

	r.Method(http.MethodGet, guard.LoginPath, params.Guard.LoginGate(shell))
	r.Get(guard.DashboardPath, params.Guard.DashboardRedirect(shell))
	for _, path := range shellPaths {
		r.Method(http.MethodGet, path, params.Guard.Protect(shell))
	}

	r.Route("/auth", func(r chi.Router) {
		// Stays outside RequireSession: the login form needs a token
		// before any principal exists. EnsureToken binds it to the
		// visitor's session, so it is useless without that cookie.
		r.Get("/csrf", csrfTokenHandler(params))
		params.AuthHandler.MountRoutes(r)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(params.Guard.RequireSession)

		r.Get("/me", meHandler(params))

		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/projects", params.ProjectsHandler.MountRoutes)
		r.Route("/actions", params.ActionsHandler.MountRoutes)
		r.Route("/decisions", params.DecisionsHandler.MountRoutes)
		r.Route("/issues", params.IssuesHandler.MountRoutes)
		r.Route("/meetings", params.MeetingsHandler.MountRoutes)
		r.Route("/documents", params.DocumentsHandler.MountRoutes)
		r.Route("/notifications", params.NotificationsHandler.MountRoutes)
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// meHandler reports the caller's resolved identity, navigation, landing
// page and permission flags. The flags mirror what the data endpoints
// enforce; the client uses them for affordances only.
func meHandler(params RouterParams) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		ident, loading := params.Store.Snapshot(sess.Principal())

		csrfToken, err := params.CSRFManager.EnsureToken(r.Context(), sess)
		if err != nil {
			params.Logger.Warn("ensure csrf token", slog.Any("error", err))
		}

		body := map[string]any{
			"loading":    loading,
			"identity":   ident,
			"csrf_token": csrfToken,
		}
		if loading {
			httpx.JSON(w, http.StatusOK, body)
			return
		}

		var roleRef *identity.Role
		if ident != nil {
			roleRef = ident.Role
		}
		body["nav"] = nav.Entries(roleRef)
		body["landing"] = nav.LandingPath(roleRef)
		body["permissions"] = map[string]bool{
			"can_create_project": authz.CanCreateProject(roleRef),
			"can_edit_project":   authz.CanEditProject(roleRef),
			"can_create_action":  authz.CanCreateAction(roleRef),
			"can_approve":        authz.CanApprove(roleRef),
			"can_manage_users":   authz.CanManageUsers(roleRef),
		}
		httpx.JSON(w, http.StatusOK, body)
	}
}

// csrfTokenHandler hands the session's CSRF token to clients that are
// not signed in yet. Signed-in clients get the same token from /api/me.
func csrfTokenHandler(params RouterParams) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		token, err := params.CSRFManager.EnsureToken(r.Context(), sess)
		if err != nil {
			params.Logger.Warn("ensure csrf token", slog.Any("error", err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Server Error", "could not issue token")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"csrf_token": token})
	}
}

// staticCacheHandler wraps a file server with Cache-Control headers.
// Static assets are cached for one hour in the browser.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}

// shellHandler serves the single-page document. It also primes the
// session's CSRF token, so a plain GET of /login leaves the visitor
// with both the cookie and a token to submit the form with.
func shellHandler(logger *slog.Logger, csrf *shared.CSRFManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := web.Static.ReadFile("static/index.html")
		if err != nil {
			logger.Error("read shell document", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if sess := shared.SessionFromContext(r.Context()); sess != nil {
			if token, err := csrf.EnsureToken(r.Context(), sess); err == nil {
				w.Header().Set(shared.CSRFHeader, token)
			}
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(data)
	})
}
