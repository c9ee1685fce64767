package guard

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/goalinstitute/admin-console/internal/platform/httpx"
	"github.com/goalinstitute/admin-console/internal/platform/requestctx"
	"github.com/goalinstitute/admin-console/internal/services/admin/session"
)

// NextParam carries the originally requested path through login.
const NextParam = "next"

// ManagerFactory builds the session Manager for one request.
type ManagerFactory func(w http.ResponseWriter, r *http.Request) *session.Manager

// Config wires the middleware.
type Config struct {
	Sessions  ManagerFactory
	LoginPath string
	// Exempt reports paths served without a session check.
	Exempt func(path string) bool
	// Loading renders the placeholder while the session is unsettled.
	Loading http.Handler
}

// Middleware activates a session Manager for every request and gates
// non-exempt paths on it. Exempt paths still get the Manager in context so the
// login page can sign in.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	loginPath := strings.TrimSpace(cfg.LoginPath)
	if loginPath == "" {
		loginPath = "/login"
	}
	loading := cfg.Loading
	if loading == nil {
		loading = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		})
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Sessions == nil {
				http.Error(w, "session unavailable", http.StatusServiceUnavailable)
				return
			}
			manager := cfg.Sessions(w, r)
			defer manager.Close()

			ctx := session.WithManager(r.Context(), manager)
			r = r.WithContext(ctx)

			if cfg.Exempt != nil && cfg.Exempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			var g Guard
			decision := g.Evaluate(ViewOf(manager.Snapshot()))
			unsubscribe := manager.Subscribe(func(snap session.Snapshot) {
				decision = g.Evaluate(ViewOf(snap))
			})
			manager.Init(ctx)
			unsubscribe()

			switch decision.Outcome {
			case OutcomeLoading:
				loading.ServeHTTP(w, r)
			case OutcomeBlank:
				if decision.Redirect {
					httpx.WriteRedirect(w, r, LoginURL(loginPath, r), http.StatusFound)
				}
			case OutcomeRender:
				ctx = requestctx.WithUserID(ctx, decision.User.ID)
				ctx = requestctx.WithBearerToken(ctx, manager.Token())
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}

// LoginURL returns the login path, carrying the current path for GET page
// requests so the visitor lands back where they started.
func LoginURL(loginPath string, r *http.Request) string {
	if r == nil || r.Method != http.MethodGet || httpx.IsHTMXRequest(r) {
		return loginPath
	}
	target := r.URL.Path
	if target == "" || target == "/" {
		return loginPath
	}
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	return loginPath + "?" + url.Values{NextParam: {target}}.Encode()
}

// SafeNext returns next when it is a local absolute path, otherwise fallback.
func SafeNext(next, fallback string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	parsed, err := url.Parse(next)
	if err != nil || parsed.IsAbs() || parsed.Host != "" {
		return fallback
	}
	return next
}

// UserFromContext returns the signed-in profile for the request, if any.
func UserFromContext(r *http.Request) (session.Profile, bool) {
	if r == nil {
		return session.Profile{}, false
	}
	manager := session.ManagerFromContext(r.Context())
	if manager == nil {
		return session.Profile{}, false
	}
	return manager.User()
}
