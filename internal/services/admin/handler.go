package admin

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/goalinstitute/admin-console/internal/platform/assets/cdnupload"
	"github.com/goalinstitute/admin-console/internal/platform/assets/imagecdn"
	"github.com/goalinstitute/admin-console/internal/platform/debounce"
	"github.com/goalinstitute/admin-console/internal/platform/httpx"
	"github.com/goalinstitute/admin-console/internal/platform/pagination"
	"github.com/goalinstitute/admin-console/internal/platform/requestctx"
	"github.com/goalinstitute/admin-console/internal/platform/requestmeta"
	"github.com/goalinstitute/admin-console/internal/services/admin/apiclient"
	"github.com/goalinstitute/admin-console/internal/services/admin/flash"
	"github.com/goalinstitute/admin-console/internal/services/admin/guard"
	"github.com/goalinstitute/admin-console/internal/services/admin/i18n"
	assetsmodule "github.com/goalinstitute/admin-console/internal/services/admin/module/assets"
	authmodule "github.com/goalinstitute/admin-console/internal/services/admin/module/auth"
	dashboardmodule "github.com/goalinstitute/admin-console/internal/services/admin/module/dashboard"
	formsmodule "github.com/goalinstitute/admin-console/internal/services/admin/module/forms"
	"github.com/goalinstitute/admin-console/internal/services/admin/routepath"
	"github.com/goalinstitute/admin-console/internal/services/admin/session"
	"github.com/goalinstitute/admin-console/internal/services/admin/templates"
	"github.com/goalinstitute/admin-console/internal/services/admin/transport/httpmux"
)

const (
	// defaultPageSize is the number of submissions per list page.
	defaultPageSize = 20
	// defaultSearchDebounce is the live-search quiet period.
	defaultSearchDebounce = 300 * time.Millisecond
	// searchTriggerName is the htmx trigger name sent by the search box.
	searchTriggerName = "search"
)

// maxPageSize bounds the ?limit= a list request may ask for.
const maxPageSize = 100

// Backend is the admin API consumed by handlers.
type Backend interface {
	session.Authenticator
	DashboardStats(ctx context.Context) apiclient.Result[apiclient.Stats]
	RecentActivity(ctx context.Context) apiclient.Result[[]apiclient.Activity]
	ListSubmissions(ctx context.Context, resource string, q apiclient.PageQuery) apiclient.Result[apiclient.SubmissionPage]
	GetSubmission(ctx context.Context, resource, id string) apiclient.Result[apiclient.Submission]
	DeleteSubmission(ctx context.Context, resource, id string) apiclient.Result[struct{}]
}

// AssetUploader stores validated images.
type AssetUploader interface {
	Upload(ctx context.Context, filename string, data []byte, c cdnupload.Constraints) (cdnupload.Asset, error)
}

// HandlerConfig wires the handler's collaborators.
type HandlerConfig struct {
	Backend  Backend
	Sessions guard.ManagerFactory
	// Uploader is nil when asset uploads are not configured.
	Uploader AssetUploader
	// PreviewCDN resolves thumbnails for uploaded assets when set.
	PreviewCDN *imagecdn.CDN
	StaticFS   fs.FS

	// PageSize is the default number of submissions per list page.
	PageSize       int
	SearchDebounce time.Duration
	LoginInterval  time.Duration
	LoginBurst     int
	CookieSecure   bool
	SchemePolicy   requestmeta.SchemePolicy

	DemoEmail    string
	DemoPassword string
	ChatbotURL   string
	Now          func() time.Time
}

// Handler routes admin console requests.
type Handler struct {
	backend      Backend
	uploader     AssetUploader
	previewCDN   *imagecdn.CDN
	debouncer    *debounce.Debouncer
	flash        flash.Writer
	loginLimiter *httpx.ClientLimiter
	pageSizes    pagination.PageSizeConfig

	demoEmail    string
	demoPassword string
	chatbotURL   string
	now          func() time.Time

	root http.Handler
}

// NewHandler builds the HTTP handler for the admin console.
func NewHandler(cfg HandlerConfig) *Handler {
	delay := cfg.SearchDebounce
	if delay <= 0 {
		delay = defaultSearchDebounce
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	h := &Handler{
		backend:      cfg.Backend,
		uploader:     cfg.Uploader,
		previewCDN:   cfg.PreviewCDN,
		debouncer:    debounce.New(delay),
		flash:        flash.Writer{Secure: cfg.CookieSecure},
		loginLimiter: httpx.NewClientLimiter(cfg.LoginInterval, cfg.LoginBurst),
		pageSizes:    pagination.PageSizeConfig{Default: pageSize, Max: maxPageSize},
		demoEmail:    strings.TrimSpace(cfg.DemoEmail),
		demoPassword: cfg.DemoPassword,
		chatbotURL:   strings.TrimSpace(cfg.ChatbotURL),
		now:          now,
	}
	h.root = h.routes(cfg)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.root.ServeHTTP(w, r)
}

// Close cancels pending debounced searches.
func (h *Handler) Close() {
	if h != nil && h.debouncer != nil {
		h.debouncer.Stop()
	}
}

// routes wires the HTTP routes for the admin handler.
func (h *Handler) routes(cfg HandlerConfig) http.Handler {
	adminMux := http.NewServeMux()
	dashboardmodule.RegisterRoutes(adminMux, h)
	authmodule.RegisterRoutes(adminMux, h)
	formsmodule.RegisterRoutes(adminMux, h)
	assetsmodule.RegisterRoutes(adminMux, h)

	guarded := httpx.Chain(adminMux,
		requestmeta.RequireSameOrigin(cfg.SchemePolicy, http.HandlerFunc(h.handleForbidden)),
		onlyPath(routepath.Login, httpx.RateLimit(h.loginLimiter, http.HandlerFunc(h.handleLoginRateLimited), http.MethodPost)),
		guard.Middleware(guard.Config{
			Sessions:  cfg.Sessions,
			LoginPath: routepath.Login,
			Exempt:    exemptFromGuard,
			Loading:   http.HandlerFunc(h.handleLoading),
		}),
	)

	rootMux := http.NewServeMux()
	httpmux.MountStatic(rootMux, cfg.StaticFS, withStaticCache)
	httpmux.MountAdminRoutes(rootMux, guarded)

	return httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.Trace(nil),
	)
}

// exemptFromGuard lists paths served without an authenticated session.
func exemptFromGuard(path string) bool {
	return path == routepath.Login || path == routepath.Logout
}

// onlyPath applies mw to requests for path and passes others straight through.
func onlyPath(path string, mw httpx.Middleware) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		wrapped := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == path {
				wrapped.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withStaticCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, language.Tag) {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return i18n.Printer(tag), tag
}

// pageContext builds the layout context, consuming any pending flash notice.
func (h *Handler) pageContext(w http.ResponseWriter, r *http.Request) templates.PageContext {
	loc, tag := h.localizer(w, r)
	page := templates.PageContext{
		Lang:        tag.String(),
		Loc:         loc,
		CurrentPath: r.URL.Path,
	}
	if user, ok := guard.UserFromContext(r); ok {
		page.User = &user
	}
	if notice, ok := h.flash.ReadAndClear(w, r); ok {
		page.Notice = &notice
	}
	page.Nav = h.navigation(loc, r.URL.Path)
	return page
}

// fragmentContext is the page context for partial responses. Flash notices
// stay queued for the next full page.
func (h *Handler) fragmentContext(w http.ResponseWriter, r *http.Request) templates.PageContext {
	loc, tag := h.localizer(w, r)
	return templates.PageContext{Lang: tag.String(), Loc: loc, CurrentPath: r.URL.Path}
}

func (h *Handler) navigation(loc *message.Printer, current string) []templates.NavLink {
	links := []templates.NavLink{{
		Label:  templates.T(loc, "nav.dashboard"),
		URL:    routepath.Root,
		Active: current == routepath.Root,
	}}
	for _, kind := range formKinds {
		url := routepath.Form(kind.slug)
		links = append(links, templates.NavLink{
			Label:  templates.T(loc, kind.navKey),
			URL:    url,
			Active: current == url || strings.HasPrefix(current, url+"/"),
		})
	}
	links = append(links, templates.NavLink{
		Label:          templates.T(loc, "nav.assets"),
		URL:            routepath.Assets,
		Active:         current == routepath.Assets,
		SuperAdminOnly: true,
	})
	if h.chatbotURL != "" {
		links = append(links, templates.NavLink{
			Label:          templates.T(loc, "nav.chatbot"),
			URL:            h.chatbotURL,
			SuperAdminOnly: true,
			External:       true,
		})
	}
	return links
}

// handleUnauthorized ends a session the backend no longer accepts and sends
// the browser to sign in.
func (h *Handler) handleUnauthorized(w http.ResponseWriter, r *http.Request) {
	if manager := session.ManagerFromContext(r.Context()); manager != nil {
		_ = manager.Logout(r.Context())
	}
	httpx.WriteRedirect(w, r, guard.LoginURL(routepath.Login, r), http.StatusFound)
}

func (h *Handler) handleLoading(w http.ResponseWriter, r *http.Request) {
	page := h.pageContext(w, r)
	templates.Render(w, r, templates.LoadingPage(page), "", http.StatusOK)
}

func (h *Handler) handleForbidden(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.localizer(w, r)
	http.Error(w, templates.T(loc, "error.forbidden"), http.StatusForbidden)
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	page := h.pageContext(w, r)
	title := templates.T(page.Loc, "error.not_found")
	templates.Render(w, r, templates.Layout(page, title, nil), templates.PageTitle(page.Loc, title), http.StatusNotFound)
}

func (h *Handler) logf(r *http.Request, format string, args ...any) {
	log.Printf("admin [%s] "+format, append([]any{requestctx.RequestIDFromContext(r.Context())}, args...)...)
}

// formatTime renders backend timestamps for display; unparseable values are
// shown as received.
func formatTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return raw
	}
	return parsed.Local().Format("02 Jan 2006 15:04")
}
