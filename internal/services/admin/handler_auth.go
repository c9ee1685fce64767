package admin

import (
	"net/http"
	"strings"

	"github.com/goalinstitute/admin-console/internal/platform/httpx"
	"github.com/goalinstitute/admin-console/internal/services/admin/flash"
	"github.com/goalinstitute/admin-console/internal/services/admin/guard"
	"github.com/goalinstitute/admin-console/internal/services/admin/routepath"
	"github.com/goalinstitute/admin-console/internal/services/admin/session"
	"github.com/goalinstitute/admin-console/internal/services/admin/templates"
)

// maxLoginFormBytes bounds the login form body.
const maxLoginFormBytes = 16 << 10

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	next := guard.SafeNext(r.URL.Query().Get(guard.NextParam), "")
	if manager := session.ManagerFromContext(r.Context()); manager != nil {
		manager.Init(r.Context())
		if _, ok := manager.User(); ok {
			httpx.WriteRedirect(w, r, guard.SafeNext(next, routepath.Root), http.StatusFound)
			return
		}
	}
	h.renderLogin(w, r, templates.LoginView{Next: next}, http.StatusOK)
}

func (h *Handler) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLoginFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	next := guard.SafeNext(r.PostFormValue(guard.NextParam), "")

	manager := session.ManagerFromContext(r.Context())
	if manager == nil {
		http.Error(w, "session unavailable", http.StatusServiceUnavailable)
		return
	}
	result := manager.Login(r.Context(), email, r.PostFormValue("password"))
	if !result.Success {
		h.renderLogin(w, r, templates.LoginView{Email: email, Next: next, Error: result.Error}, http.StatusUnauthorized)
		return
	}
	httpx.WriteRedirect(w, r, guard.SafeNext(next, routepath.Root), http.StatusSeeOther)
}

func (h *Handler) handleLoginRateLimited(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.localizer(w, r)
	view := templates.LoginView{
		Email: strings.TrimSpace(r.PostFormValue("email")),
		Next:  guard.SafeNext(r.PostFormValue(guard.NextParam), ""),
		Error: templates.T(loc, "error.rate_limited"),
	}
	w.Header().Set("Retry-After", "1")
	h.renderLogin(w, r, view, http.StatusTooManyRequests)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if manager := session.ManagerFromContext(r.Context()); manager != nil {
		if err := manager.Logout(r.Context()); err != nil {
			h.logf(r, "logout: %v", err)
		}
	}
	h.flash.Write(w, flash.Success("login.signed_out"))
	httpx.WriteRedirect(w, r, routepath.Login, http.StatusSeeOther)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, view templates.LoginView, status int) {
	view.DemoEmail = h.demoEmail
	view.DemoPassword = h.demoPassword
	page := h.pageContext(w, r)
	page.Nav = nil
	templates.Render(w, r, templates.LoginPage(page, view), templates.PageTitle(page.Loc, templates.T(page.Loc, "login.title")), status)
}
