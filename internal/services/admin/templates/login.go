package templates

import (
	"github.com/a-h/templ"

	"github.com/goalinstitute/admin-console/internal/services/admin/routepath"
)

// LoginView is the sign-in form state.
type LoginView struct {
	Email string
	Next  string
	Error string
	// DemoEmail and DemoPassword are shown as a hint when configured.
	DemoEmail    string
	DemoPassword string
}

// LoginPage renders the standalone sign-in page.
func LoginPage(page PageContext, view LoginView) templ.Component {
	title := T(page.Loc, "login.title")
	return Document(page, title, component(func(h *htmlWriter) {
		h.raw(`<div class="login"><main id="main" class="card">`)
		h.element("h1", "", T(page.Loc, "app.name"))
		h.element("p", "muted", title)
		h.component(Notice(page))
		h.component(ErrorBanner(view.Error))
		h.raw(`<form method="post"`)
		h.href("action", routepath.Login)
		h.raw(`>`)
		if view.Next != "" {
			h.raw(`<input type="hidden" name="next"`)
			h.attr("value", view.Next)
			h.raw(">")
		}
		h.raw(`<label for="email">`)
		h.text(T(page.Loc, "login.email"))
		h.raw(`</label><input id="email" name="email" type="email" autocomplete="username" required`)
		h.attr("value", view.Email)
		h.raw(`><label for="password">`)
		h.text(T(page.Loc, "login.password"))
		h.raw(`</label><input id="password" name="password" type="password" autocomplete="current-password" required>`)
		h.raw(`<button type="submit" class="btn btn-primary">`)
		h.text(T(page.Loc, "login.submit"))
		h.raw("</button></form>")
		if view.DemoEmail != "" && view.DemoPassword != "" {
			h.element("p", "hint", T(page.Loc, "login.demo_hint", view.DemoEmail, view.DemoPassword))
		}
		h.raw("</main></div>")
	}))
}
