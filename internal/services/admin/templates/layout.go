package templates

import (
	"github.com/a-h/templ"

	"github.com/goalinstitute/admin-console/internal/services/admin/routepath"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// Document renders a bare HTML document around body.
func Document(page PageContext, title string, body templ.Component) templ.Component {
	return documentWithHead(page, title, "", body)
}

func documentWithHead(page PageContext, title, extraHead string, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		lang := page.Lang
		if lang == "" {
			lang = "en-US"
		}
		h.raw("<!doctype html><html")
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(extraHead)
		h.raw("<title>")
		h.text(PageTitle(page.Loc, title))
		h.raw("</title>")
		h.raw(`<link rel="stylesheet"`)
		h.href("href", routepath.StaticPrefix+"admin.css")
		h.raw(`><script defer`)
		h.href("src", htmxScript)
		h.raw(`></script></head><body>`)
		h.component(body)
		h.raw("</body></html>")
	})
}

// PageTitle joins a page title with the application name.
func PageTitle(loc Localizer, title string) string {
	app := T(loc, "app.name")
	if title == "" {
		return app
	}
	return title + " | " + app
}

// Layout renders body inside the dashboard chrome: sidebar, header with the
// signed-in user, and the pending flash notice.
func Layout(page PageContext, title string, body templ.Component) templ.Component {
	return Document(page, title, component(func(h *htmlWriter) {
		h.raw(`<div class="shell"><aside class="sidebar"><a class="brand"`)
		h.href("href", routepath.Root)
		h.raw(">")
		h.text(T(page.Loc, "app.name"))
		h.raw("</a><nav><ul>")
		for _, link := range page.VisibleNav() {
			h.raw("<li>")
			h.raw("<a")
			h.href("href", link.URL)
			if link.Active {
				h.attr("class", "active")
				h.attr("aria-current", "page")
			}
			if link.External {
				h.attr("target", "_blank")
				h.attr("rel", "noopener noreferrer")
			}
			h.raw(">")
			h.text(link.Label)
			h.raw("</a></li>")
		}
		h.raw(`</ul></nav></aside><div class="content">`)
		h.component(header(page))
		h.component(Notice(page))
		h.raw(`<main id="main">`)
		h.raw("<h1>")
		h.text(title)
		h.raw("</h1>")
		h.component(body)
		h.raw("</main></div></div>")
	}))
}

func header(page PageContext) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<header class="topbar">`)
		h.raw(`<div class="languages">`)
		for _, option := range []struct{ tag, label string }{{"en-US", "English"}, {"hi-IN", "हिन्दी"}} {
			h.raw("<a")
			h.href("href", page.CurrentPath+"?lang="+option.tag)
			if option.tag == page.Lang {
				h.attr("class", "active")
			}
			h.raw(">")
			h.text(option.label)
			h.raw("</a>")
		}
		h.raw("</div>")
		if page.User != nil {
			h.raw(`<div class="user">`)
			h.element("span", "user-name", page.User.DisplayName())
			if page.User.IsSuperAdmin() {
				h.element("span", "badge", T(page.Loc, "role.super_admin"))
			} else {
				h.element("span", "badge badge-muted", T(page.Loc, "role.admin"))
			}
			h.raw(`<form method="post"`)
			h.href("action", routepath.Logout)
			h.raw(`><button type="submit" class="btn btn-ghost">`)
			h.text(T(page.Loc, "nav.logout"))
			h.raw("</button></form></div>")
		}
		h.raw("</header>")
	})
}

// Notice renders the pending flash notice, if any.
func Notice(page PageContext) templ.Component {
	return component(func(h *htmlWriter) {
		if page.Notice == nil {
			return
		}
		h.raw(`<div role="status"`)
		h.attr("class", "notice notice-"+string(page.Notice.Kind))
		h.raw(">")
		h.text(NoticeText(page.Loc, page.Notice))
		h.raw("</div>")
	})
}

// LoadingPage is shown while the session has not settled. It re-requests
// the page shortly without redirecting anywhere.
func LoadingPage(page PageContext) templ.Component {
	return documentWithHead(page, "", `<meta http-equiv="refresh" content="1">`, component(func(h *htmlWriter) {
		h.raw(`<div class="loading" aria-busy="true"><span class="spinner"></span><p>`)
		h.text(T(page.Loc, "loading.session"))
		h.raw("</p></div>")
	}))
}

// ErrorBanner renders an inline error message.
func ErrorBanner(message string) templ.Component {
	return component(func(h *htmlWriter) {
		if message == "" {
			return
		}
		h.raw(`<div class="notice notice-error" role="alert">`)
		h.text(message)
		h.raw("</div>")
	})
}
