package templates

import (
	"github.com/a-h/templ"
)

// StatCard is one dashboard counter.
type StatCard struct {
	Label string
	Value string
	URL   string
}

// ActivityRow is one entry of the recent-activity feed.
type ActivityRow struct {
	Type   string
	Name   string
	Email  string
	Time   string
	Status string
}

// DashboardView holds dashboard content.
type DashboardView struct {
	Stats      []StatCard
	Activity   []ActivityRow
	StatsError string
	FeedError  string
	ChatbotURL string
}

// DashboardPage renders the dashboard inside the admin layout.
func DashboardPage(page PageContext, view DashboardView) templ.Component {
	title := T(page.Loc, "dashboard.title")
	return Layout(page, title, component(func(h *htmlWriter) {
		h.component(ErrorBanner(view.StatsError))
		h.raw(`<section class="stats">`)
		for _, card := range view.Stats {
			if card.URL == "" {
				h.raw(`<div class="stat">`)
			} else {
				h.raw(`<a class="stat"`)
				h.href("href", card.URL)
				h.raw(">")
			}
			h.element("span", "stat-value", card.Value)
			h.element("span", "stat-label", card.Label)
			if card.URL == "" {
				h.raw("</div>")
			} else {
				h.raw("</a>")
			}
		}
		h.raw("</section>")

		h.raw(`<section class="activity">`)
		h.element("h2", "", T(page.Loc, "dashboard.recent_activity"))
		h.component(ErrorBanner(view.FeedError))
		if len(view.Activity) == 0 && view.FeedError == "" {
			h.element("p", "empty", T(page.Loc, "dashboard.no_activity"))
		} else if len(view.Activity) > 0 {
			h.raw("<ul>")
			for _, row := range view.Activity {
				h.raw(`<li class="activity-row">`)
				h.element("span", "activity-type", row.Type)
				h.element("strong", "", row.Name)
				h.element("span", "muted", row.Email)
				h.element("time", "muted", row.Time)
				if row.Status != "" {
					h.element("span", "badge", row.Status)
				}
				h.raw("</li>")
			}
			h.raw("</ul>")
		}
		h.raw("</section>")

		if view.ChatbotURL != "" {
			h.raw(`<p class="external"><a target="_blank" rel="noopener noreferrer"`)
			h.href("href", view.ChatbotURL)
			h.raw(">")
			h.text(T(page.Loc, "dashboard.chatbot_link"))
			h.raw("</a></p>")
		}
	}))
}
