package admin

import (
	"net/http"
	"slices"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/goalinstitute/admin-console/internal/services/admin/apiclient"
	"github.com/goalinstitute/admin-console/internal/services/admin/i18n"
	"github.com/goalinstitute/admin-console/internal/services/admin/routepath"
	"github.com/goalinstitute/admin-console/internal/services/admin/templates"
)

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		wg       sync.WaitGroup
		stats    apiclient.Result[apiclient.Stats]
		activity apiclient.Result[[]apiclient.Activity]
	)
	wg.Go(func() { stats = h.backend.DashboardStats(ctx) })
	wg.Go(func() { activity = h.backend.RecentActivity(ctx) })
	wg.Wait()

	if stats.Unauthorized() || activity.Unauthorized() {
		h.handleUnauthorized(w, r)
		return
	}

	page := h.pageContext(w, r)
	tag := language.Make(page.Lang)
	view := templates.DashboardView{}
	if stats.Success {
		view.Stats = statCards(page.Loc, tag, stats.Data)
	} else {
		view.StatsError = stats.Message
	}
	if activity.Success {
		view.Activity = activityRows(tag, activity.Data)
	} else {
		view.FeedError = activity.Message
	}
	if page.User != nil && page.User.IsSuperAdmin() {
		view.ChatbotURL = h.chatbotURL
	}
	title := templates.T(page.Loc, "dashboard.title")
	templates.Render(w, r, templates.DashboardPage(page, view), templates.PageTitle(page.Loc, title), http.StatusOK)
}

// statCards lists form kinds first in navigation order, then any other
// categories the backend reports, sorted by key.
func statCards(loc *message.Printer, tag language.Tag, stats apiclient.Stats) []templates.StatCard {
	cards := make([]templates.StatCard, 0, len(stats))
	for _, kind := range formKinds {
		count, ok := stats[kind.statKey]
		if !ok {
			continue
		}
		cards = append(cards, templates.StatCard{
			Label: templates.T(loc, kind.titleKey),
			Value: i18n.FormatCount(loc, count),
			URL:   routepath.Form(kind.slug),
		})
	}
	var extra []string
	for key := range stats {
		if _, known := formKindForStat(key); !known {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	for _, key := range extra {
		cards = append(cards, templates.StatCard{
			Label: i18n.Humanize(tag, key),
			Value: i18n.FormatCount(loc, stats[key]),
		})
	}
	return cards
}

func activityRows(tag language.Tag, items []apiclient.Activity) []templates.ActivityRow {
	rows := make([]templates.ActivityRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, templates.ActivityRow{
			Type:   i18n.Humanize(tag, item.Type),
			Name:   item.Name,
			Email:  item.Email,
			Time:   formatTime(item.Time),
			Status: item.Status,
		})
	}
	return rows
}
