package admin

import (
	"bytes"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/goalinstitute/admin-console/internal/platform/csvexport"
	"github.com/goalinstitute/admin-console/internal/platform/httpx"
	"github.com/goalinstitute/admin-console/internal/platform/pagination"
	"github.com/goalinstitute/admin-console/internal/platform/requestctx"
	"github.com/goalinstitute/admin-console/internal/services/admin/apiclient"
	"github.com/goalinstitute/admin-console/internal/services/admin/flash"
	"github.com/goalinstitute/admin-console/internal/services/admin/guard"
	"github.com/goalinstitute/admin-console/internal/services/admin/i18n"
	"github.com/goalinstitute/admin-console/internal/services/admin/routepath"
	"github.com/goalinstitute/admin-console/internal/services/admin/templates"
)

const (
	// exportPageSize is the page size used while walking a list for export.
	exportPageSize = 100
	// maxExportPages stops an export that never reaches the last page.
	maxExportPages = 200
)

// hiddenFields are backend bookkeeping keys left off the detail page.
var hiddenFields = []string{"id", "_id", "__v", "updatedAt", "updated_at"}

// listRequest is the parsed state of a list or table request.
type listRequest struct {
	kind   formKind
	page   int
	limit  int
	search string
}

func (h *Handler) parseListRequest(r *http.Request, kind formKind) listRequest {
	query := r.URL.Query()
	page, _ := strconv.Atoi(strings.TrimSpace(query.Get("page")))
	limit, _ := strconv.Atoi(strings.TrimSpace(query.Get("limit")))
	return listRequest{
		kind:   kind,
		page:   max(page, 1),
		limit:  pagination.ClampPageSize(limit, h.pageSizes),
		search: strings.TrimSpace(query.Get("search")),
	}
}

// loadList fetches the requested page. A page past the end is refetched once
// at the last page so the pager never shows an empty tail.
func (h *Handler) loadList(r *http.Request, req listRequest) (listRequest, apiclient.Result[apiclient.SubmissionPage]) {
	query := apiclient.PageQuery{Page: req.page, Limit: req.limit, Search: req.search}
	res := h.backend.ListSubmissions(r.Context(), req.kind.resource, query)
	if !res.Success {
		return req, res
	}
	window := pagination.NewWindow(req.page, req.limit, res.Data.Pagination.Total)
	if window.Page != req.page && window.Pages() > 0 {
		req.page = window.Page
		query.Page = window.Page
		res = h.backend.ListSubmissions(r.Context(), req.kind.resource, query)
	}
	return req, res
}

func (h *Handler) buildList(page templates.PageContext, req listRequest, res apiclient.Result[apiclient.SubmissionPage]) templates.SubmissionList {
	kind := req.kind
	list := templates.SubmissionList{
		Title:     templates.T(page.Loc, kind.titleKey),
		Columns:   kindColumns(page.Loc, kind),
		Search:    req.search,
		Page:      1,
		Total:     i18n.FormatCount(page.Loc, 0),
		TableURL:  routepath.FormTable(kind.slug),
		ExportURL: exportURL(kind.slug, req.search),
		ReturnURL: routepath.FormPage(kind.slug, req.page, req.search),
	}
	if !res.Success {
		list.Error = res.Message
		return list
	}

	window := pagination.NewWindow(req.page, req.limit, res.Data.Pagination.Total)
	list.Page = window.Page
	list.Pages = window.Pages()
	list.Total = i18n.FormatCount(page.Loc, window.Total)
	if window.HasPrev() {
		list.Prev = pageLink(kind.slug, window.PrevPage(), req.search)
	}
	if window.HasNext() {
		list.Next = pageLink(kind.slug, window.NextPage(), req.search)
	}
	for _, submission := range res.Data.Submissions {
		id := submission.ID()
		row := templates.SubmissionRow{ID: id}
		for _, field := range kind.fields {
			row.Cells = append(row.Cells, fieldValue(submission, field))
		}
		if id != "" {
			row.DetailURL = routepath.Submission(kind.slug, id)
			row.DeleteURL = routepath.SubmissionDelete(kind.slug, id)
		}
		list.Rows = append(list.Rows, row)
	}
	return list
}

func pageLink(slug string, page int, search string) templates.PageLink {
	return templates.PageLink{
		URL:      routepath.FormPage(slug, page, search),
		TableURL: routepath.FormTablePage(slug, page, search),
	}
}

func exportURL(slug, search string) string {
	base := routepath.FormExport(slug)
	if search == "" {
		return base
	}
	return base + "?search=" + url.QueryEscape(search)
}

func kindColumns(loc *message.Printer, kind formKind) []templates.Column {
	columns := make([]templates.Column, 0, len(kind.fields))
	for _, field := range kind.fields {
		columns = append(columns, templates.Column{Key: field.key, Label: templates.T(loc, field.labelKey)})
	}
	return columns
}

func fieldValue(s apiclient.Submission, field formField) string {
	value := s.Field(field.key)
	if field.date {
		return formatTime(value)
	}
	return value
}

func (h *Handler) handleSubmissionsPage(w http.ResponseWriter, r *http.Request, slug string) {
	kind, ok := lookupFormKind(slug)
	if !ok {
		h.handleNotFound(w, r)
		return
	}
	req, res := h.loadList(r, h.parseListRequest(r, kind))
	if res.Unauthorized() {
		h.handleUnauthorized(w, r)
		return
	}
	page := h.pageContext(w, r)
	list := h.buildList(page, req, res)
	templates.Render(w, r, templates.SubmissionsPage(page, list), templates.PageTitle(page.Loc, list.Title), http.StatusOK)
}

// handleSubmissionsTable serves the table fragment for paging and live
// search. Keystrokes from the search box are debounced per user and kind;
// a request superseded by a newer keystroke gets 204 and nothing is swapped.
func (h *Handler) handleSubmissionsTable(w http.ResponseWriter, r *http.Request, slug string) {
	kind, ok := lookupFormKind(slug)
	if !ok {
		h.handleNotFound(w, r)
		return
	}
	if strings.EqualFold(r.Header.Get("HX-Trigger-Name"), searchTriggerName) {
		key := requestctx.UserIDFromContext(r.Context()) + "|" + kind.slug
		settled, err := h.debouncer.Settle(r.Context(), key)
		if err != nil || !settled {
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	req, res := h.loadList(r, h.parseListRequest(r, kind))
	if res.Unauthorized() {
		h.handleUnauthorized(w, r)
		return
	}
	page := h.fragmentContext(w, r)
	list := h.buildList(page, req, res)
	if httpx.IsHTMXRequest(r) {
		w.Header().Set("HX-Replace-Url", routepath.FormPage(kind.slug, list.Page, req.search))
	}
	templates.RenderFragment(w, r, templates.SubmissionsTable(page, list), http.StatusOK)
}

// handleSubmissionsExport downloads every submission matching the current
// search as CSV.
func (h *Handler) handleSubmissionsExport(w http.ResponseWriter, r *http.Request, slug string) {
	kind, ok := lookupFormKind(slug)
	if !ok {
		h.handleNotFound(w, r)
		return
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	var rows []apiclient.Submission
	for page := 1; page <= maxExportPages; page++ {
		res := h.backend.ListSubmissions(r.Context(), kind.resource, apiclient.PageQuery{Page: page, Limit: exportPageSize, Search: search})
		if res.Unauthorized() {
			h.handleUnauthorized(w, r)
			return
		}
		if !res.Success {
			h.logf(r, "export %s page %d: %s", kind.slug, page, res.Message)
			h.flash.Write(w, flash.Error("forms.export_failed", res.Message))
			httpx.WriteRedirect(w, r, routepath.FormPage(kind.slug, 1, search), http.StatusSeeOther)
			return
		}
		rows = append(rows, res.Data.Submissions...)
		pages := res.Data.Pagination.Pages
		if pages == 0 {
			pages = pagination.Pages(res.Data.Pagination.Total, exportPageSize)
		}
		if page >= pages || len(res.Data.Submissions) == 0 {
			break
		}
	}

	loc, _ := h.localizer(w, r)
	columns := []csvexport.Column[apiclient.Submission]{{
		Header: "id",
		Value:  apiclient.Submission.ID,
	}}
	for _, field := range kind.fields {
		columns = append(columns, csvexport.Column[apiclient.Submission]{
			Header: templates.T(loc, field.labelKey),
			Value:  func(s apiclient.Submission) string { return s.Field(field.key) },
		})
	}

	var buf bytes.Buffer
	if err := csvexport.Write(&buf, columns, rows); err != nil {
		h.logf(r, "export %s: %v", kind.slug, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	csvexport.SetDownloadHeaders(w, csvexport.Filename(kind.slug, h.now()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleSubmissionDetail(w http.ResponseWriter, r *http.Request, slug, id string) {
	kind, ok := lookupFormKind(slug)
	if !ok {
		h.handleNotFound(w, r)
		return
	}
	res := h.backend.GetSubmission(r.Context(), kind.resource, id)
	switch {
	case res.Unauthorized():
		h.handleUnauthorized(w, r)
		return
	case res.NotFound():
		h.handleNotFound(w, r)
		return
	}

	page := h.pageContext(w, r)
	detail := templates.SubmissionDetail{
		Title:   templates.T(page.Loc, "detail.title", id),
		BackURL: routepath.Form(kind.slug),
	}
	status := http.StatusOK
	if res.Success {
		detail.Fields = detailFields(page.Loc, language.Make(page.Lang), kind, res.Data)
		detail.DeleteURL = routepath.SubmissionDelete(kind.slug, id)
	} else {
		detail.Error = res.Message
		status = http.StatusBadGateway
	}
	templates.Render(w, r, templates.SubmissionDetailPage(page, detail), templates.PageTitle(page.Loc, detail.Title), status)
}

// detailFields lists the kind's known fields first, then any other values
// the backend returned.
func detailFields(loc *message.Printer, tag language.Tag, kind formKind, s apiclient.Submission) []templates.DetailField {
	fields := make([]templates.DetailField, 0, len(s))
	seen := make(map[string]bool, len(kind.fields))
	for _, field := range kind.fields {
		seen[field.key] = true
		fields = append(fields, templates.DetailField{Label: templates.T(loc, field.labelKey), Value: fieldValue(s, field)})
	}
	var extra []string
	for key := range s {
		if !seen[key] && !slices.Contains(hiddenFields, key) {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	for _, key := range extra {
		fields = append(fields, templates.DetailField{Label: i18n.Humanize(tag, key), Value: s.Field(key)})
	}
	return fields
}

func (h *Handler) handleSubmissionDelete(w http.ResponseWriter, r *http.Request, slug, id string) {
	kind, ok := lookupFormKind(slug)
	if !ok {
		h.handleNotFound(w, r)
		return
	}
	res := h.backend.DeleteSubmission(r.Context(), kind.resource, id)
	if res.Unauthorized() {
		h.handleUnauthorized(w, r)
		return
	}
	if res.Success {
		h.flash.Write(w, flash.Success("forms.notice_deleted"))
	} else {
		h.logf(r, "delete %s/%s: %s", kind.slug, id, res.Message)
		h.flash.Write(w, flash.Error("forms.delete_failed", res.Message))
	}
	target := guard.SafeNext(r.PostFormValue("return"), routepath.Form(kind.slug))
	httpx.WriteRedirect(w, r, target, http.StatusSeeOther)
}
