package templates

import (
	"github.com/a-h/templ"
)

// TableID is the element swapped by live search and pager requests.
const TableID = "submissions-table"

// Column describes one table column.
type Column struct {
	Key   string
	Label string
}

// SubmissionRow is one rendered table row.
type SubmissionRow struct {
	ID        string
	Cells     []string
	DetailURL string
	DeleteURL string
}

// SubmissionList is the state of one submissions table.
type SubmissionList struct {
	Title     string
	Columns   []Column
	Rows      []SubmissionRow
	Search    string
	Page      int
	Pages     int
	Total     string
	Prev      PageLink
	Next      PageLink
	TableURL  string
	ExportURL string
	// ReturnURL is where a delete from this table lands afterwards.
	ReturnURL string
	Error     string
}

// PageLink targets another page of the table. URL loads the full page and
// TableURL the fragment. A zero PageLink renders as disabled.
type PageLink struct {
	URL      string
	TableURL string
}

// SubmissionsPage renders a list page with its search box and table.
func SubmissionsPage(page PageContext, list SubmissionList) templ.Component {
	return Layout(page, list.Title, component(func(h *htmlWriter) {
		h.raw(`<div class="toolbar"><input type="search" name="search" class="search"`)
		h.attr("value", list.Search)
		h.attr("placeholder", T(page.Loc, "table.search_placeholder"))
		h.attr("aria-label", T(page.Loc, "table.search_placeholder"))
		h.href("hx-get", list.TableURL)
		h.attr("hx-trigger", "input changed delay:150ms, search")
		h.attr("hx-target", "#"+TableID)
		h.attr("hx-swap", "outerHTML")
		h.raw(`><a class="btn"`)
		h.href("href", list.ExportURL)
		h.raw(">")
		h.text(T(page.Loc, "table.export"))
		h.raw("</a></div>")
		h.component(SubmissionsTable(page, list))
	}))
}

// SubmissionsTable renders the swappable table with its pager.
func SubmissionsTable(page PageContext, list SubmissionList) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div`)
		h.attr("id", TableID)
		h.raw(">")
		h.component(ErrorBanner(list.Error))
		if len(list.Rows) == 0 {
			if list.Error == "" {
				h.element("p", "empty", T(page.Loc, "table.empty"))
			}
		} else {
			h.raw(`<table class="table"><thead><tr>`)
			for _, column := range list.Columns {
				h.element("th", "", column.Label)
			}
			h.raw(`<th></th></tr></thead><tbody>`)
			for _, row := range list.Rows {
				h.raw("<tr>")
				for _, cell := range row.Cells {
					h.element("td", "", cell)
				}
				h.raw(`<td class="actions"><a`)
				h.href("href", row.DetailURL)
				h.raw(">")
				h.text(T(page.Loc, "table.view"))
				h.raw(`</a><form method="post"`)
				h.href("action", row.DeleteURL)
				h.href("hx-post", row.DeleteURL)
				h.attr("hx-confirm", T(page.Loc, "table.delete_confirm"))
				h.raw(">")
				if list.ReturnURL != "" {
					h.raw(`<input type="hidden" name="return"`)
					h.attr("value", list.ReturnURL)
					h.raw(">")
				}
				h.raw(`<button type="submit" class="btn btn-danger">`)
				h.text(T(page.Loc, "table.delete"))
				h.raw("</button></form></td></tr>")
			}
			h.raw("</tbody></table>")
		}
		h.raw(`<nav class="pager">`)
		h.component(pagerLink(list.Prev, T(page.Loc, "table.prev")))
		h.element("span", "pager-status", T(page.Loc, "table.page_of", list.Page, list.Pages))
		h.element("span", "muted", T(page.Loc, "table.total", list.Total))
		h.component(pagerLink(list.Next, T(page.Loc, "table.next")))
		h.raw("</nav></div>")
	})
}

func pagerLink(link PageLink, label string) templ.Component {
	return component(func(h *htmlWriter) {
		if link.URL == "" {
			h.raw(`<span class="btn disabled" aria-disabled="true">`)
			h.text(label)
			h.raw("</span>")
			return
		}
		h.raw(`<a class="btn"`)
		h.href("href", link.URL)
		h.href("hx-get", link.TableURL)
		h.attr("hx-target", "#"+TableID)
		h.attr("hx-swap", "outerHTML")
		h.raw(">")
		h.text(label)
		h.raw("</a>")
	})
}

// DetailField is one labelled value on the detail page.
type DetailField struct {
	Label string
	Value string
}

// SubmissionDetail is the state of one submission's detail page.
type SubmissionDetail struct {
	Title     string
	BackURL   string
	DeleteURL string
	Fields    []DetailField
	Error     string
}

// SubmissionDetailPage renders every field of one submission.
func SubmissionDetailPage(page PageContext, detail SubmissionDetail) templ.Component {
	return Layout(page, detail.Title, component(func(h *htmlWriter) {
		h.raw(`<p><a`)
		h.href("href", detail.BackURL)
		h.raw(">")
		h.text(T(page.Loc, "detail.back"))
		h.raw("</a></p>")
		h.component(ErrorBanner(detail.Error))
		if len(detail.Fields) > 0 {
			h.raw(`<dl class="detail">`)
			for _, field := range detail.Fields {
				h.element("dt", "", field.Label)
				h.element("dd", "", field.Value)
			}
			h.raw("</dl>")
		}
		if detail.DeleteURL != "" {
			h.raw(`<form method="post"`)
			h.href("action", detail.DeleteURL)
			h.attr("hx-confirm", T(page.Loc, "table.delete_confirm"))
			h.href("hx-post", detail.DeleteURL)
			h.raw(`><button type="submit" class="btn btn-danger">`)
			h.text(T(page.Loc, "table.delete"))
			h.raw("</button></form>")
		}
	}))
}
