// Package routepath names every admin console URL.
package routepath

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	Root = "/"
)

const (
	StaticPrefix = "/static/"
)

const (
	Login  = "/login"
	Logout = "/logout"
)

const (
	Forms       = "/forms"
	FormsPrefix = "/forms/"
)

const (
	Assets       = "/assets"
	AssetsUpload = "/assets/upload"
)

// Form is the list page for a form kind.
func Form(kind string) string {
	return Forms + "/" + escapeSegment(kind)
}

// FormPage is the list page at a page number and search term.
func FormPage(kind string, page int, search string) string {
	return withListQuery(Form(kind), page, search)
}

// FormTablePage is the table fragment at a page number and search term.
func FormTablePage(kind string, page int, search string) string {
	return withListQuery(FormTable(kind), page, search)
}

func withListQuery(base string, page int, search string) string {
	values := url.Values{}
	if page > 1 {
		values.Set("page", strconv.Itoa(page))
	}
	if search = strings.TrimSpace(search); search != "" {
		values.Set("search", search)
	}
	if len(values) == 0 {
		return base
	}
	return base + "?" + values.Encode()
}

// FormTable is the table fragment used by live search and paging.
func FormTable(kind string) string {
	return Form(kind) + "/table"
}

// FormExport downloads a CSV of the kind's submissions.
func FormExport(kind string) string {
	return Form(kind) + "/export"
}

// Submission is the detail page of one submission.
func Submission(kind, id string) string {
	return Form(kind) + "/" + escapeSegment(id)
}

// SubmissionDelete is the delete action of one submission.
func SubmissionDelete(kind, id string) string {
	return Submission(kind, id) + "/delete"
}

// AssetUpload posts one asset of the given kind.
func AssetUpload(kind string) string {
	return AssetsUpload + "?" + url.Values{"kind": {strings.TrimSpace(kind)}}.Encode()
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
