package templates

import (
	"bytes"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/goalinstitute/admin-console/internal/platform/httpx"
)

// Render writes a page. Non-htmx requests get the full document; htmx
// navigation gets the <main> content prefixed with a <title> so the
// browser tab stays current.
func Render(w http.ResponseWriter, r *http.Request, full templ.Component, title string, status int) {
	if status == 0 {
		status = http.StatusOK
	}
	var buf bytes.Buffer
	if err := full.Render(r.Context(), &buf); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	body := buf.Bytes()
	if httpx.IsHTMXRequest(r) {
		if main, ok := extractMainContent(body); ok {
			body = append([]byte(titleTag(title)), main...)
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// RenderFragment writes a component as-is, for htmx swaps.
func RenderFragment(w http.ResponseWriter, r *http.Request, fragment templ.Component, status int) {
	if status == 0 {
		status = http.StatusOK
	}
	templ.Handler(fragment, templ.WithStatus(status)).ServeHTTP(w, r)
}

func titleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

func extractMainContent(body []byte) ([]byte, bool) {
	start := bytes.Index(body, []byte("<main"))
	if start < 0 {
		return nil, false
	}
	openClose := bytes.Index(body[start:], []byte(">"))
	if openClose < 0 {
		return nil, false
	}
	contentStart := start + openClose + 1
	end := bytes.LastIndex(body[contentStart:], []byte("</main>"))
	if end < 0 {
		return nil, false
	}
	return body[contentStart : contentStart+end], true
}
