package templates

import (
	"github.com/a-h/templ"
)

// AssetSlot is one upload target on the assets page.
type AssetSlot struct {
	Kind      string
	Label     string
	Hint      string
	Accept    string
	UploadURL string
}

// AssetsView holds the assets page state.
type AssetsView struct {
	Slots   []AssetSlot
	Enabled bool
}

// UploadResult is the outcome of one upload.
type UploadResult struct {
	Success    bool
	URL        string
	PreviewURL string
	Message    string
}

func resultID(kind string) string {
	return "upload-result-" + kind
}

// AssetsPage renders one upload form per asset slot.
func AssetsPage(page PageContext, view AssetsView) templ.Component {
	title := T(page.Loc, "assets.title")
	return Layout(page, title, component(func(h *htmlWriter) {
		if !view.Enabled {
			h.element("p", "notice notice-info", T(page.Loc, "assets.unavailable"))
			return
		}
		h.raw(`<div class="assets">`)
		for _, slot := range view.Slots {
			h.raw(`<section class="card">`)
			h.element("h2", "", slot.Label)
			h.element("p", "muted", slot.Hint)
			h.raw(`<form method="post" enctype="multipart/form-data"`)
			h.href("action", slot.UploadURL)
			h.href("hx-post", slot.UploadURL)
			h.attr("hx-encoding", "multipart/form-data")
			h.attr("hx-target", "#"+resultID(slot.Kind))
			h.raw(`><input type="file" name="file" required`)
			h.attr("accept", slot.Accept)
			h.raw(`><button type="submit" class="btn btn-primary">`)
			h.text(T(page.Loc, "assets.upload"))
			h.raw("</button></form><div")
			h.attr("id", resultID(slot.Kind))
			h.raw("></div></section>")
		}
		h.raw("</div>")
	}))
}

// UploadResultFragment renders the outcome swapped under an upload form.
func UploadResultFragment(page PageContext, result UploadResult) templ.Component {
	return component(func(h *htmlWriter) {
		if !result.Success {
			h.component(ErrorBanner(result.Message))
			return
		}
		h.raw(`<div class="notice notice-success" role="status"><p>`)
		h.text(T(page.Loc, "assets.uploaded"))
		h.raw(`</p><a target="_blank" rel="noopener noreferrer"`)
		h.href("href", result.URL)
		h.raw(">")
		h.text(result.URL)
		h.raw("</a>")
		if result.PreviewURL != "" {
			h.raw(`<img class="preview" alt=""`)
			h.href("src", result.PreviewURL)
			h.raw(">")
		}
		h.raw("</div>")
	})
}
