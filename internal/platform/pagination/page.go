// Package pagination holds page-number arithmetic for list views.
package pagination

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Max     int
}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(value int, cfg PageSizeConfig) int {
	pageSize := value
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}

// Pages returns ceil(total/limit). An empty result has zero pages.
func Pages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Window describes the visible page of a list and drives Prev/Next controls.
type Window struct {
	Page  int
	Limit int
	Total int
}

// NewWindow builds a window with the page clamped into [1, Pages].
func NewWindow(page, limit, total int) Window {
	w := Window{Page: page, Limit: limit, Total: total}
	if w.Total < 0 {
		w.Total = 0
	}
	w.Page = ClampPage(page, w.Pages())
	return w
}

// Pages returns the number of pages in the window's result set.
func (w Window) Pages() int {
	return Pages(w.Total, w.Limit)
}

// HasPrev reports whether the Prev control is enabled.
func (w Window) HasPrev() bool {
	return w.Page > 1
}

// HasNext reports whether the Next control is enabled.
func (w Window) HasNext() bool {
	return w.Page < w.Pages()
}

// PrevPage returns the page the Prev control navigates to.
func (w Window) PrevPage() int {
	if !w.HasPrev() {
		return w.Page
	}
	return w.Page - 1
}

// NextPage returns the page the Next control navigates to.
func (w Window) NextPage() int {
	if !w.HasNext() {
		return w.Page
	}
	return w.Page + 1
}

// ClampPage bounds a requested page into [1, pages]; page 1 is always valid.
func ClampPage(page, pages int) int {
	if page < 1 {
		return 1
	}
	if pages < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}
