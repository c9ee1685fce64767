package templates

import (
	"github.com/goalinstitute/admin-console/internal/services/admin/flash"
	"github.com/goalinstitute/admin-console/internal/services/admin/session"
	"golang.org/x/text/message"
)

// Localizer provides translated strings for components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns a translated string or the key if no localizer is available.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc == nil {
		if keyString, ok := key.(string); ok {
			return keyString
		}
		return ""
	}
	return loc.Sprintf(key, args...)
}

// NavLink is one sidebar entry.
type NavLink struct {
	Label  string
	URL    string
	Active bool
	// SuperAdminOnly hides the entry for other roles. Display only; the
	// backend authorizes the underlying calls.
	SuperAdminOnly bool
	External       bool
}

// PageContext provides shared layout context for admin pages.
type PageContext struct {
	Lang        string
	Loc         Localizer
	CurrentPath string
	User        *session.Profile
	Notice      *flash.Notice
	Nav         []NavLink
}

// VisibleNav returns the entries the current user should see.
func (p PageContext) VisibleNav() []NavLink {
	superAdmin := p.User != nil && p.User.IsSuperAdmin()
	out := make([]NavLink, 0, len(p.Nav))
	for _, link := range p.Nav {
		if link.SuperAdminOnly && !superAdmin {
			continue
		}
		out = append(out, link)
	}
	return out
}

// NoticeText resolves a flash notice to display text.
func NoticeText(loc Localizer, notice *flash.Notice) string {
	if notice == nil {
		return ""
	}
	if notice.Text != "" {
		return notice.Text
	}
	return T(loc, notice.Key)
}
