package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/goalinstitute/admin-console/internal/platform/i18n/catalog"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the operator's language preference.
	LangCookieName = "admin_lang"
)

var supportedTags = []language.Tag{
	language.AmericanEnglish,
	language.MustParse("hi-IN"),
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.AmericanEnglish
}

// Printer returns a message printer backed by the embedded catalog.
func Printer(tag language.Tag) *message.Printer {
	catalog.Default()
	return message.NewPrinter(tag)
}

// ResolveTag picks the language for the request: query param, then cookie,
// then Accept-Language. The bool reports whether the query param should be
// persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := parseTag(value); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := parseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, index, conf := tagMatcher.Match(tags...)
			if conf != language.No {
				return supportedTags[index], false
			}
		}
	}
	return Default(), false
}

// SetLanguageCookie persists the selected language.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// FormatCount renders n with the locale's digit grouping.
func FormatCount(p *message.Printer, n int) string {
	if p == nil {
		p = Printer(Default())
	}
	return p.Sprintf("%d", n)
}

// Humanize turns a backend key such as "answer_keys" into "Answer Keys" for
// categories the catalog does not name.
func Humanize(tag language.Tag, key string) string {
	key = strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(key))
	return cases.Title(tag).String(key)
}

func parseTag(value string) (language.Tag, bool) {
	parsed, err := language.Parse(value)
	if err != nil {
		return language.Tag{}, false
	}
	for _, tag := range supportedTags {
		if tag == parsed {
			return tag, true
		}
	}
	return language.Tag{}, false
}
