// Package flash carries one-time notices across a redirect, such as the
// result of a delete or an upload.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"
)

// CookieName is the cookie used for one-time notices.
const CookieName = "admin_flash"

// maxTextLen keeps server-provided text well under the cookie size limit.
const maxTextLen = 300

// Kind classifies notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// Notice is one flash message. Key is a catalog key; Text is literal
// server-provided text shown when set.
type Notice struct {
	Kind Kind   `json:"kind"`
	Key  string `json:"key,omitempty"`
	Text string `json:"text,omitempty"`
}

// Success creates a success notice for a catalog key.
func Success(key string) Notice {
	return Notice{Kind: KindSuccess, Key: key}
}

// Error creates an error notice. text wins over key when present.
func Error(key, text string) Notice {
	return Notice{Kind: KindError, Key: key, Text: text}
}

// Writer sets and clears the notice cookie.
type Writer struct {
	Secure bool
}

// Write stores notice for the next page render.
func (f Writer) Write(w http.ResponseWriter, notice Notice) {
	if w == nil {
		return
	}
	normalized, ok := normalize(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, f.cookie(base64.RawURLEncoding.EncodeToString(payload), 0))
}

// ReadAndClear returns the pending notice, if any, and expires the cookie.
func (f Writer) ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	if w != nil {
		http.SetCookie(w, f.cookie("", -1))
	}
	return decode(cookie.Value)
}

func (f Writer) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   f.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func decode(raw string) (Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalize(notice)
}

func normalize(notice Notice) (Notice, bool) {
	notice.Key = strings.TrimSpace(notice.Key)
	notice.Text = truncate(strings.TrimSpace(notice.Text), maxTextLen)
	if notice.Key == "" && notice.Text == "" {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindInfo, KindError:
		return notice, true
	default:
		return Notice{}, false
	}
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
