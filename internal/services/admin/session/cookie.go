package session

import (
	"context"
	"encoding/base64"
	"net/http"
	"slices"
	"strings"
)

// CookieOptions controls the attributes of session cookies.
type CookieOptions struct {
	Secure bool
	// MaxAge in seconds; zero issues browser-session cookies.
	MaxAge int
}

// CookieKV stores values in the browser's cookie jar for the request/response
// pair it wraps. All Set-Cookie headers of one Put go out in the same response,
// so a reload sees either every key of the write or none of them.
type CookieKV struct {
	w       http.ResponseWriter
	r       *http.Request
	opts    CookieOptions
	pending map[string]*string
}

// NewCookieKV wraps one request/response pair.
func NewCookieKV(w http.ResponseWriter, r *http.Request, opts CookieOptions) *CookieKV {
	return &CookieKV{w: w, r: r, opts: opts, pending: make(map[string]*string)}
}

// Get implements KV. Writes made earlier in the same request win over the
// incoming cookies.
func (c *CookieKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if value, ok := c.pending[key]; ok {
		if value == nil {
			return "", false, nil
		}
		return *value, true, nil
	}
	if c.r == nil {
		return "", false, nil
	}
	cookie, err := c.r.Cookie(key)
	if err != nil {
		return "", false, nil
	}
	raw := strings.TrimSpace(cookie.Value)
	if raw == "" {
		return "", false, nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		// An undecodable cookie is treated like a missing one.
		return "", false, nil
	}
	return string(decoded), true, nil
}

// Put implements KV.
func (c *CookieKV) Put(ctx context.Context, entries map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, key := range sortedKeys(entries) {
		value := entries[key]
		c.pending[key] = &value
		c.set(key, base64.RawURLEncoding.EncodeToString([]byte(value)), c.opts.MaxAge)
	}
	return nil
}

// Delete implements KV.
func (c *CookieKV) Delete(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, key := range keys {
		c.pending[key] = nil
		c.set(key, "", -1)
	}
	return nil
}

func (c *CookieKV) set(name, value string, maxAge int) {
	if c.w == nil {
		return
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func sortedKeys(entries map[string]string) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
