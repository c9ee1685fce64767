package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCookieKVRoundTripAcrossRequests(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := httptest.NewRecorder()
	kv := NewCookieKV(rec, httptest.NewRequest(http.MethodPost, "/login", nil), CookieOptions{Secure: true})
	if err := NewStore(kv).Save(ctx, "T", adminProfile()); err != nil {
		t.Fatalf("save: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("cookies = %d, want 2", len(cookies))
	}
	for _, c := range cookies {
		if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
			t.Fatalf("cookie %s attributes = %+v", c.Name, c)
		}
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	got, ok, err := NewStore(NewCookieKV(httptest.NewRecorder(), next, CookieOptions{})).Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load = %v, %v", ok, err)
	}
	if got.Token != "T" || got.Profile != adminProfile() {
		t.Fatalf("loaded = %+v", got)
	}
}

func TestCookieKVLoneHalfIsClearedInResponse(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenKey, Value: "VA"})
	rec := httptest.NewRecorder()

	if _, ok, err := NewStore(NewCookieKV(rec, req, CookieOptions{})).Load(context.Background()); ok || err != nil {
		t.Fatalf("load = %v, %v", ok, err)
	}
	cleared := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			cleared[c.Name] = true
		}
	}
	if !cleared[TokenKey] || !cleared[ProfileKey] {
		t.Fatalf("cleared = %v, want both keys", cleared)
	}
}

func TestCookieKVPendingWritesWin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "k", Value: "b2xk"})
	kv := NewCookieKV(httptest.NewRecorder(), req, CookieOptions{})

	if v, ok, _ := kv.Get(ctx, "k"); !ok || v != "old" {
		t.Fatalf("get = %q, %v", v, ok)
	}
	_ = kv.Put(ctx, map[string]string{"k": "new"})
	if v, _, _ := kv.Get(ctx, "k"); v != "new" {
		t.Fatalf("get = %q, want new", v)
	}
	_ = kv.Delete(ctx, "k")
	if _, ok, _ := kv.Get(ctx, "k"); ok {
		t.Fatal("expected deleted key to be absent")
	}
}
