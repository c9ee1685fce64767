package flash

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func roundTrip(t *testing.T, f Writer, notice Notice) (Notice, bool, *httptest.ResponseRecorder) {
	t.Helper()
	writeRR := httptest.NewRecorder()
	f.Write(writeRR, notice)

	req := httptest.NewRequest(http.MethodGet, "/forms/contacts", nil)
	for _, c := range writeRR.Result().Cookies() {
		req.AddCookie(c)
	}
	readRR := httptest.NewRecorder()
	got, ok := f.ReadAndClear(readRR, req)
	return got, ok, readRR
}

func TestWriteAndReadAndClearRoundTrip(t *testing.T) {
	t.Parallel()

	got, ok, readRR := roundTrip(t, Writer{Secure: true}, Success("forms.notice_deleted"))
	if !ok {
		t.Fatal("ReadAndClear() ok = false, want true")
	}
	if got.Kind != KindSuccess || got.Key != "forms.notice_deleted" {
		t.Fatalf("notice = %+v", got)
	}
	cleared := readRR.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Fatalf("expected expiring cookie, got %+v", cleared)
	}
	if !cleared[0].Secure {
		t.Fatal("expected secure clear cookie")
	}
}

func TestServerTextIsTruncated(t *testing.T) {
	t.Parallel()

	got, ok, _ := roundTrip(t, Writer{}, Error("", strings.Repeat("é", 500)))
	if !ok {
		t.Fatal("expected notice")
	}
	if n := len([]rune(got.Text)); n != maxTextLen {
		t.Fatalf("text runes = %d, want %d", n, maxTextLen)
	}
}

func TestWriteSkipsEmptyAndUnknownNotices(t *testing.T) {
	t.Parallel()

	for name, notice := range map[string]Notice{
		"empty":        {Kind: KindInfo},
		"unknown kind": {Kind: "loud", Key: "x"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			Writer{}.Write(rr, notice)
			if got := rr.Header().Get("Set-Cookie"); got != "" {
				t.Fatalf("Set-Cookie = %q, want empty", got)
			}
		})
	}
}

func TestReadAndClearInvalidCookieValueStillClears(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-base64!"})
	rr := httptest.NewRecorder()

	if _, ok := (Writer{}).ReadAndClear(rr, req); ok {
		t.Fatal("ReadAndClear() ok = true, want false")
	}
	if rr.Header().Get("Set-Cookie") == "" {
		t.Fatal("expected clear Set-Cookie header")
	}
}
