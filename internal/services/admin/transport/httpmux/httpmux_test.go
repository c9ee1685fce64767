package httpmux

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

func TestMountStaticServesAssets(t *testing.T) {
	t.Parallel()

	rootMux := http.NewServeMux()
	staticFS := fstest.MapFS{
		"admin.css": &fstest.MapFile{Data: []byte("body{}")},
	}
	var wrapped bool
	MountStatic(rootMux, staticFS, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped = true
			next.ServeHTTP(w, r)
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/static/admin.css", nil)
	rec := httptest.NewRecorder()
	rootMux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); body != "body{}" {
		t.Fatalf("body = %q, want %q", body, "body{}")
	}
	if !wrapped {
		t.Fatal("expected static handler to be wrapped")
	}
}

func TestMountAdminRoutesMountsRoot(t *testing.T) {
	t.Parallel()

	rootMux := http.NewServeMux()
	MountStatic(rootMux, fstest.MapFS{}, nil)
	MountAdminRoutes(rootMux, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("admin " + r.URL.Path))
	}))

	req := httptest.NewRequest(http.MethodGet, "/forms/contacts", nil)
	rec := httptest.NewRecorder()
	rootMux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); body != "admin /forms/contacts" {
		t.Fatalf("body = %q, want %q", body, "admin /forms/contacts")
	}
}

func TestMountNoopsOnNilInputs(t *testing.T) {
	t.Parallel()

	rootMux := http.NewServeMux()
	MountStatic(nil, fstest.MapFS{}, nil)
	MountStatic(rootMux, fs.FS(nil), nil)
	MountAdminRoutes(nil, http.NotFoundHandler())
	MountAdminRoutes(rootMux, nil)
}
