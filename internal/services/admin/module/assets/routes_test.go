package assets

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeService struct {
	lastCall string
}

func (f *fakeService) HandleAssetsPage(http.ResponseWriter, *http.Request) {
	f.lastCall = "page"
}

func (f *fakeService) HandleAssetUpload(http.ResponseWriter, *http.Request) {
	f.lastCall = "upload"
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		method   string
		wantCode int
		wantCall string
	}{
		{path: "/assets", method: http.MethodGet, wantCode: http.StatusOK, wantCall: "page"},
		{path: "/assets", method: http.MethodPost, wantCode: http.StatusMethodNotAllowed},
		{path: "/assets/upload?kind=banner", method: http.MethodPost, wantCode: http.StatusOK, wantCall: "upload"},
		{path: "/assets/upload", method: http.MethodGet, wantCode: http.StatusMethodNotAllowed},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			t.Parallel()
			svc := &fakeService{}
			mux := http.NewServeMux()
			RegisterRoutes(mux, svc)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if svc.lastCall != tc.wantCall {
				t.Fatalf("lastCall = %q, want %q", svc.lastCall, tc.wantCall)
			}
		})
	}
}
