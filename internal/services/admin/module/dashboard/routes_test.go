package dashboard

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeService struct {
	lastCall string
}

func (f *fakeService) HandleDashboard(http.ResponseWriter, *http.Request) {
	f.lastCall = "dashboard"
}

func (f *fakeService) HandleNotFound(w http.ResponseWriter, _ *http.Request) {
	f.lastCall = "not_found"
	w.WriteHeader(http.StatusNotFound)
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		method   string
		wantCode int
		wantCall string
	}{
		{path: "/", method: http.MethodGet, wantCode: http.StatusOK, wantCall: "dashboard"},
		{path: "/", method: http.MethodPost, wantCode: http.StatusMethodNotAllowed},
		{path: "/missing", method: http.MethodGet, wantCode: http.StatusNotFound, wantCall: "not_found"},
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

func TestRegisterRoutesNilInputs(t *testing.T) {
	t.Parallel()
	RegisterRoutes(nil, &fakeService{})
	RegisterRoutes(http.NewServeMux(), nil)
}
