package forms

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeService struct {
	lastCall string
	lastKind string
	lastID   string
}

func (f *fakeService) HandleSubmissionsPage(_ http.ResponseWriter, _ *http.Request, kind string) {
	f.lastCall, f.lastKind = "page", kind
}

func (f *fakeService) HandleSubmissionsTable(_ http.ResponseWriter, _ *http.Request, kind string) {
	f.lastCall, f.lastKind = "table", kind
}

func (f *fakeService) HandleSubmissionsExport(_ http.ResponseWriter, _ *http.Request, kind string) {
	f.lastCall, f.lastKind = "export", kind
}

func (f *fakeService) HandleSubmissionDetail(_ http.ResponseWriter, _ *http.Request, kind, id string) {
	f.lastCall, f.lastKind, f.lastID = "detail", kind, id
}

func (f *fakeService) HandleSubmissionDelete(_ http.ResponseWriter, _ *http.Request, kind, id string) {
	f.lastCall, f.lastKind, f.lastID = "delete", kind, id
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		method   string
		wantCode int
		wantCall string
		wantKind string
		wantID   string
	}{
		{path: "/forms/contacts", method: http.MethodGet, wantCode: http.StatusOK, wantCall: "page", wantKind: "contacts"},
		{path: "/forms/contacts/table?search=ab", method: http.MethodGet, wantCode: http.StatusOK, wantCall: "table", wantKind: "contacts"},
		{path: "/forms/answer-keys/export", method: http.MethodGet, wantCode: http.StatusOK, wantCall: "export", wantKind: "answer-keys"},
		{path: "/forms/admissions/s-1", method: http.MethodGet, wantCode: http.StatusOK, wantCall: "detail", wantKind: "admissions", wantID: "s-1"},
		{path: "/forms/admissions/a%2Fb", method: http.MethodGet, wantCode: http.StatusOK, wantCall: "detail", wantKind: "admissions", wantID: "a/b"},
		{path: "/forms/admissions/s-1/delete", method: http.MethodPost, wantCode: http.StatusOK, wantCall: "delete", wantKind: "admissions", wantID: "s-1"},
		{path: "/forms/admissions/s-1/delete", method: http.MethodGet, wantCode: http.StatusMethodNotAllowed},
		{path: "/forms/admissions", method: http.MethodPost, wantCode: http.StatusMethodNotAllowed},
		{path: "/forms/admissions/s-1/extra", method: http.MethodGet, wantCode: http.StatusNotFound},
		{path: "/forms/", method: http.MethodGet, wantCode: http.StatusNotFound},
		{path: "/forms", method: http.MethodGet, wantCode: http.StatusNotFound},
		{path: "/forms/contacts/", method: http.MethodGet, wantCode: http.StatusMovedPermanently},
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
			if svc.lastKind != tc.wantKind {
				t.Fatalf("lastKind = %q, want %q", svc.lastKind, tc.wantKind)
			}
			if svc.lastID != tc.wantID {
				t.Fatalf("lastID = %q, want %q", svc.lastID, tc.wantID)
			}
		})
	}
}
