package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTraceRecordsServerSpan(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	handler := Trace(provider)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/forms/contacts", nil))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	span := spans[0]
	if span.Name() != "GET /forms/contacts" {
		t.Fatalf("span name = %q, want %q", span.Name(), "GET /forms/contacts")
	}
	if span.Status().Code != codes.Error {
		t.Fatalf("span status = %v, want %v", span.Status().Code, codes.Error)
	}
	found := false
	for _, attr := range span.Attributes() {
		if attr.Key == attribute.Key("http.status_code") && attr.Value.AsInt64() == http.StatusBadGateway {
			found = true
		}
	}
	if !found {
		t.Fatalf("status attribute missing: %v", span.Attributes())
	}
}

func TestTraceDefaultsToOK(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	handler := Trace(provider)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	if got := spans[0].Status().Code; got == codes.Error {
		t.Fatalf("span status = %v, want non-error", got)
	}
}
