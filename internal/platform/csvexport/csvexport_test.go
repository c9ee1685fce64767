package csvexport

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"
)

type enquiry struct {
	Name  string
	Phone string
}

func TestWrite(t *testing.T) {
	t.Parallel()

	columns := []Column[enquiry]{
		{Header: "Name", Value: func(e enquiry) string { return e.Name }},
		{Header: "Phone", Value: func(e enquiry) string { return e.Phone }},
	}
	rows := []enquiry{
		{Name: "Asha, R.", Phone: "98100"},
		{Name: "=HYPERLINK(\"x\")", Phone: "+91 98"},
	}
	var buf bytes.Buffer
	if err := Write(&buf, columns, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	want := "Name,Phone\n\"Asha, R.\",98100\n\"'=HYPERLINK(\"\"x\"\")\",'+91 98\n"
	if got := buf.String(); got != want {
		t.Fatalf("csv = %q, want %q", got, want)
	}
}

func TestWriteRejectsNoColumns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write[enquiry](&buf, nil, nil); err == nil {
		t.Fatal("expected error without columns")
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	tests := map[string]string{
		"answer-keys":      "answer-keys-2026-03-09.csv",
		"Contact Forms":    "contact-forms-2026-03-09.csv",
		"../../etc/passwd": "etc-passwd-2026-03-09.csv",
		"":                 "export-2026-03-09.csv",
	}
	for base, want := range tests {
		if got := Filename(base, now); got != want {
			t.Fatalf("Filename(%q) = %q, want %q", base, got, want)
		}
	}
}

func TestSetDownloadHeaders(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	SetDownloadHeaders(rec, "contacts-2026-03-09.csv")

	if got := rec.Header().Get("Content-Type"); got != "text/csv; charset=utf-8" {
		t.Fatalf("content type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=contacts-2026-03-09.csv" {
		t.Fatalf("content disposition = %q", got)
	}
}
