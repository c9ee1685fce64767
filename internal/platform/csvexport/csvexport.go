// Package csvexport writes list rows as downloadable CSV files.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Column maps a CSV header to a value extractor.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Write renders a header row followed by one row per item.
func Write[T any](w io.Writer, columns []Column[T], rows []T) error {
	if len(columns) == 0 {
		return fmt.Errorf("csv export needs at least one column")
	}
	cw := csv.NewWriter(w)
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			value := ""
			if col.Value != nil {
				value = col.Value(row)
			}
			record[i] = Sanitize(value)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Sanitize neutralises cells that spreadsheet applications would evaluate as
// formulas. Form submissions are untrusted input.
func Sanitize(value string) string {
	if value == "" {
		return value
	}
	switch value[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + value
	}
	return value
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9-]+`)

// Filename returns "<base>-YYYY-MM-DD.csv" with base reduced to a safe slug.
func Filename(base string, now time.Time) string {
	slug := unsafeFilenameChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(base)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "export"
	}
	return slug + "-" + now.Format("2006-01-02") + ".csv"
}

// SetDownloadHeaders marks the response as a CSV attachment.
func SetDownloadHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Cache-Control", "no-store")
}
