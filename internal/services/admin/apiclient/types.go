package apiclient

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Stats maps a content category to its count.
type Stats map[string]int

// Activity is one recent-activity row.
type Activity struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Time   string `json:"time"`
	Status string `json:"status"`
}

// PageQuery selects one page of a list.
type PageQuery struct {
	Page   int
	Limit  int
	Search string
}

// Pagination is the backend's page metadata.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// SubmissionPage is one page of form submissions.
type SubmissionPage struct {
	Submissions []Submission `json:"submissions"`
	Pagination  Pagination   `json:"pagination"`
}

// Submission is one form submission. Fields differ per form kind, so values
// are kept as decoded JSON.
type Submission map[string]any

// ID returns the submission identifier (id or _id).
func (s Submission) ID() string {
	for _, key := range []string{"id", "_id"} {
		if v := s.Field(key); v != "" {
			return v
		}
	}
	return ""
}

// Field renders a top-level value as display text.
func (s Submission) Field(key string) string {
	value, ok := s[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// CreatedAt parses createdAt (or created_at) when present.
func (s Submission) CreatedAt() (time.Time, bool) {
	for _, key := range []string{"createdAt", "created_at"} {
		raw := s.Field(key)
		if raw == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
