// Package storage opens the server-side session store.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	adminsqlite "github.com/goalinstitute/admin-console/internal/services/admin/storage/sqlite"
)

// DefaultPath is used when no session database path is configured.
var DefaultPath = filepath.Join("data", "admin.db")

// OpenStore opens the session SQLite store and creates its parent directory
// when needed.
func OpenStore(ctx context.Context, path string) (*adminsqlite.Store, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := adminsqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open admin sqlite store: %w", err)
	}
	return store, nil
}
