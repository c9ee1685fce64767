package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/goalinstitute/admin-console/internal/platform/storage/sqlitemigrate"
	"github.com/goalinstitute/admin-console/internal/services/admin/session"
	"github.com/goalinstitute/admin-console/internal/services/admin/storage"
	"github.com/goalinstitute/admin-console/internal/services/admin/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// Store provides a SQLite-backed store implementing admin storage interfaces.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite store at the provided path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetSessionValue returns one value for a browser.
func (s *Store) GetSessionValue(ctx context.Context, browserID, key string) (string, bool, error) {
	if err := s.check(ctx, browserID); err != nil {
		return "", false, err
	}
	var value string
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT value FROM session_values WHERE browser_id = ? AND key = ?",
		browserID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get session value: %w", err)
	}
	return value, true, nil
}

// PutSessionValues upserts every entry in one transaction.
func (s *Store) PutSessionValues(ctx context.Context, browserID string, entries map[string]string) error {
	if err := s.check(ctx, browserID); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	updatedAt := s.now().UTC().Format(timeFormat)

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put session values: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range entries {
		if _, err := tx.ExecContext(ctx, `INSERT INTO session_values (browser_id, key, value, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (browser_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			browserID, key, value, updatedAt,
		); err != nil {
			return fmt.Errorf("put session value %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session values: %w", err)
	}
	return nil
}

// DeleteSessionValues removes keys for a browser in one transaction.
func (s *Store) DeleteSessionValues(ctx context.Context, browserID string, keys ...string) error {
	if err := s.check(ctx, browserID); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete session values: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM session_values WHERE browser_id = ? AND key = ?",
			browserID, key,
		); err != nil {
			return fmt.Errorf("delete session value %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session delete: %w", err)
	}
	return nil
}

// PurgeBefore drops every value last written before cutoff and returns the
// number of rows removed.
func (s *Store) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	res, err := s.sqlDB.ExecContext(ctx,
		"DELETE FROM session_values WHERE updated_at < ?",
		cutoff.UTC().Format(timeFormat),
	)
	if err != nil {
		return 0, fmt.Errorf("purge session values: %w", err)
	}
	return res.RowsAffected()
}

// Namespace returns the session medium for one browser.
func (s *Store) Namespace(browserID string) session.KV {
	return namespace{store: s, browserID: browserID}
}

func (s *Store) check(ctx context.Context, browserID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(browserID) == "" {
		return fmt.Errorf("browser id is required")
	}
	return nil
}

type namespace struct {
	store     *Store
	browserID string
}

func (n namespace) Get(ctx context.Context, key string) (string, bool, error) {
	return n.store.GetSessionValue(ctx, n.browserID, key)
}

func (n namespace) Put(ctx context.Context, entries map[string]string) error {
	return n.store.PutSessionValues(ctx, n.browserID, entries)
}

func (n namespace) Delete(ctx context.Context, keys ...string) error {
	return n.store.DeleteSessionValues(ctx, n.browserID, keys...)
}

var (
	_ storage.Store      = (*Store)(nil)
	_ session.Namespaces = (*Store)(nil)
)
