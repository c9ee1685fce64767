package storage

import "context"

// SessionValueStore persists session values partitioned by browser id.
type SessionValueStore interface {
	GetSessionValue(ctx context.Context, browserID, key string) (string, bool, error)
	// PutSessionValues writes all entries for browserID in one transaction.
	PutSessionValues(ctx context.Context, browserID string, entries map[string]string) error
	DeleteSessionValues(ctx context.Context, browserID string, keys ...string) error
}

// Store is a composite interface for admin storage concerns.
type Store interface {
	SessionValueStore
	Close() error
}
