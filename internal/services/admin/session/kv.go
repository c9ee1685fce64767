package session

import (
	"context"
	"maps"
	"sync"
)

// KV is the persistence medium behind a Store.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Put writes every entry as one unit: after a reload either all of them
	// are visible or none are.
	Put(ctx context.Context, entries map[string]string) error
	// Delete removes the keys; missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// Namespaces hands out one KV per browser. Server-side media implement it.
type Namespaces interface {
	Namespace(browserID string) KV
}

// MemoryKV is an in-process KV.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get implements KV.
func (m *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

// Put implements KV.
func (m *MemoryKV) Put(ctx context.Context, entries map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	maps.Copy(m.values, entries)
	return nil
}

// Delete implements KV.
func (m *MemoryKV) Delete(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryKV) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// MemoryNamespaces keeps one MemoryKV per browser id for the process lifetime.
type MemoryNamespaces struct {
	mu     sync.Mutex
	spaces map[string]*MemoryKV
}

// NewMemoryNamespaces returns an empty namespace set.
func NewMemoryNamespaces() *MemoryNamespaces {
	return &MemoryNamespaces{spaces: make(map[string]*MemoryKV)}
}

// Namespace implements Namespaces.
func (n *MemoryNamespaces) Namespace(browserID string) KV {
	n.mu.Lock()
	defer n.mu.Unlock()
	kv, ok := n.spaces[browserID]
	if !ok {
		kv = NewMemoryKV()
		n.spaces[browserID] = kv
	}
	return kv
}
