package session

import "context"

type managerKey struct{}

// WithManager stores the request's Manager in ctx.
func WithManager(ctx context.Context, m *Manager) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, managerKey{}, m)
}

// ManagerFromContext returns the request's Manager, or nil.
func ManagerFromContext(ctx context.Context) *Manager {
	if ctx == nil {
		return nil
	}
	m, _ := ctx.Value(managerKey{}).(*Manager)
	return m
}
