package tx

import "context"

// Manager wraps the session-mutation plus book-reconciliation boundary.
// Mutations are single-writer and run to completion, so the production
// manager is a no-op; tests can substitute one that observes boundaries.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
