package theme

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoManager is the panic value of MustFromContext when no manager of the
// requested theme type was attached.
var ErrNoManager = errors.New("theme: no manager in context")

type managerKey[T comparable] struct{}

// WithManager attaches m to ctx. Managers of different theme types do not
// shadow each other.
func WithManager[T comparable](ctx context.Context, m *Manager[T]) context.Context {
	return context.WithValue(ctx, managerKey[T]{}, m)
}

// FromContext returns the manager attached with WithManager.
func FromContext[T comparable](ctx context.Context) (*Manager[T], bool) {
	if ctx == nil {
		return nil, false
	}
	m, ok := ctx.Value(managerKey[T]{}).(*Manager[T])
	return m, ok && m != nil
}

// MustFromContext is FromContext for callers that run inside a session.
// Using it elsewhere is a programming error and panics with ErrNoManager.
func MustFromContext[T comparable](ctx context.Context) *Manager[T] {
	m, ok := FromContext[T](ctx)
	if !ok {
		var zero T
		panic(fmt.Errorf("%w (theme type %T)", ErrNoManager, zero))
	}
	return m
}
