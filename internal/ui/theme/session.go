package theme

import (
	"context"
	"sync"

	"github.com/bnema/dimmer/internal/application/port"
	"github.com/bnema/dimmer/internal/domain/entity"
)

// Session ties a Manager to a UI lifecycle: Start on mount, Stop on
// teardown. Brightness changes are followed by the manager itself.
type Session[T comparable] struct {
	manager  *Manager[T]
	stopOnce sync.Once
}

// NewSession creates a session around a new manager.
func NewSession[T comparable](store PreferenceStore, brightness port.BrightnessSource, opts ...Option) *Session[T] {
	return &Session[T]{manager: NewManager[T](store, brightness, opts...)}
}

// Manager returns the session's manager.
func (s *Session[T]) Manager() *Manager[T] {
	return s.manager
}

// Start initializes the manager and returns ctx with the manager attached,
// for descendants that use FromContext.
func (s *Session[T]) Start(ctx context.Context, light, dark T, initialMode entity.ThemeMode, render RenderFunc[T]) context.Context {
	s.manager.Initialize(ctx, light, dark, initialMode, render)
	return WithManager(ctx, s.manager)
}

// Stop tears the manager down. Safe to call more than once.
func (s *Session[T]) Stop() {
	s.stopOnce.Do(s.manager.Close)
}
