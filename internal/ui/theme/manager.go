// Package theme owns the light/dark/system theme selection of a UI
// session: the current mode and theme values, write-through persistence of
// the mode, and refresh notifications for renderers.
package theme

import (
	"context"
	"sync"

	"github.com/bnema/dimmer/internal/application/port"
	"github.com/bnema/dimmer/internal/domain/entity"
	"github.com/bnema/dimmer/internal/logging"
	"github.com/bnema/dimmer/internal/ui/mainloop"
)

const refreshKey = "theme-refresh"

// PreferenceStore persists the theme mode. *usecase.ThemePreferenceStore
// satisfies it.
type PreferenceStore interface {
	Load(ctx context.Context) (entity.ThemePreferences, bool)
	Save(ctx context.Context, prefs entity.ThemePreferences) error
}

// RenderFunc receives the pair of themes to render. In Light mode both are
// the light theme, in Dark mode both are the dark theme, in System mode
// they are (light, dark) and the renderer may pick by brightness itself.
type RenderFunc[T comparable] func(light, dark T)

// Update selects the fields SetTheme changes. Nil fields keep their value.
type Update[T comparable] struct {
	Light *T
	Dark  *T
	Mode  *entity.ThemeMode
	// Silent skips the refresh; the caller forces one itself.
	Silent bool
	// NoPersist applies Mode without writing it, for modes read back
	// from the store.
	NoPersist bool
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	post           func(func())
	onPersistError func(error)
}

// WithPost sets the function that schedules work on the UI event loop.
// Refreshes, load completions and persist-error reports run through it.
// The default runs work immediately on the calling goroutine.
func WithPost(post func(func())) Option {
	return func(o *options) {
		if post != nil {
			o.post = post
		}
	}
}

// WithPersistErrorHandler registers a callback for failed mode writes.
// It runs on the event loop and is never called after Close.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(o *options) { o.onPersistError = fn }
}

type snapshot[T comparable] struct {
	light T
	dark  T
	mode  entity.ThemeMode
}

type subscriber[T comparable] struct {
	fn RenderFunc[T]
}

// Manager is the theme state machine. Queries are safe from any goroutine;
// callbacks never run while the internal lock is held.
type Manager[T comparable] struct {
	store          PreferenceStore
	brightness     port.BrightnessSource
	post           func(func())
	onPersistError func(error)
	refresher      *mainloop.Coalescer

	mu          sync.Mutex
	logCtx      context.Context
	state       snapshot[T]
	defaults    snapshot[T]
	generation  uint64
	loading     bool
	modeDirty   bool
	closed      bool
	render      RenderFunc[T]
	subscribers []*subscriber[T]
	unsubscribe func()
	ready       chan struct{}
	readyClosed bool

	closeOnce sync.Once
	inflight  sync.WaitGroup
}

// NewManager creates a manager. store may be nil (nothing is persisted);
// brightness may be nil (System resolves to dark).
func NewManager[T comparable](store PreferenceStore, brightness port.BrightnessSource, opts ...Option) *Manager[T] {
	o := options{post: mainloop.Inline}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Manager[T]{
		store:          store,
		brightness:     brightness,
		post:           o.post,
		onPersistError: o.onPersistError,
		logCtx:         context.Background(),
		ready:          make(chan struct{}),
	}
	m.refresher = mainloop.NewCoalescer(m.post)
	return m
}

// Initialize sets the provisional state, captures the default snapshot and
// starts loading the persisted mode. A persisted mode, once loaded,
// replaces initialMode unless the mode was set explicitly in the meantime.
// Initialize never writes the store. render may be nil.
func (m *Manager[T]) Initialize(ctx context.Context, light, dark T, initialMode entity.ThemeMode, render RenderFunc[T]) {
	logCtx := logging.WithComponent(ctx, "theme")

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.logCtx = logCtx
	m.state = snapshot[T]{light: light, dark: dark, mode: initialMode}
	m.defaults = m.state
	m.render = render
	m.generation++
	gen := m.generation
	m.modeDirty = false
	if m.readyClosed {
		m.ready = make(chan struct{})
		m.readyClosed = false
	}
	subscribe := m.unsubscribe == nil && m.brightness != nil
	m.loading = m.store != nil
	m.mu.Unlock()

	logging.FromContext(logCtx).Debug().Str("initial_mode", initialMode.String()).Msg("theme manager initialized")

	if subscribe {
		unsubscribe := m.brightness.OnChange(m.onBrightnessChange)
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			unsubscribe()
			return
		}
		m.unsubscribe = unsubscribe
		m.mu.Unlock()
	}

	if m.store == nil {
		m.post(func() { m.finishLoad(gen, entity.ThemePreferences{}, false) })
		return
	}

	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		prefs, found := m.store.Load(context.WithoutCancel(logCtx))
		m.post(func() { m.finishLoad(gen, prefs, found) })
	}()
}

// finishLoad runs on the event loop.
func (m *Manager[T]) finishLoad(gen uint64, prefs entity.ThemePreferences, found bool) {
	m.mu.Lock()
	if m.closed || gen != m.generation {
		m.mu.Unlock()
		return
	}
	m.loading = false
	apply := found && !m.modeDirty
	if apply {
		m.state.mode = prefs.Mode
	}
	m.closeReadyLocked()
	logCtx := m.logCtx
	m.mu.Unlock()

	log := logging.FromContext(logCtx)
	switch {
	case apply:
		log.Debug().Str("mode", prefs.Mode.String()).Msg("restored persisted theme mode")
		m.requestRefresh()
	case found:
		log.Debug().Str("mode", prefs.Mode.String()).Msg("persisted theme mode ignored, mode changed during load")
	default:
		log.Debug().Msg("no persisted theme mode")
	}
}

// closeReadyLocked requires m.mu.
func (m *Manager[T]) closeReadyLocked() {
	if !m.readyClosed {
		close(m.ready)
		m.readyClosed = true
	}
}

// Ready is closed once the load started by the latest Initialize settled,
// or when the manager is closed.
func (m *Manager[T]) Ready() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

// SetTheme updates any subset of light, dark and mode. A changed mode is
// written to the store in the background; failures are logged and
// reported to the persist-error handler, never returned.
func (m *Manager[T]) SetTheme(ctx context.Context, u Update[T]) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	if u.Light != nil {
		m.state.light = *u.Light
	}
	if u.Dark != nil {
		m.state.dark = *u.Dark
	}
	persist := false
	if u.Mode != nil {
		// While the load is pending the stored value may differ from the
		// provisional mode, so an explicit choice is always written.
		persist = !u.NoPersist && (*u.Mode != m.state.mode || m.loading)
		m.state.mode = *u.Mode
		m.modeDirty = true
	}
	mode := m.state.mode
	m.mu.Unlock()

	if persist {
		m.persist(ctx, mode)
	}
	if !u.Silent {
		m.requestRefresh()
	}
}

// SetMode changes only the mode.
func (m *Manager[T]) SetMode(ctx context.Context, mode entity.ThemeMode) {
	m.SetTheme(ctx, Update[T]{Mode: &mode})
}

// SetLight switches to the light theme.
func (m *Manager[T]) SetLight(ctx context.Context) { m.SetMode(ctx, entity.ThemeModeLight) }

// SetDark switches to the dark theme.
func (m *Manager[T]) SetDark(ctx context.Context) { m.SetMode(ctx, entity.ThemeModeDark) }

// SetSystem follows the OS brightness.
func (m *Manager[T]) SetSystem(ctx context.Context) { m.SetMode(ctx, entity.ThemeModeSystem) }

// Toggle flips between light and dark. From System it picks the opposite
// of what the OS currently resolves to.
func (m *Manager[T]) Toggle(ctx context.Context) entity.ThemeMode {
	mode := m.Mode()
	next := mode.Toggle(mode.IsSystem() && m.PrefersDark())
	m.SetMode(ctx, next)
	return next
}

// Reset restores the default snapshot with a single refresh. It returns
// false, and touches nothing, when the state already equals the defaults.
// The mode is only set, and written, when it differs from the default.
func (m *Manager[T]) Reset(ctx context.Context) bool {
	m.mu.Lock()
	if m.closed || m.state == m.defaults {
		m.mu.Unlock()
		return false
	}
	d := m.defaults
	modeChanged := m.state.mode != d.mode
	m.mu.Unlock()

	u := Update[T]{Light: &d.light, Dark: &d.dark, Silent: true}
	if modeChanged {
		u.Mode = &d.mode
	}
	m.SetTheme(ctx, u)
	m.requestRefresh()
	return true
}

// IsDefault reports whether light, dark and mode all equal the values
// captured by the latest Initialize.
func (m *Manager[T]) IsDefault() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == m.defaults
}

// Mode returns the current mode.
func (m *Manager[T]) Mode() entity.ThemeMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.mode
}

// Light returns the current light theme.
func (m *Manager[T]) Light() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.light
}

// Dark returns the current dark theme.
func (m *Manager[T]) Dark() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.dark
}

// PrefersDark asks the brightness source. Without one it reports dark.
func (m *Manager[T]) PrefersDark() bool {
	if m.brightness == nil {
		return true
	}
	return m.brightness.Resolve().PrefersDark
}

// ResolvesDark reports whether the effective theme is the dark one.
func (m *Manager[T]) ResolvesDark() bool {
	mode := m.Mode()
	return mode.ResolvesDark(mode.IsSystem() && m.PrefersDark())
}

// Theme returns the effective theme. In System mode the brightness source
// is consulted on every call.
func (m *Manager[T]) Theme() T {
	dark := m.ResolvesDark()

	m.mu.Lock()
	defer m.mu.Unlock()
	if dark {
		return m.state.dark
	}
	return m.state.light
}

// Subscribe registers an additional render callback. It runs on the event
// loop after every visible change, after the Initialize callback.
func (m *Manager[T]) Subscribe(fn RenderFunc[T]) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s := &subscriber[T]{fn: fn}
	m.mu.Lock()
	m.subscribers = append(m.subscribers, s)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, sub := range m.subscribers {
			if sub == s {
				m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Close releases the brightness subscription and drops pending refreshes.
// Load and write completions arriving later are ignored. Idempotent.
func (m *Manager[T]) Close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		unsubscribe := m.unsubscribe
		m.unsubscribe = nil
		m.closeReadyLocked()
		logCtx := m.logCtx
		m.mu.Unlock()

		m.refresher.Destroy()
		if unsubscribe != nil {
			unsubscribe()
		}
		logging.FromContext(logCtx).Debug().Msg("theme manager closed")
	})
}

// Wait blocks until the initial load and every started write finished.
func (m *Manager[T]) Wait() {
	m.inflight.Wait()
}

// onBrightnessChange may run on any goroutine.
func (m *Manager[T]) onBrightnessChange() {
	m.mu.Lock()
	active := !m.closed && m.state.mode.IsSystem()
	m.mu.Unlock()

	if active {
		m.requestRefresh()
	}
}

func (m *Manager[T]) requestRefresh() {
	m.refresher.Post(refreshKey, m.refresh)
}

// refresh runs on the event loop.
func (m *Manager[T]) refresh() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	light, dark := renderPair(m.state)
	callbacks := make([]RenderFunc[T], 0, len(m.subscribers)+1)
	if m.render != nil {
		callbacks = append(callbacks, m.render)
	}
	for _, s := range m.subscribers {
		callbacks = append(callbacks, s.fn)
	}
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(light, dark)
	}
}

func renderPair[T comparable](s snapshot[T]) (light, dark T) {
	light, dark = s.light, s.dark
	switch s.mode {
	case entity.ThemeModeDark:
		light = s.dark
	case entity.ThemeModeLight:
		dark = s.light
	}
	return light, dark
}

func (m *Manager[T]) persist(ctx context.Context, mode entity.ThemeMode) {
	m.mu.Lock()
	logCtx := m.logCtx
	m.mu.Unlock()
	if ctx == nil {
		ctx = logCtx
	}
	if m.store == nil {
		return
	}

	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()

		err := m.store.Save(context.WithoutCancel(ctx), entity.ThemePreferences{Mode: mode})
		if err == nil {
			logging.FromContext(logCtx).Debug().Str("mode", mode.String()).Msg("theme mode persisted")
			return
		}

		logging.FromContext(logCtx).Warn().Err(err).Str("mode", mode.String()).Msg("failed to persist theme mode")
		if m.onPersistError == nil {
			return
		}
		m.post(func() {
			m.mu.Lock()
			closed := m.closed
			m.mu.Unlock()
			if !closed {
				m.onPersistError(err)
			}
		})
	}()
}
