// Package colorscheme resolves the operating system's light/dark
// preference from a chain of detectors and notifies subscribers when it
// flips.
package colorscheme

import (
	"sort"
	"strings"
	"sync"

	"github.com/bnema/dimmer/internal/application/port"
)

const (
	// sourceFallback indicates no detector provided the preference.
	sourceFallback = "fallback"
	// sourceConfig indicates the preference came from user config.
	sourceConfig = "config"
)

// ConfigProvider provides access to the system scheme override.
type ConfigProvider interface {
	// GetColorScheme returns the configured system scheme.
	// Expected values: "default", "prefer-dark", "prefer-light", "dark", "light"
	GetColorScheme() string
}

// ConfigProviderFunc adapts a plain function to ConfigProvider.
type ConfigProviderFunc func() string

// GetColorScheme implements ConfigProvider.
func (f ConfigProviderFunc) GetColorScheme() string { return f() }

// subscriber wraps a callback so it can be removed by pointer identity.
type subscriber struct {
	fn func()
}

// Resolver implements port.ColorSchemeResolver.
type Resolver struct {
	mu          sync.RWMutex
	config      ConfigProvider
	detectors   []port.ColorSchemeDetector
	current     port.ColorSchemePreference
	subscribers []*subscriber
}

var _ port.ColorSchemeResolver = (*Resolver)(nil)

// NewResolver creates a new color scheme resolver.
// The config provider may be nil.
func NewResolver(config ConfigProvider) *Resolver {
	return &Resolver{
		config: config,
		current: port.ColorSchemePreference{
			PrefersDark: true, // until the first Refresh
			Source:      sourceFallback,
		},
	}
}

// Resolve implements port.BrightnessSource.
func (r *Resolver) Resolve() port.ColorSchemePreference {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveLocked()
}

// Current returns the preference recorded by the last Refresh.
func (r *Resolver) Current() port.ColorSchemePreference {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// resolveLocked requires at least a read lock.
func (r *Resolver) resolveLocked() port.ColorSchemePreference {
	if r.config != nil {
		if prefersDark, ok := ParseScheme(r.config.GetColorScheme()); ok {
			return port.ColorSchemePreference{PrefersDark: prefersDark, Source: sourceConfig}
		}
	}

	sorted := make([]port.ColorSchemeDetector, len(r.detectors))
	copy(sorted, r.detectors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})

	for _, detector := range sorted {
		if !detector.Available() {
			continue
		}
		if prefersDark, ok := detector.Detect(); ok {
			return port.ColorSchemePreference{PrefersDark: prefersDark, Source: detector.Name()}
		}
	}

	return port.ColorSchemePreference{PrefersDark: true, Source: sourceFallback}
}

// RegisterDetector implements port.ColorSchemeResolver.
func (r *Resolver) RegisterDetector(detector port.ColorSchemeDetector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectors = append(r.detectors, detector)
}

// Detectors returns the registered detectors in registration order.
func (r *Resolver) Detectors() []port.ColorSchemeDetector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]port.ColorSchemeDetector, len(r.detectors))
	copy(out, r.detectors)
	return out
}

// Refresh implements port.ColorSchemeResolver.
// Subscribers are notified only when the brightness actually flipped.
func (r *Resolver) Refresh() port.ColorSchemePreference {
	r.mu.Lock()
	next := r.resolveLocked()
	changed := next.PrefersDark != r.current.PrefersDark
	r.current = next

	var subs []*subscriber
	if changed {
		subs = make([]*subscriber, len(r.subscribers))
		copy(subs, r.subscribers)
	}
	r.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
	return next
}

// OnChange implements port.BrightnessSource.
func (r *Resolver) OnChange(callback func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &subscriber{fn: callback}
	r.subscribers = append(r.subscribers, s)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, cb := range r.subscribers {
			if cb == s {
				r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
				return
			}
		}
	}
}

// ParseScheme interprets a scheme string as used by the config override
// and by gsettings. "default", empty and unknown values are not decisive.
func ParseScheme(scheme string) (prefersDark, ok bool) {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(scheme), `'"`)) {
	case "prefer-dark", "dark":
		return true, true
	case "prefer-light", "light":
		return false, true
	default:
		return false, false
	}
}
