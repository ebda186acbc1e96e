// Package usecase contains application use cases that orchestrate domain logic.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/dimmer/internal/domain/entity"
	"github.com/bnema/dimmer/internal/domain/repository"
	"github.com/bnema/dimmer/internal/logging"
)

// DefaultThemePreferenceKey is the key the theme mode is stored under
// unless the integrator configures another one. External tools may read
// and write the same key.
const DefaultThemePreferenceKey = "dimmer.theme_mode"

// ErrStorageUnavailable is returned when the preference backend cannot
// be reached or refuses a write.
var ErrStorageUnavailable = errors.New("preference storage unavailable")

// ThemePreferenceStore persists the theme mode under a fixed key.
type ThemePreferenceStore struct {
	repo repository.PreferenceRepository
	key  string
}

// NewThemePreferenceStore creates a store over repo.
// An empty key falls back to DefaultThemePreferenceKey.
func NewThemePreferenceStore(repo repository.PreferenceRepository, key string) *ThemePreferenceStore {
	if key == "" {
		key = DefaultThemePreferenceKey
	}
	return &ThemePreferenceStore{repo: repo, key: key}
}

// Key returns the key the mode is stored under.
func (s *ThemePreferenceStore) Key() string {
	return s.key
}

// Load reads the persisted preferences.
// Returns ok=false if nothing was ever saved, the stored value is not a
// known mode, or the backend could not be read. It never fails.
func (s *ThemePreferenceStore) Load(ctx context.Context) (entity.ThemePreferences, bool) {
	log := logging.FromContext(ctx)

	raw, found, err := s.repo.Get(ctx, s.key)
	if err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("failed to read theme preference")
		return entity.ThemePreferences{}, false
	}
	if !found {
		log.Debug().Str("key", s.key).Msg("no stored theme preference")
		return entity.ThemePreferences{}, false
	}

	prefs, ok := entity.DecodeThemePreferences(raw)
	if !ok {
		log.Debug().Str("key", s.key).Str("value", raw).Msg("ignoring unrecognized theme preference")
		return entity.ThemePreferences{}, false
	}
	return prefs, true
}

// Save writes prefs under the store key. Failures are not retried.
func (s *ThemePreferenceStore) Save(ctx context.Context, prefs entity.ThemePreferences) error {
	log := logging.FromContext(ctx)

	raw, err := prefs.Encode()
	if err != nil {
		return fmt.Errorf("encode theme preference: %w", err)
	}

	if err := s.repo.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrStorageUnavailable, s.key, err)
	}

	log.Debug().Str("key", s.key).Str("mode", raw).Msg("theme preference saved")
	return nil
}

// Clear removes the stored preference so that Load reports absent again.
func (s *ThemePreferenceStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("%w: clear %s: %w", ErrStorageUnavailable, s.key, err)
	}

	logging.FromContext(ctx).Debug().Str("key", s.key).Msg("theme preference cleared")
	return nil
}

// GetThemeMode returns the most recently persisted mode without any
// live theme manager, e.g. before a UI session exists.
func GetThemeMode(ctx context.Context, store *ThemePreferenceStore) (entity.ThemeMode, bool) {
	prefs, ok := store.Load(ctx)
	if !ok {
		return entity.ThemeModeLight, false
	}
	return prefs.Mode, true
}
