// Package file implements the preference repository as a single TOML
// document, rewritten atomically on every change.
package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"

	"github.com/bnema/dimmer/internal/domain/repository"
	"github.com/bnema/dimmer/internal/logging"
)

const dirPerm = 0o750

// document is the on-disk layout:
//
//	[preferences]
//	"dimmer.theme_mode" = "dark"
type document struct {
	Preferences map[string]string `toml:"preferences"`
}

// PreferenceRepository stores preferences in a TOML file.
type PreferenceRepository struct {
	path string
	mu   sync.Mutex
}

var _ repository.PreferenceRepository = (*PreferenceRepository)(nil)

// NewPreferenceRepository creates a repository backed by the file at path.
// The file and its directory are created on first write.
func NewPreferenceRepository(path string) *PreferenceRepository {
	return &PreferenceRepository{path: path}
}

// Path returns the backing file path.
func (r *PreferenceRepository) Path() string {
	return r.path
}

// Get implements repository.PreferenceRepository.
func (r *PreferenceRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return "", false, err
	}
	value, found := doc.Preferences[key]
	return value, found, nil
}

// Set implements repository.PreferenceRepository.
func (r *PreferenceRepository) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return err
	}
	doc.Preferences[key] = value

	logging.FromContext(ctx).Debug().Str("key", key).Str("path", r.path).Msg("writing preference file")
	return r.write(doc)
}

// Delete implements repository.PreferenceRepository.
func (r *PreferenceRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return err
	}
	if _, found := doc.Preferences[key]; !found {
		return nil
	}
	delete(doc.Preferences, key)
	return r.write(doc)
}

// read must be called with r.mu held. A missing file is an empty document.
func (r *PreferenceRepository) read() (*document, error) {
	doc := &document{}

	data, err := os.ReadFile(r.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read preference file %s: %w", r.path, err)
	default:
		if _, err := toml.Decode(string(data), doc); err != nil {
			return nil, fmt.Errorf("parse preference file %s: %w", r.path, err)
		}
	}

	if doc.Preferences == nil {
		doc.Preferences = make(map[string]string)
	}
	return doc, nil
}

// write must be called with r.mu held.
func (r *PreferenceRepository) write(doc *document) error {
	if err := os.MkdirAll(filepath.Dir(r.path), dirPerm); err != nil {
		return fmt.Errorf("create preference directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("encode preference file: %w", err)
	}

	if err := atomic.WriteFile(r.path, &buf); err != nil {
		return fmt.Errorf("write preference file %s: %w", r.path, err)
	}
	return nil
}
