package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/dimmer/internal/application/usecase"
	"github.com/bnema/dimmer/internal/domain/entity"
	"github.com/bnema/dimmer/internal/infrastructure/persistence/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRepository_MissingFileIsEmpty(t *testing.T) {
	repo := file.NewPreferenceRepository(filepath.Join(t.TempDir(), "prefs.toml"))

	_, found, err := repo.Get(context.Background(), "theme")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Delete(context.Background(), "theme"))
	_, err = os.Stat(repo.Path())
	assert.True(t, os.IsNotExist(err), "deleting a missing key must not create the file")
}

func TestPreferenceRepository_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "prefs.toml")
	repo := file.NewPreferenceRepository(path)

	require.NoError(t, repo.Set(ctx, "dimmer.theme_mode", "dark"))
	require.NoError(t, repo.Set(ctx, "other.key", "kept"))

	value, found, err := repo.Get(ctx, "dimmer.theme_mode")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", value)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[preferences]")
	assert.Contains(t, string(data), `"dimmer.theme_mode" = "dark"`)

	require.NoError(t, repo.Delete(ctx, "dimmer.theme_mode"))
	_, found, err = repo.Get(ctx, "dimmer.theme_mode")
	require.NoError(t, err)
	assert.False(t, found)

	value, found, err = repo.Get(ctx, "other.key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "kept", value)
}

func TestPreferenceRepository_SharedAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.toml")

	writer := usecase.NewThemePreferenceStore(file.NewPreferenceRepository(path), "")
	require.NoError(t, writer.Save(ctx, entity.ThemePreferences{Mode: entity.ThemeModeSystem}))

	reader := usecase.NewThemePreferenceStore(file.NewPreferenceRepository(path), "")
	mode, ok := usecase.GetThemeMode(ctx, reader)
	require.True(t, ok)
	assert.Equal(t, entity.ThemeModeSystem, mode)
}

func TestPreferenceRepository_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("[preferences\nnot toml"), 0o600))

	repo := file.NewPreferenceRepository(path)

	_, _, err := repo.Get(ctx, "theme")
	assert.Error(t, err)
	assert.Error(t, repo.Set(ctx, "theme", "dark"), "a corrupt file must not be silently overwritten")

	store := usecase.NewThemePreferenceStore(repo, "theme")
	_, ok := store.Load(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, store.Clear(ctx), usecase.ErrStorageUnavailable)
}

func TestPreferenceRepository_UnknownValueDecodesAbsent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("[preferences]\n\"dimmer.theme_mode\" = \"sepia\"\n"), 0o600))

	store := usecase.NewThemePreferenceStore(file.NewPreferenceRepository(path), "")
	_, ok := store.Load(ctx)
	assert.False(t, ok)
}
