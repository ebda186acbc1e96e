package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bnema/dimmer/internal/application/usecase"
	"github.com/bnema/dimmer/internal/domain/entity"
	"github.com/bnema/dimmer/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dimmer/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func TestPreferenceRepository_CRUD(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "dimmer.db")

	db, err := sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewPreferenceRepository(db)

	_, found, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, "theme", "dark"))
	value, found, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", value)

	require.NoError(t, repo.Set(ctx, "theme", "system"))
	value, _, err = repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "system", value)

	require.NoError(t, repo.Delete(ctx, "theme"))
	_, found, err = repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting again is not an error.
	require.NoError(t, repo.Delete(ctx, "theme"))
}

func TestPreferenceRepository_SurvivesReopen(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "nested", "dimmer.db")

	db, err := sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	store := usecase.NewThemePreferenceStore(sqlite.NewPreferenceRepository(db), "")
	require.NoError(t, store.Save(ctx, entity.ThemePreferences{Mode: entity.ThemeModeDark}))
	require.NoError(t, db.Close())

	reopened, err := sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	store = usecase.NewThemePreferenceStore(sqlite.NewPreferenceRepository(reopened), "")
	mode, ok := usecase.GetThemeMode(ctx, store)
	require.True(t, ok)
	assert.Equal(t, entity.ThemeModeDark, mode)

	version, err := sqlite.GetMigrationStatus(ctx, reopened)
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)
}

func TestPreferenceRepository_ClosedDatabase(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "dimmer.db"))
	require.NoError(t, err)
	repo := sqlite.NewPreferenceRepository(db)
	require.NoError(t, db.Close())

	assert.Error(t, repo.Set(ctx, "theme", "dark"))

	store := usecase.NewThemePreferenceStore(repo, "theme")
	err = store.Save(ctx, entity.ThemePreferences{Mode: entity.ThemeModeDark})
	assert.ErrorIs(t, err, usecase.ErrStorageUnavailable)

	_, ok := store.Load(ctx)
	assert.False(t, ok)
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	assert.Error(t, err)
}
