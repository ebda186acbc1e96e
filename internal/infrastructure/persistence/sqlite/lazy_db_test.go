package sqlite_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bnema/dimmer/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyDB_NotInitializedByDefault(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	lazy := sqlite.NewLazyDB(dbPath)

	assert.False(t, lazy.IsInitialized())
	assert.Equal(t, dbPath, lazy.Path())

	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err), "database file must not exist before first access")

	// Close without ever calling DB() should not error
	assert.NoError(t, lazy.Close())
}

func TestLazyDB_ConcurrentAccessSharesConnection(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	const goroutines = 8
	var wg sync.WaitGroup
	dbs := make([]*sql.DB, goroutines)
	errs := make([]error, goroutines)

	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dbs[i], errs[i] = lazy.DB(ctx)
		}()
	}
	wg.Wait()

	for i := range goroutines {
		require.NoError(t, errs[i])
		assert.Same(t, dbs[0], dbs[i])
	}
	assert.True(t, lazy.IsInitialized())
}

func TestLazyPreferenceRepository_DefersOpen(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	lazy := sqlite.NewLazyDB(dbPath)
	t.Cleanup(func() { _ = lazy.Close() })

	repo := sqlite.NewLazyPreferenceRepository(lazy)
	assert.False(t, lazy.IsInitialized())

	require.NoError(t, repo.Set(ctx, "theme", "light"))
	assert.True(t, lazy.IsInitialized())

	value, found, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "light", value)

	require.NoError(t, repo.Delete(ctx, "theme"))
}

func TestLazyPreferenceRepository_InitFailure(t *testing.T) {
	ctx := testCtx()

	// A regular file where the database directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	repo := sqlite.NewLazyPreferenceRepository(sqlite.NewLazyDB(filepath.Join(blocker, "test.db")))

	_, _, err := repo.Get(ctx, "theme")
	assert.Error(t, err)
	assert.Error(t, repo.Set(ctx, "theme", "dark"))
	assert.Error(t, repo.Delete(ctx, "theme"))
}
