package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/dimmer/internal/application/usecase"
	"github.com/bnema/dimmer/internal/domain/entity"
	repomocks "github.com/bnema/dimmer/internal/domain/repository/mocks"
	"github.com/bnema/dimmer/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func TestNewThemePreferenceStore_DefaultKey(t *testing.T) {
	repo := repomocks.NewMockPreferenceRepository(t)

	assert.Equal(t, usecase.DefaultThemePreferenceKey, usecase.NewThemePreferenceStore(repo, "").Key())
	assert.Equal(t, "app.v2.theme", usecase.NewThemePreferenceStore(repo, "app.v2.theme").Key())
}

func TestThemePreferenceStore_Load(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		found    bool
		err      error
		wantOK   bool
		wantMode entity.ThemeMode
	}{
		{name: "stored dark", value: "dark", found: true, wantOK: true, wantMode: entity.ThemeModeDark},
		{name: "stored system", value: "system", found: true, wantOK: true, wantMode: entity.ThemeModeSystem},
		{name: "legacy index", value: "1", found: true, wantOK: true, wantMode: entity.ThemeModeDark},
		{name: "never written", found: false, wantOK: false},
		{name: "malformed value", value: "sepia", found: true, wantOK: false},
		{name: "backend failure", err: errors.New("disk I/O error"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			repo := repomocks.NewMockPreferenceRepository(t)
			repo.EXPECT().Get(ctx, usecase.DefaultThemePreferenceKey).Return(tt.value, tt.found, tt.err)

			store := usecase.NewThemePreferenceStore(repo, "")
			prefs, ok := store.Load(ctx)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantMode, prefs.Mode)
			}
		})
	}
}

func TestThemePreferenceStore_Save(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockPreferenceRepository(t)
	repo.EXPECT().Set(ctx, "k", "system").Return(nil)

	store := usecase.NewThemePreferenceStore(repo, "k")
	require.NoError(t, store.Save(ctx, entity.ThemePreferences{Mode: entity.ThemeModeSystem}))
}

func TestThemePreferenceStore_Save_StorageUnavailable(t *testing.T) {
	ctx := testContext()
	backendErr := errors.New("database is locked")
	repo := repomocks.NewMockPreferenceRepository(t)
	repo.EXPECT().Set(ctx, "k", "dark").Return(backendErr)

	store := usecase.NewThemePreferenceStore(repo, "k")
	err := store.Save(ctx, entity.ThemePreferences{Mode: entity.ThemeModeDark})

	require.Error(t, err)
	assert.ErrorIs(t, err, usecase.ErrStorageUnavailable)
	assert.ErrorIs(t, err, backendErr)
}

func TestThemePreferenceStore_Save_InvalidMode(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockPreferenceRepository(t)

	store := usecase.NewThemePreferenceStore(repo, "k")
	err := store.Save(ctx, entity.ThemePreferences{Mode: entity.ThemeMode(9)})

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrUnknownThemeMode)
	assert.NotErrorIs(t, err, usecase.ErrStorageUnavailable)
}

func TestThemePreferenceStore_Clear(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockPreferenceRepository(t)
	repo.EXPECT().Delete(ctx, "k").Return(nil).Once()
	repo.EXPECT().Delete(ctx, "k").Return(errors.New("read-only filesystem")).Once()

	store := usecase.NewThemePreferenceStore(repo, "k")
	require.NoError(t, store.Clear(ctx))

	err := store.Clear(ctx)
	assert.ErrorIs(t, err, usecase.ErrStorageUnavailable)
}

func TestGetThemeMode(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockPreferenceRepository(t)
	repo.EXPECT().Get(ctx, "k").Return("dark", true, nil).Once()
	repo.EXPECT().Get(ctx, "k").Return("", false, nil).Once()

	store := usecase.NewThemePreferenceStore(repo, "k")

	mode, ok := usecase.GetThemeMode(ctx, store)
	require.True(t, ok)
	assert.Equal(t, entity.ThemeModeDark, mode)

	_, ok = usecase.GetThemeMode(ctx, store)
	assert.False(t, ok)
}
