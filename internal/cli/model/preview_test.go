package model

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dimmer/internal/domain/entity"
	"github.com/bnema/dimmer/internal/ui/mainloop"
	"github.com/bnema/dimmer/internal/ui/theme"
)

func newTestPreview(t *testing.T, mode entity.ThemeMode) (*PreviewModel, *theme.Manager[theme.Palette]) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	loop := mainloop.NewLoop()
	var preview *PreviewModel
	manager := theme.NewManager[theme.Palette](nil, nil, theme.WithPost(loop.Post))
	manager.Initialize(ctx, theme.DefaultLightPalette(), theme.DefaultDarkPalette(), mode,
		func(light, dark theme.Palette) { preview.Render(light, dark) })
	t.Cleanup(manager.Close)

	preview = NewPreviewModel(ctx, manager, loop, nil)
	return preview, manager
}

func press(m *PreviewModel, keys string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	m.Update(workMsg{})
}

func TestPreviewModel_ModeKeys(t *testing.T) {
	m, manager := newTestPreview(t, entity.ThemeModeLight)
	m.Update(workMsg{})

	press(m, "d")
	assert.Equal(t, entity.ThemeModeDark, manager.Mode())
	assert.Equal(t, 1, m.Renders())
	assert.Equal(t, theme.DefaultDarkPalette(), m.light, "dark mode renders dark on both sides")

	press(m, "s")
	assert.Equal(t, entity.ThemeModeSystem, manager.Mode())
	assert.Equal(t, theme.DefaultLightPalette(), m.light)
	assert.Equal(t, theme.DefaultDarkPalette(), m.dark)

	press(m, "t")
	assert.Equal(t, entity.ThemeModeLight, manager.Mode(), "system without brightness resolves dark, so toggle picks light")

	press(m, "r")
	assert.Equal(t, "already at defaults", m.status)

	press(m, "d")
	press(m, "r")
	assert.Equal(t, "restored defaults", m.status)
	assert.True(t, manager.IsDefault())
}

func TestPreviewModel_RendersOnlyWhenLoopDrains(t *testing.T) {
	m, _ := newTestPreview(t, entity.ThemeModeLight)
	m.Update(workMsg{})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	assert.Zero(t, m.Renders())

	_, cmd := m.Update(workMsg{})
	assert.Equal(t, 1, m.Renders())
	require.NotNil(t, cmd)
}

func TestPreviewModel_QuitAndView(t *testing.T) {
	m, _ := newTestPreview(t, entity.ThemeModeDark)
	m.Update(workMsg{})

	view := m.View()
	assert.Contains(t, view, "dark")
	assert.Contains(t, view, theme.DefaultDarkPalette().Background)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPreviewModel_PersistFailed(t *testing.T) {
	m, _ := newTestPreview(t, entity.ThemeModeLight)
	m.PersistFailed(assert.AnError)
	assert.Contains(t, m.View(), assert.AnError.Error())
}
