// Package model holds the bubbletea models of the interactive commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dimmer/internal/application/port"
	"github.com/bnema/dimmer/internal/cli/styles"
	"github.com/bnema/dimmer/internal/ui/mainloop"
	"github.com/bnema/dimmer/internal/ui/theme"
)

// workMsg means the theme loop has queued work.
type workMsg struct{}

// PreviewModel shows both palettes and lets the user switch modes. The
// bubbletea event loop doubles as the theme manager's loop: the manager
// posts to loop, and Update drains it.
type PreviewModel struct {
	ctx        context.Context
	manager    *theme.Manager[theme.Palette]
	loop       *mainloop.Loop
	brightness port.BrightnessSource

	keys    styles.PreviewKeyMap
	help    help.Model
	status  string
	renders int
	width   int

	light theme.Palette
	dark  theme.Palette
}

// NewPreviewModel creates the model. The manager must post to loop.
func NewPreviewModel(ctx context.Context, manager *theme.Manager[theme.Palette], loop *mainloop.Loop, brightness port.BrightnessSource) *PreviewModel {
	m := &PreviewModel{
		ctx:        ctx,
		manager:    manager,
		loop:       loop,
		brightness: brightness,
		keys:       styles.DefaultPreviewKeyMap(),
		light:      manager.Light(),
		dark:       manager.Dark(),
		width:      80,
	}
	m.help = styles.NewStyledHelp(styles.NewTheme(manager.Theme()))
	return m
}

// Render is the manager's render callback. It runs inside Update.
func (m *PreviewModel) Render(light, dark theme.Palette) {
	m.light, m.dark = light, dark
	m.renders++
	m.help = styles.NewStyledHelp(styles.NewTheme(m.manager.Theme()))
}

// PersistFailed is the manager's persist-error callback. It runs inside Update.
func (m *PreviewModel) PersistFailed(err error) {
	m.status = "not saved: " + err.Error()
}

// Renders counts render callbacks, for tests.
func (m *PreviewModel) Renders() int {
	return m.renders
}

func (m *PreviewModel) waitForWork() tea.Cmd {
	wake := m.loop.Wakeup()
	done := m.ctx.Done()
	return func() tea.Msg {
		select {
		case <-wake:
			return workMsg{}
		case <-done:
			return nil
		}
	}
}

// Init implements tea.Model.
func (m *PreviewModel) Init() tea.Cmd {
	return m.waitForWork()
}

// Update implements tea.Model.
func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workMsg:
		m.loop.Drain()
		return m, m.waitForWork()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *PreviewModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Light):
		m.manager.SetLight(m.ctx)
		m.status = ""
	case key.Matches(msg, m.keys.Dark):
		m.manager.SetDark(m.ctx)
		m.status = ""
	case key.Matches(msg, m.keys.System):
		m.manager.SetSystem(m.ctx)
		m.status = ""
	case key.Matches(msg, m.keys.Toggle):
		m.manager.Toggle(m.ctx)
		m.status = ""
	case key.Matches(msg, m.keys.Reset):
		if m.manager.Reset(m.ctx) {
			m.status = "restored defaults"
		} else {
			m.status = "already at defaults"
		}
	}
	return nil
}

// View implements tea.Model.
func (m *PreviewModel) View() string {
	effective := m.manager.Theme()
	t := styles.NewTheme(effective)
	mode := m.manager.Mode()

	header := fmt.Sprintf("%s %s %s",
		t.Highlight.Render(styles.ModeIcon(mode)+" "+mode.String()),
		t.Subtle.Render(styles.IconArrow),
		t.Title.Render(effective.Name),
	)
	if mode.IsSystem() && m.brightness != nil {
		header += t.Subtle.Render(" (" + m.brightness.Resolve().Source + ")")
	}
	if !m.manager.IsDefault() {
		header += " " + t.BadgeMuted.Render("modified")
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPanel(m.light, effective.Name == m.light.Name),
		"  ",
		m.renderPanel(m.dark, effective.Name == m.dark.Name && m.light.Name != m.dark.Name),
	)

	var sb strings.Builder
	sb.WriteString("\n  " + header + "\n\n")
	sb.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(panels))
	sb.WriteString("\n")
	if m.status != "" {
		sb.WriteString("\n  " + t.WarningStyle.Render(m.status) + "\n")
	}
	sb.WriteString("\n  " + m.help.View(m.keys) + "\n")
	return sb.String()
}

func (m *PreviewModel) renderPanel(p theme.Palette, active bool) string {
	t := styles.NewTheme(p)
	body := styles.NewStatusRenderer(t).RenderPalette(p)
	box := t.Box
	if active {
		box = box.BorderForeground(t.Accent)
	}
	return box.Render(body)
}
