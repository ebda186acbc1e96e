package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// PreviewKeyMap defines keybindings for the theme preview.
type PreviewKeyMap struct {
	Light  key.Binding
	Dark   key.Binding
	System key.Binding
	Toggle key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k PreviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k PreviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Light, k.Dark, k.System},
		{k.Toggle, k.Reset},
		{k.Help, k.Quit},
	}
}

// DefaultPreviewKeyMap returns the default preview keybindings.
func DefaultPreviewKeyMap() PreviewKeyMap {
	return PreviewKeyMap{
		Light: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "light"),
		),
		Dark: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dark"),
		),
		System: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "system"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t", " "),
			key.WithHelp("t/space", "toggle"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
