package styles

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderPaths renders the config and storage locations.
func (r *ConfigRenderer) RenderPaths(configFile, backend, storagePath string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	pathStyle := r.theme.Subtle

	return fmt.Sprintf(
		"\n  %s Config  %s\n  %s Storage %s %s\n",
		iconStyle.Render(IconConfig),
		pathStyle.Render(configFile),
		iconStyle.Render(IconDatabase),
		r.theme.BadgeMuted.Render(backend),
		pathStyle.Render(storagePath),
	)
}

// RenderSchemaWritten renders the success message after writing the schema.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)

	return fmt.Sprintf(
		"\n  %s Wrote %s\n  %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Highlight.Render(filepath.Base(path)),
		r.theme.Subtle.Render(path),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)

	return fmt.Sprintf(
		"\n  %s Config error: %v\n",
		iconStyle.Render(IconX),
		err,
	)
}
