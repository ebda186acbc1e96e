package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dimmer/internal/domain/entity"
	"github.com/bnema/dimmer/internal/ui/theme"
)

// StatusView is what `dimmer status` reports.
type StatusView struct {
	Mode        entity.ThemeMode
	Persisted   bool
	PrefersDark bool
	Source      string
	Effective   string
	Backend     string
	Key         string
}

// StatusRenderer renders theme mode messages.
type StatusRenderer struct {
	theme *Theme
}

// NewStatusRenderer creates a new status renderer with the given theme.
func NewStatusRenderer(theme *Theme) *StatusRenderer {
	return &StatusRenderer{theme: theme}
}

// ModeIcon returns the icon for a mode.
func ModeIcon(mode entity.ThemeMode) string {
	switch mode {
	case entity.ThemeModeDark:
		return IconMoon
	case entity.ThemeModeSystem:
		return IconDesktop
	default:
		return IconSun
	}
}

func brightnessLabel(prefersDark bool) string {
	if prefersDark {
		return "dark"
	}
	return "light"
}

// RenderStatus renders the full status block.
func (r *StatusRenderer) RenderStatus(v StatusView) string {
	keyStyle := r.theme.Subtle
	valStyle := r.theme.Highlight
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)

	origin := "default"
	if v.Persisted {
		origin = "stored"
	}

	lines := []string{
		fmt.Sprintf("%s %s %s %s",
			iconStyle.Render(ModeIcon(v.Mode)), keyStyle.Render("Mode     "),
			valStyle.Render(v.Mode.String()), r.theme.BadgeMuted.Render(origin)),
		fmt.Sprintf("%s %s %s",
			iconStyle.Render(IconEye), keyStyle.Render("Effective"), valStyle.Render(v.Effective)),
		fmt.Sprintf("%s %s %s %s",
			iconStyle.Render(IconDesktop), keyStyle.Render("System   "),
			valStyle.Render(brightnessLabel(v.PrefersDark)), keyStyle.Render("("+v.Source+")")),
		fmt.Sprintf("%s %s %s %s",
			iconStyle.Render(IconDatabase), keyStyle.Render("Storage  "),
			valStyle.Render(v.Backend), keyStyle.Render(v.Key)),
	}

	return "\n  " + strings.Join(lines, "\n  ") + "\n"
}

// RenderModeChanged renders the result of set and toggle.
func (r *StatusRenderer) RenderModeChanged(mode entity.ThemeMode, effective string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)

	return fmt.Sprintf(
		"\n  %s Theme mode %s %s %s\n",
		iconStyle.Render(ModeIcon(mode)),
		r.theme.Highlight.Render(mode.String()),
		r.theme.Subtle.Render(IconArrow),
		r.theme.Normal.Render(effective),
	)
}

// RenderReset renders the result of reset.
func (r *StatusRenderer) RenderReset(changed bool, mode entity.ThemeMode) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	if !changed {
		return fmt.Sprintf("\n  %s Already at defaults (%s)\n", iconStyle.Render(IconCheck), mode)
	}
	return fmt.Sprintf(
		"\n  %s Restored default mode %s\n",
		iconStyle.Render(IconRestore),
		r.theme.Highlight.Render(mode.String()),
	)
}

// RenderCleared renders the result of clear.
func (r *StatusRenderer) RenderCleared(key string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Warning)

	return fmt.Sprintf(
		"\n  %s Removed %s\n",
		iconStyle.Render(IconTrash),
		r.theme.Highlight.Render(key),
	)
}

// RenderWarning renders a non-fatal problem.
func (r *StatusRenderer) RenderWarning(msg string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Warning)
	return fmt.Sprintf("  %s %s\n", iconStyle.Render(IconWarning), r.theme.Subtle.Render(msg))
}

// RenderError renders an error message.
func (r *StatusRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)
	return fmt.Sprintf("\n  %s %v\n", iconStyle.Render(IconX), err)
}

// RenderPalette renders one swatch per token.
func (r *StatusRenderer) RenderPalette(p theme.Palette) string {
	var sb strings.Builder
	sb.WriteString(r.theme.BoxHeader.Render(p.Name))
	sb.WriteString("\n")
	for _, tok := range p.Tokens() {
		swatch := r.theme.Swatch.Background(lipgloss.Color(tok.Value)).Render("")
		fmt.Fprintf(&sb, "%s %s %s\n", swatch, r.theme.Normal.Render(fmt.Sprintf("%-16s", tok.Name)), r.theme.Subtle.Render(tok.Value))
	}
	return strings.TrimRight(sb.String(), "\n")
}
