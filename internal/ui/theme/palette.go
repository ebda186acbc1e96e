package theme

import (
	"errors"
	"strings"

	"github.com/bnema/dimmer/internal/domain/validation"
	"github.com/bnema/dimmer/internal/infrastructure/config"
)

// Palette holds semantic color tokens for one theme. It is comparable, so
// it can be managed directly by a Manager[Palette].
type Palette struct {
	Name           string
	Background     string
	Surface        string
	SurfaceVariant string
	Text           string
	Muted          string
	Accent         string
	Border         string
	// Status colors are derived, not user-editable.
	Success     string
	Warning     string
	Destructive string
}

// DefaultDarkPalette returns the built-in dark palette.
func DefaultDarkPalette() Palette {
	return Palette{
		Name:           "dark",
		Background:     "#0a0a0b",
		Surface:        "#1a1a1b",
		SurfaceVariant: "#2d2d2d",
		Text:           "#ffffff",
		Muted:          "#909090",
		Accent:         "#4ade80",
		Border:         "#333333",
		Success:        "#4ade80",
		Warning:        "#fbbf24",
		Destructive:    "#ef4444",
	}
}

// DefaultLightPalette returns the built-in light palette.
func DefaultLightPalette() Palette {
	return Palette{
		Name:           "light",
		Background:     "#fafafa",
		Surface:        "#ffffff",
		SurfaceVariant: "#f0f0f0",
		Text:           "#1a1a1a",
		Muted:          "#666666",
		Accent:         "#22c55e",
		Border:         "#dddddd",
		Success:        "#22c55e",
		Warning:        "#f59e0b",
		Destructive:    "#dc2626",
	}
}

// PaletteFromConfig fills missing config values with the built-in palette.
func PaletteFromConfig(cfg *config.ColorPalette, isDark bool) Palette {
	defaults := DefaultLightPalette()
	if isDark {
		defaults = DefaultDarkPalette()
	}
	if cfg == nil {
		return defaults
	}

	return Palette{
		Name:           defaults.Name,
		Background:     Coalesce(cfg.Background, defaults.Background),
		Surface:        Coalesce(cfg.Surface, defaults.Surface),
		SurfaceVariant: Coalesce(cfg.SurfaceVariant, defaults.SurfaceVariant),
		Text:           Coalesce(cfg.Text, defaults.Text),
		Muted:          Coalesce(cfg.Muted, defaults.Muted),
		Accent:         Coalesce(cfg.Accent, defaults.Accent),
		Border:         Coalesce(cfg.Border, defaults.Border),
		Success:        defaults.Success,
		Warning:        defaults.Warning,
		Destructive:    defaults.Destructive,
	}
}

// PalettesFromConfig returns the (light, dark) pair for the appearance section.
func PalettesFromConfig(cfg *config.AppearanceConfig) (light, dark Palette) {
	if cfg == nil {
		return DefaultLightPalette(), DefaultDarkPalette()
	}
	return PaletteFromConfig(&cfg.LightPalette, false), PaletteFromConfig(&cfg.DarkPalette, true)
}

// Coalesce returns the first non-empty string.
func Coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Tokens lists the user-editable colors in config order.
func (p Palette) Tokens() []validation.ColorToken {
	return []validation.ColorToken{
		{Name: "background", Value: p.Background},
		{Name: "surface", Value: p.Surface},
		{Name: "surface_variant", Value: p.SurfaceVariant},
		{Name: "text", Value: p.Text},
		{Name: "muted", Value: p.Muted},
		{Name: "accent", Value: p.Accent},
		{Name: "border", Value: p.Border},
	}
}

// Validate checks that every editable color is a hex value. Empty values
// are accepted; PaletteFromConfig replaces them.
func (p Palette) Validate() error {
	prefix := p.Name
	if prefix == "" {
		prefix = "palette"
	}
	if errs := validation.ValidatePaletteHex(prefix, true, p.Tokens()...); len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
