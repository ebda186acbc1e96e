package colorscheme

import (
	"os"
	"strings"
)

const (
	detectorNameEnv = "env"
	priorityEnv     = 20

	// EnvColorScheme is an explicit override understood by dimmer itself.
	EnvColorScheme = "DIMMER_COLOR_SCHEME"
	// EnvGTKTheme is honored when no explicit override is set.
	EnvGTKTheme = "GTK_THEME"
)

// EnvDetector detects the color scheme from environment variables.
// DIMMER_COLOR_SCHEME ("dark", "light", "prefer-dark", "prefer-light")
// wins over GTK_THEME, where any theme name containing "dark" is dark.
type EnvDetector struct {
	getenv func(string) string
}

// NewEnvDetector creates a new environment variable-based detector.
func NewEnvDetector() *EnvDetector {
	return &EnvDetector{getenv: os.Getenv}
}

// Name implements port.ColorSchemeDetector.
func (*EnvDetector) Name() string {
	return detectorNameEnv
}

// Priority implements port.ColorSchemeDetector.
func (*EnvDetector) Priority() int {
	return priorityEnv
}

// Available implements port.ColorSchemeDetector.
func (d *EnvDetector) Available() bool {
	return d.getenv(EnvColorScheme) != "" || d.getenv(EnvGTKTheme) != ""
}

// Detect implements port.ColorSchemeDetector.
func (d *EnvDetector) Detect() (prefersDark, ok bool) {
	if prefersDark, ok := ParseScheme(d.getenv(EnvColorScheme)); ok {
		return prefersDark, true
	}

	gtkTheme := d.getenv(EnvGTKTheme)
	if gtkTheme == "" {
		return false, false
	}
	return strings.Contains(strings.ToLower(gtkTheme), "dark"), true
}
