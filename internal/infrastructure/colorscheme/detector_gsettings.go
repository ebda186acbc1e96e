package colorscheme

import (
	"context"
	"os/exec"
	"time"
)

const (
	detectorNameGsettings = "gsettings"
	priorityGsettings     = 10

	gsettingsBinary = "gsettings"
	gsettingsSchema = "org.gnome.desktop.interface"
	gsettingsKey    = "color-scheme"

	gsettingsTimeout = 2 * time.Second
)

// commandOutput runs a command and returns its stdout.
type commandOutput func(ctx context.Context, name string, args ...string) ([]byte, error)

func execOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// GsettingsDetector detects the color scheme from GNOME gsettings.
type GsettingsDetector struct {
	lookPath func(string) (string, error)
	output   commandOutput
}

// NewGsettingsDetector creates a new gsettings-based detector.
func NewGsettingsDetector() *GsettingsDetector {
	return &GsettingsDetector{
		lookPath: exec.LookPath,
		output:   execOutput,
	}
}

// Name implements port.ColorSchemeDetector.
func (*GsettingsDetector) Name() string {
	return detectorNameGsettings
}

// Priority implements port.ColorSchemeDetector.
func (*GsettingsDetector) Priority() int {
	return priorityGsettings
}

// Available implements port.ColorSchemeDetector.
func (d *GsettingsDetector) Available() bool {
	_, err := d.lookPath(gsettingsBinary)
	return err == nil
}

// Detect implements port.ColorSchemeDetector.
// Output looks like "'prefer-dark'\n". "default" is not decisive.
func (d *GsettingsDetector) Detect() (prefersDark, ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), gsettingsTimeout)
	defer cancel()

	out, err := d.output(ctx, gsettingsBinary, "get", gsettingsSchema, gsettingsKey)
	if err != nil {
		return false, false
	}
	return ParseScheme(string(out))
}
