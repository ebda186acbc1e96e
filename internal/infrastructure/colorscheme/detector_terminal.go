package colorscheme

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const (
	detectorNameTerminal = "terminal"
	priorityTerminal     = 5
)

// TerminalDetector asks the terminal emulator for its background color.
// It is a heuristic and only applies when stdout is a terminal.
type TerminalDetector struct {
	isTerminal func() bool
	darkBg     func() bool
}

// NewTerminalDetector creates a detector bound to stdout.
func NewTerminalDetector() *TerminalDetector {
	return newTerminalDetector(os.Stdout)
}

func newTerminalDetector(out io.Writer) *TerminalDetector {
	d := &TerminalDetector{
		isTerminal: func() bool { return false },
		darkBg:     func() bool { return true },
	}
	if f, ok := out.(*os.File); ok {
		d.isTerminal = func() bool {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		// The background query round-trips through the terminal; ask once.
		d.darkBg = sync.OnceValue(func() bool {
			return termenv.NewOutput(f).HasDarkBackground()
		})
	}
	return d
}

// Name implements port.ColorSchemeDetector.
func (*TerminalDetector) Name() string {
	return detectorNameTerminal
}

// Priority implements port.ColorSchemeDetector.
func (*TerminalDetector) Priority() int {
	return priorityTerminal
}

// Available implements port.ColorSchemeDetector.
func (d *TerminalDetector) Available() bool {
	return d.isTerminal()
}

// Detect implements port.ColorSchemeDetector.
func (d *TerminalDetector) Detect() (prefersDark, ok bool) {
	if !d.isTerminal() {
		return false, false
	}
	return d.darkBg(), true
}
