// Package cmd provides Cobra CLI commands for dimmer.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/dimmer/internal/cli"
	"github.com/bnema/dimmer/internal/domain/build"
)

// fileLogCommands own the terminal and must not log to stderr.
var fileLogCommands = map[string]bool{
	"preview": true,
}

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "dimmer",
		Short: "Light, dark and system theme switching with a remembered choice",
		Long: `Dimmer keeps track of a light/dark/system theme mode.

The chosen mode is stored (SQLite or a TOML file, see 'dimmer config path')
and restored on the next run. In system mode the effective theme follows
the desktop color scheme, detected from DIMMER_COLOR_SCHEME, GTK_THEME,
gsettings or the terminal background.

Use 'dimmer watch' to react to changes from scripts, or 'dimmer preview'
to try the configured palettes interactively.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "schema":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{FileLog: fileLogCommands[cmd.Name()]})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			closeApp()
		},
	}
)

func closeApp() {
	if app != nil {
		_ = app.Close()
		app = nil
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		closeApp()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
