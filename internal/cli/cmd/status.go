package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dimmer/internal/application/usecase"
	"github.com/bnema/dimmer/internal/cli/styles"
)

var statusShort bool

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"get"},
	Short:   "Show the stored mode and the effective theme",
	Long: `Show the theme mode, where it comes from, and what it resolves to.

With --short only the mode name is printed, which is handy in scripts:

  [ "$(dimmer status --short)" = dark ] && ...`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

// modeCmd reads the store only, without falling back to the configured default.
var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Print the persisted mode, or \"unset\"",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}

		mode, ok := usecase.GetThemeMode(app.Ctx(), app.Store)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "unset")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), mode)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(modeCmd)
	statusCmd.Flags().BoolVarP(&statusShort, "short", "s", false, "print only the mode")
}

func runStatus(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	ctx := app.Ctx()
	mode := app.DefaultMode()
	prefs, persisted := app.Store.Load(ctx)
	if persisted {
		mode = prefs.Mode
	}

	out := cmd.OutOrStdout()
	if statusShort {
		fmt.Fprintln(out, mode)
		return nil
	}

	pref := app.Resolver.Resolve()
	light, dark := app.Palettes()
	effective := light
	if mode.ResolvesDark(pref.PrefersDark) {
		effective = dark
	}

	renderer := styles.NewStatusRenderer(app.Theme)
	fmt.Fprint(out, renderer.RenderStatus(styles.StatusView{
		Mode:        mode,
		Persisted:   persisted,
		PrefersDark: pref.PrefersDark,
		Source:      pref.Source,
		Effective:   effective.Name,
		Backend:     string(app.Config.Storage.Backend),
		Key:         app.Store.Key(),
	}))
	return nil
}
