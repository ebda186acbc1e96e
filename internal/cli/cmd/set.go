package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dimmer/internal/cli/styles"
	"github.com/bnema/dimmer/internal/domain/entity"
	"github.com/bnema/dimmer/internal/ui/theme"
)

var setCmd = &cobra.Command{
	Use:       "set <light|dark|system>",
	Short:     "Set and remember the theme mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"light", "dark", "system"},
	RunE:      runSet,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark",
	Long: `Switch light to dark and dark to light.

In system mode the new mode is the opposite of what the desktop currently
prefers, so toggling always changes what you see.`,
	Args: cobra.NoArgs,
	RunE: runToggle,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore appearance.default_mode",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the stored mode",
	Long: `Remove the stored mode so the next run starts from
appearance.default_mode again.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(setCmd, toggleCmd, resetCmd, clearCmd)
}

func effectiveName(m *theme.Manager[theme.Palette]) string {
	return m.Theme().Name
}

func runSet(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	mode, err := entity.ParseThemeMode(args[0])
	if err != nil {
		return err
	}

	_, stored := app.Store.Load(app.Ctx())

	var effective string
	var saveErr error
	err = app.RunOnce(func(ctx context.Context, m *theme.Manager[theme.Palette]) {
		unchanged := m.Mode() == mode
		m.SetMode(ctx, mode)
		// The manager only writes changes; an explicit set of the
		// default mode still has to be remembered.
		if unchanged && !stored {
			saveErr = app.Store.Save(ctx, entity.ThemePreferences{Mode: mode})
		}
		effective = effectiveName(m)
	})
	if err == nil {
		err = saveErr
	}
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), styles.NewStatusRenderer(app.Theme).RenderModeChanged(mode, effective))
	return nil
}

func runToggle(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	var next entity.ThemeMode
	var effective string
	err = app.RunOnce(func(ctx context.Context, m *theme.Manager[theme.Palette]) {
		next = m.Toggle(ctx)
		effective = effectiveName(m)
	})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), styles.NewStatusRenderer(app.Theme).RenderModeChanged(next, effective))
	return nil
}

func runReset(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	var changed bool
	err = app.RunOnce(func(ctx context.Context, m *theme.Manager[theme.Palette]) {
		changed = m.Reset(ctx)
	})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), styles.NewStatusRenderer(app.Theme).RenderReset(changed, app.DefaultMode()))
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	if err := app.Store.Clear(app.Ctx()); err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), styles.NewStatusRenderer(app.Theme).RenderCleared(app.Store.Key()))
	return nil
}
