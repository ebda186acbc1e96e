package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/dimmer/internal/cli/model"
	"github.com/bnema/dimmer/internal/logging"
	"github.com/bnema/dimmer/internal/ui/mainloop"
	"github.com/bnema/dimmer/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the palettes and switch modes interactively",
	Long: `Open a full screen preview of the light and dark palettes.

Mode changes made here are stored like 'dimmer set'. In system mode the
preview follows the desktop color scheme live. Logs go to the log file
while the preview is open.`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(logging.WithComponent(app.Ctx(), "preview"))
	defer cancel()

	loop := mainloop.NewLoop()
	var preview *model.PreviewModel
	session := app.NewSession(
		theme.WithPost(loop.Post),
		theme.WithPersistErrorHandler(func(err error) { preview.PersistFailed(err) }),
	)

	light, dark := app.Palettes()
	sessionCtx := session.Start(ctx, light, dark, app.DefaultMode(), func(l, d theme.Palette) {
		preview.Render(l, d)
	})
	preview = model.NewPreviewModel(sessionCtx, session.Manager(), loop, app.Resolver)

	monitorDone := make(chan error, 1)
	go func() { monitorDone <- app.NewMonitor().Run(ctx) }()

	_, runErr := tea.NewProgram(preview, tea.WithAltScreen()).Run()

	cancel()
	session.Stop()
	loop.Stop()
	session.Manager().Wait()
	if err := <-monitorDone; err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("brightness monitor stopped")
	}
	if runErr != nil {
		return fmt.Errorf("preview: %w", runErr)
	}
	return nil
}
