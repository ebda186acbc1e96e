package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dimmer/internal/cli/styles"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"about"},
	Short:   "Show version and build information",
	Args:    cobra.NoArgs,
	RunE:    runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.NewAboutRenderer(app.Theme).Render(app.BuildInfo))
	return nil
}
