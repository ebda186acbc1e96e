package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/bnema/dimmer/internal/cli/styles"
	"github.com/bnema/dimmer/internal/infrastructure/config"
	"github.com/bnema/dimmer/internal/ui/theme"
)

var schemaWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file and preference storage locations",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of config.toml",
	Long: `Print the JSON schema of config.toml to stdout.

With --write the schema is written next to config.toml, where the
'#:schema' directive at the top of the file points editors to it.`,
	Args: cobra.NoArgs,
	RunE: runConfigSchema,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config.toml in $VISUAL or $EDITOR",
	Args:  cobra.NoArgs,
	RunE:  runConfigEdit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configSchemaCmd, configEditCmd)
	configSchemaCmd.Flags().BoolVarP(&schemaWrite, "write", "w", false, "write config.schema.json to the config directory")
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	configFile, err := config.GetConfigFile()
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), renderer.RenderError(err))
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderPaths(configFile, string(app.Config.Storage.Backend), app.StoragePath()))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	if !schemaWrite {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}

	dir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	if err := config.GenerateSchemaFile(dir); err != nil {
		return err
	}

	// No app for this command; render with the built-in palette.
	renderer := styles.NewConfigRenderer(styles.NewTheme(theme.DefaultDarkPalette()))
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSchemaWritten(config.SchemaPath(dir)))
	return nil
}

func runConfigEdit(_ *cobra.Command, _ []string) error {
	configFile, err := config.GetConfigFile()
	if err != nil {
		return fmt.Errorf("failed to get config file path: %w", err)
	}

	// Prefer $VISUAL, fallback to $EDITOR
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		return fmt.Errorf("no editor defined: set $VISUAL or $EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	return editorCmd.Run()
}
