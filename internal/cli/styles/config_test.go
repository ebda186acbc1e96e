package styles_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnema/dimmer/internal/cli/styles"
)

func TestConfigRenderer_RenderPaths(t *testing.T) {
	r := styles.NewConfigRenderer(testTheme())

	out := r.RenderPaths("/tmp/dimmer/config.toml", "file", "/tmp/dimmer/preferences.toml")
	require.Contains(t, out, "config.toml")
	require.Contains(t, out, "file")
	require.Contains(t, out, "preferences.toml")
}

func TestConfigRenderer_RenderSchemaWritten(t *testing.T) {
	r := styles.NewConfigRenderer(testTheme())

	out := r.RenderSchemaWritten("/tmp/dimmer/config.schema.json")
	require.Contains(t, out, "config.schema.json")
}
