package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(Config{Level: zerolog.InfoLevel, Format: "json"}, &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Str("mode", "dark").Msg("theme changed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"mode":"dark"`)
	assert.Contains(t, out, `"message":"theme changed"`)
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(Config{Level: zerolog.DebugLevel, Format: "json"}, &buf)
	ctx := WithComponent(WithContext(context.Background(), logger), "theme")

	FromContext(ctx).Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"theme"`)
}

func TestFromContext_NoLogger(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	// Disabled logger must not panic.
	log.Info().Msg("dropped")
}

func TestNewWithFile_Disabled(t *testing.T) {
	logger, cleanup, err := NewWithFile(DefaultConfig(), FileConfig{})
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestNewWithFile_WritesToRotator(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := Config{Level: zerolog.InfoLevel, Format: "json"}

	logger, cleanup, err := NewWithFile(cfg, FileConfig{Enabled: true, LogDir: dir})
	require.NoError(t, err)

	logger.Info().Msg("persisted line")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "persisted line")
}

func TestNewWithFile_EmptyDir(t *testing.T) {
	_, _, err := NewWithFile(DefaultConfig(), FileConfig{Enabled: true})
	assert.Error(t, err)
}

func TestLogRotator_RotatesAndPrunes(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(dir, 1, 2, 0, true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	r.maxSize = 16
	line := []byte(strings.Repeat("x", 12) + "\n")
	for i := 0; i < 5; i++ {
		_, err := r.Write(line)
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var active, rolled int
	for _, e := range entries {
		switch {
		case e.Name() == logFileName:
			active++
		case strings.HasSuffix(e.Name(), compressedSuffix):
			rolled++
		}
	}
	assert.Equal(t, 1, active)
	assert.LessOrEqual(t, rolled, 2)
	assert.Positive(t, rolled)
}
