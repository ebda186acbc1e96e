package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// FileConfig controls optional file output through a LogRotator.
type FileConfig struct {
	Enabled       bool
	LogDir        string
	MaxSizeMB     int
	MaxBackups    int
	MaxAgeDays    int
	Compress      bool
	WriteToStderr bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// ParseLevel converts a level name to a zerolog level.
// Unknown names map to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New creates a new zerolog logger with the given configuration
func New(cfg Config) zerolog.Logger {
	return newWithWriter(cfg, os.Stderr)
}

func newWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	output := out
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewFromConfigValues builds a console or JSON stderr logger from plain config strings.
func NewFromConfigValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)
	if format == "json" || format == "console" {
		cfg.Format = format
	}
	return New(cfg)
}

// NewFromEnv creates a logger based on environment variables
// DIMMER_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// DIMMER_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	return NewFromConfigValues(os.Getenv("DIMMER_LOG_LEVEL"), os.Getenv("DIMMER_LOG_FORMAT"))
}

// NewWithFile creates a logger that writes to a rotated log file and,
// optionally, stderr. With file output disabled and stderr disabled the
// logger discards everything. The returned cleanup closes the file.
func NewWithFile(cfg Config, fileCfg FileConfig) (zerolog.Logger, func(), error) {
	noop := func() {}

	var writers []io.Writer
	if fileCfg.WriteToStderr {
		writers = append(writers, os.Stderr)
	}

	var rotator *LogRotator
	if fileCfg.Enabled {
		if fileCfg.LogDir == "" {
			return zerolog.Nop(), noop, fmt.Errorf("log directory cannot be empty")
		}
		if err := os.MkdirAll(fileCfg.LogDir, 0o750); err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("failed to create log directory: %w", err)
		}
		var err error
		rotator, err = NewLogRotator(fileCfg.LogDir, fileCfg.MaxSizeMB, fileCfg.MaxBackups, fileCfg.MaxAgeDays, fileCfg.Compress)
		if err != nil {
			return zerolog.Nop(), noop, err
		}
		writers = append(writers, rotator)
	}

	if len(writers) == 0 {
		return zerolog.Nop(), noop, nil
	}

	logger := newWithWriter(cfg, io.MultiWriter(writers...))
	if rotator == nil {
		return logger, noop, nil
	}
	return logger, func() { _ = rotator.Close() }, nil
}
