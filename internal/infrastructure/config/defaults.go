package config

import "time"

// Default configuration constants
const (
	defaultPreferenceKey = "dimmer.theme_mode"
	defaultPollInterval  = 5 * time.Second
	defaultPollSetting   = "5s"

	// Logging defaults
	defaultMaxLogSizeMB  = 10 // MB
	defaultMaxBackups    = 3  // rotated files
	defaultMaxLogAgeDays = 7  // days
)

// getDefaultLogDir returns the default log directory, falls back to empty string on error
func getDefaultLogDir() string {
	logDir, err := GetLogDir()
	if err != nil {
		return ""
	}
	return logDir
}

// DefaultConfig returns the default configuration values for dimmer.
func DefaultConfig() *Config {
	return &Config{
		Appearance: AppearanceConfig{
			DefaultMode:  ModeSystem,
			SystemScheme: ThemeDefault,
			LightPalette: ColorPalette{
				Background:     "#fafafa",
				Surface:        "#ffffff",
				SurfaceVariant: "#f0f0f0",
				Text:           "#1a1a1a",
				Muted:          "#666666",
				Accent:         "#22c55e",
				Border:         "#dddddd",
			},
			DarkPalette: ColorPalette{
				Background:     "#0a0a0b",
				Surface:        "#1a1a1b",
				SurfaceVariant: "#2d2d2d",
				Text:           "#ffffff",
				Muted:          "#909090",
				Accent:         "#4ade80",
				Border:         "#333333",
			},
		},
		Storage: StorageConfig{
			Backend: StorageBackendSQLite,
			// Path is set dynamically in Load()
			Key: defaultPreferenceKey,
		},
		Detection: DetectionConfig{
			PollInterval: defaultPollSetting,
			Gsettings:    true,
			Terminal:     true,
		},
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "console",
			LogDir:        getDefaultLogDir(),
			EnableFileLog: false,
			MaxSizeMB:     defaultMaxLogSizeMB,
			MaxBackups:    defaultMaxBackups,
			MaxAge:        defaultMaxLogAgeDays,
			Compress:      true,
		},
	}
}
