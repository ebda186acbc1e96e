package config

import "time"

// Config represents the complete configuration for dimmer.
type Config struct {
	// Appearance controls the startup theme and the palettes handed to renderers.
	Appearance AppearanceConfig `mapstructure:"appearance" yaml:"appearance" toml:"appearance" json:"appearance"`
	// Storage selects where the theme choice is persisted.
	Storage StorageConfig `mapstructure:"storage" yaml:"storage" toml:"storage" json:"storage"`
	// Detection controls how the OS light/dark preference is observed.
	Detection DetectionConfig `mapstructure:"detection" yaml:"detection" toml:"detection" json:"detection"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
}

// Theme mode names accepted by appearance.default_mode.
const (
	ModeLight  = "light"
	ModeDark   = "dark"
	ModeSystem = "system"
)

// System scheme overrides accepted by appearance.system_scheme.
const ThemeDefault = "default"

const (
	ThemePreferDark  = "prefer-dark"
	ThemePreferLight = "prefer-light"
)

// AppearanceConfig holds theme preferences.
type AppearanceConfig struct {
	// DefaultMode is the mode used until a persisted choice exists: "light", "dark" or "system".
	DefaultMode string `mapstructure:"default_mode" yaml:"default_mode" toml:"default_mode" json:"default_mode" jsonschema:"enum=light,enum=dark,enum=system"`
	// SystemScheme forces the system brightness: "prefer-dark", "prefer-light", or "default" (detect)
	SystemScheme string       `mapstructure:"system_scheme" yaml:"system_scheme" toml:"system_scheme" json:"system_scheme" jsonschema:"enum=default,enum=prefer-dark,enum=prefer-light"`
	LightPalette ColorPalette `mapstructure:"light_palette" yaml:"light_palette" toml:"light_palette" json:"light_palette"`
	DarkPalette  ColorPalette `mapstructure:"dark_palette" yaml:"dark_palette" toml:"dark_palette" json:"dark_palette"`
}

// ColorPalette contains semantic color tokens for light/dark themes.
type ColorPalette struct {
	Background     string `mapstructure:"background" yaml:"background" toml:"background" json:"background"`
	Surface        string `mapstructure:"surface" yaml:"surface" toml:"surface" json:"surface"`
	SurfaceVariant string `mapstructure:"surface_variant" yaml:"surface_variant" toml:"surface_variant" json:"surface_variant"`
	Text           string `mapstructure:"text" yaml:"text" toml:"text" json:"text"`
	Muted          string `mapstructure:"muted" yaml:"muted" toml:"muted" json:"muted"`
	Accent         string `mapstructure:"accent" yaml:"accent" toml:"accent" json:"accent"`
	Border         string `mapstructure:"border" yaml:"border" toml:"border" json:"border"`
}

// StorageBackend selects the preference repository implementation.
type StorageBackend string

const (
	StorageBackendSQLite StorageBackend = "sqlite"
	StorageBackendFile   StorageBackend = "file"
)

// StorageConfig holds persistence settings.
type StorageConfig struct {
	Backend StorageBackend `mapstructure:"backend" yaml:"backend" toml:"backend" json:"backend" jsonschema:"enum=sqlite,enum=file"`
	// Path of the database or preferences file. Empty uses the XDG data directory.
	Path string `mapstructure:"path" yaml:"path" toml:"path" json:"path"`
	// Key under which the theme mode is stored. Change it to version the stored format.
	Key string `mapstructure:"key" yaml:"key" toml:"key" json:"key"`
}

// DetectionConfig holds system brightness detection settings.
type DetectionConfig struct {
	// PollInterval re-checks the detectors when no change stream is available,
	// as a Go duration ("5s", "1m"). "0s" disables polling.
	PollInterval string `mapstructure:"poll_interval" yaml:"poll_interval" toml:"poll_interval" json:"poll_interval"`
	Gsettings    bool   `mapstructure:"gsettings" yaml:"gsettings" toml:"gsettings" json:"gsettings"`
	// Terminal enables the terminal background heuristic.
	Terminal bool `mapstructure:"terminal" yaml:"terminal" toml:"terminal" json:"terminal"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format"`

	// File output configuration
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir" json:"log_dir"`
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups    int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups" json:"max_backups"`
	MaxAge        int    `mapstructure:"max_age" yaml:"max_age" toml:"max_age" json:"max_age"`
	Compress      bool   `mapstructure:"compress" yaml:"compress" toml:"compress" json:"compress"`
}

// PollEvery returns the parsed poll interval. Invalid values are rejected by
// validation, so callers of a loaded config only see the fallback for "".
func (d DetectionConfig) PollEvery() time.Duration {
	if d.PollInterval == "" {
		return defaultPollInterval
	}
	interval, err := time.ParseDuration(d.PollInterval)
	if err != nil {
		return defaultPollInterval
	}
	return interval
}
