// Package config loads, validates and watches the dimmer configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)

	// DIMMER_STORAGE_BACKEND, DIMMER_APPEARANCE_DEFAULT_MODE, ...
	v.SetEnvPrefix("DIMMER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names shared with logging.NewFromEnv.
	if err := v.BindEnv("logging.level", "DIMMER_LOG_LEVEL", "DIMMER_LOGGING_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind DIMMER_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "DIMMER_LOG_FORMAT", "DIMMER_LOGGING_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind DIMMER_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is created with defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	return m.decode()
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var configFileNotFoundError viper.ConfigFileNotFoundError
	if !errors.As(err, &configFileNotFoundError) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile, _ = GetConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		configDir, _ := GetConfigDir()
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			configDir,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf(
			"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
			rereadErr,
		)
	}
	return nil
}

// decode must be called with m.mu held for write.
func (m *Manager) decode() error {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}

	if err := ensureStoragePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func ensureStoragePath(config *Config) error {
	if config.Storage.Path != "" {
		return nil
	}
	path, err := GetStorageFile(normalizeBackend(config.Storage.Backend))
	if err != nil {
		return fmt.Errorf("failed to get storage path: %w", err)
	}
	config.Storage.Path = path
	return nil
}

func normalizeBackend(backend StorageBackend) StorageBackend {
	switch StorageBackend(strings.ToLower(strings.TrimSpace(string(backend)))) {
	case "", StorageBackendSQLite, "sqlite3":
		return StorageBackendSQLite
	case StorageBackendFile, "toml":
		return StorageBackendFile
	default:
		return backend
	}
}

func normalizeConfig(config *Config) {
	config.Appearance.DefaultMode = strings.ToLower(strings.TrimSpace(config.Appearance.DefaultMode))
	if config.Appearance.DefaultMode == "" {
		config.Appearance.DefaultMode = ModeSystem
	}

	switch strings.ToLower(strings.TrimSpace(config.Appearance.SystemScheme)) {
	case ThemePreferDark, "dark":
		config.Appearance.SystemScheme = ThemePreferDark
	case ThemePreferLight, "light":
		config.Appearance.SystemScheme = ThemePreferLight
	case "", ThemeDefault:
		config.Appearance.SystemScheme = ThemeDefault
	}

	config.Storage.Backend = normalizeBackend(config.Storage.Backend)
	config.Storage.Key = strings.TrimSpace(config.Storage.Key)
	config.Detection.PollInterval = strings.TrimSpace(config.Detection.PollInterval)

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetColorScheme returns appearance.system_scheme from the current config.
func (m *Manager) GetColorScheme() string {
	return m.Get().Appearance.SystemScheme
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig writes the defaults and the JSON schema next to them.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := GenerateSchemaFile(filepath.Dir(configFile)); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created default configuration file: %s (TOML format)\n", configFile)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setAppearanceDefaults(defaults)
	m.setStorageDefaults(defaults)
	m.setDetectionDefaults(defaults)
	m.setLoggingDefaults(defaults)
}

func (m *Manager) setAppearanceDefaults(defaults *Config) {
	m.viper.SetDefault("appearance.default_mode", defaults.Appearance.DefaultMode)
	m.viper.SetDefault("appearance.system_scheme", defaults.Appearance.SystemScheme)
	m.setPaletteDefaults("appearance.light_palette", defaults.Appearance.LightPalette)
	m.setPaletteDefaults("appearance.dark_palette", defaults.Appearance.DarkPalette)
}

// setPaletteDefaults sets per-token defaults so a partially written palette
// keeps the remaining default colors.
func (m *Manager) setPaletteDefaults(prefix string, p ColorPalette) {
	m.viper.SetDefault(prefix+".background", p.Background)
	m.viper.SetDefault(prefix+".surface", p.Surface)
	m.viper.SetDefault(prefix+".surface_variant", p.SurfaceVariant)
	m.viper.SetDefault(prefix+".text", p.Text)
	m.viper.SetDefault(prefix+".muted", p.Muted)
	m.viper.SetDefault(prefix+".accent", p.Accent)
	m.viper.SetDefault(prefix+".border", p.Border)
}

func (m *Manager) setStorageDefaults(defaults *Config) {
	m.viper.SetDefault("storage.backend", string(defaults.Storage.Backend))
	m.viper.SetDefault("storage.path", defaults.Storage.Path)
	m.viper.SetDefault("storage.key", defaults.Storage.Key)
}

func (m *Manager) setDetectionDefaults(defaults *Config) {
	m.viper.SetDefault("detection.poll_interval", defaults.Detection.PollInterval)
	m.viper.SetDefault("detection.gsettings", defaults.Detection.Gsettings)
	m.viper.SetDefault("detection.terminal", defaults.Detection.Terminal)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}
