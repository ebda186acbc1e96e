package config

import (
	"fmt"
	"strings"
	"time"

	domainvalidation "github.com/bnema/dimmer/internal/domain/validation"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateAppearance(config)...)
	validationErrors = append(validationErrors, validateStorage(config)...)
	validationErrors = append(validationErrors, validateDetection(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func paletteTokens(p ColorPalette) []domainvalidation.ColorToken {
	return []domainvalidation.ColorToken{
		{Name: "background", Value: p.Background},
		{Name: "surface", Value: p.Surface},
		{Name: "surface_variant", Value: p.SurfaceVariant},
		{Name: "text", Value: p.Text},
		{Name: "muted", Value: p.Muted},
		{Name: "accent", Value: p.Accent},
		{Name: "border", Value: p.Border},
	}
}

func validateAppearance(config *Config) []string {
	var validationErrors []string

	switch config.Appearance.DefaultMode {
	case ModeLight, ModeDark, ModeSystem:
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"appearance.default_mode must be one of: light, dark, system (got: %s)",
			config.Appearance.DefaultMode,
		))
	}

	switch config.Appearance.SystemScheme {
	case ThemePreferDark, ThemePreferLight, ThemeDefault, "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"appearance.system_scheme must be one of: prefer-dark, prefer-light, default (got: %s)",
			config.Appearance.SystemScheme,
		))
	}

	validationErrors = append(validationErrors,
		domainvalidation.ValidatePaletteHex("appearance.light_palette", true, paletteTokens(config.Appearance.LightPalette)...)...)
	validationErrors = append(validationErrors,
		domainvalidation.ValidatePaletteHex("appearance.dark_palette", true, paletteTokens(config.Appearance.DarkPalette)...)...)
	return validationErrors
}

func validateStorage(config *Config) []string {
	var validationErrors []string
	switch config.Storage.Backend {
	case StorageBackendSQLite, StorageBackendFile:
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"storage.backend must be one of: sqlite, file (got: %s)",
			config.Storage.Backend,
		))
	}
	if strings.TrimSpace(config.Storage.Key) == "" {
		validationErrors = append(validationErrors, "storage.key cannot be empty")
	}
	return validationErrors
}

func validateDetection(config *Config) []string {
	if config.Detection.PollInterval == "" {
		return nil
	}
	interval, err := time.ParseDuration(config.Detection.PollInterval)
	if err != nil {
		return []string{fmt.Sprintf("detection.poll_interval must be a duration like 5s (got: %s)", config.Detection.PollInterval)}
	}
	if interval < 0 {
		return []string{"detection.poll_interval must be non-negative"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}
	if config.Logging.MaxSizeMB < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of: trace, debug, info, warn, error, fatal (got: %s)",
			config.Logging.Level,
		))
	}
	switch config.Logging.Format {
	case "text", "json", "console", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be one of: text, json, console (got: %s)",
			config.Logging.Format,
		))
	}
	return validationErrors
}
