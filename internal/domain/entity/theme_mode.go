package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ThemeMode is the user's stated appearance preference.
type ThemeMode int

// Theme modes. The numeric values double as the legacy persisted indices.
const (
	ThemeModeLight ThemeMode = iota
	ThemeModeDark
	ThemeModeSystem
)

// ErrUnknownThemeMode is returned when a value does not name a theme mode.
var ErrUnknownThemeMode = errors.New("unknown theme mode")

// ThemeModes lists every mode in index order.
func ThemeModes() []ThemeMode {
	return []ThemeMode{ThemeModeLight, ThemeModeDark, ThemeModeSystem}
}

// String returns the tag used for persistence and display.
func (m ThemeMode) String() string {
	switch m {
	case ThemeModeLight:
		return "light"
	case ThemeModeDark:
		return "dark"
	case ThemeModeSystem:
		return "system"
	default:
		return "unknown(" + strconv.Itoa(int(m)) + ")"
	}
}

// Valid reports whether m is one of the known modes.
func (m ThemeMode) Valid() bool {
	return m >= ThemeModeLight && m <= ThemeModeSystem
}

// IsLight returns true for ThemeModeLight.
func (m ThemeMode) IsLight() bool { return m == ThemeModeLight }

// IsDark returns true for ThemeModeDark.
func (m ThemeMode) IsDark() bool { return m == ThemeModeDark }

// IsSystem returns true for ThemeModeSystem.
func (m ThemeMode) IsSystem() bool { return m == ThemeModeSystem }

// ResolvesDark reports whether the mode renders the dark theme.
// prefersDark is the live system brightness and only matters for System.
func (m ThemeMode) ResolvesDark(prefersDark bool) bool {
	switch m {
	case ThemeModeDark:
		return true
	case ThemeModeSystem:
		return prefersDark
	default:
		return false
	}
}

// Toggle returns the next mode: light and dark swap, system flips to
// the opposite of what it currently resolves to.
func (m ThemeMode) Toggle(prefersDark bool) ThemeMode {
	if m.ResolvesDark(prefersDark) {
		return ThemeModeLight
	}
	return ThemeModeDark
}

// MarshalText implements encoding.TextMarshaler.
func (m ThemeMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownThemeMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ThemeMode) UnmarshalText(text []byte) error {
	parsed, err := ParseThemeMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseThemeMode parses a mode tag ("light", "dark", "system") or a
// legacy integer index ("0", "1", "2"). Matching ignores case and
// surrounding whitespace.
func ParseThemeMode(s string) (ThemeMode, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "light":
		return ThemeModeLight, nil
	case "dark":
		return ThemeModeDark, nil
	case "system":
		return ThemeModeSystem, nil
	}

	if idx, err := strconv.Atoi(v); err == nil {
		if mode := ThemeMode(idx); mode.Valid() {
			return mode, nil
		}
	}
	return ThemeModeLight, fmt.Errorf("%w: %q", ErrUnknownThemeMode, s)
}

// ThemePreferences is the unit persisted between runs.
type ThemePreferences struct {
	Mode ThemeMode
}

// Encode serializes the preferences to the stored representation.
func (p ThemePreferences) Encode() (string, error) {
	text, err := p.Mode.MarshalText()
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// DecodeThemePreferences parses a stored value.
// Malformed or unrecognized data yields ok=false rather than an error.
func DecodeThemePreferences(raw string) (prefs ThemePreferences, ok bool) {
	mode, err := ParseThemeMode(raw)
	if err != nil {
		return ThemePreferences{}, false
	}
	return ThemePreferences{Mode: mode}, true
}
