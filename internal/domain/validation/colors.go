// Package validation holds value checks shared by config and theme data.
package validation

import (
	"fmt"
	"regexp"
)

// hexColorRE matches #RGB, #RRGGBB and #RRGGBBAA.
var hexColorRE = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// IsHexColor reports whether value is a CSS-style hex color.
func IsHexColor(value string) bool {
	return hexColorRE.MatchString(value)
}

// ColorToken is one named entry of a palette.
type ColorToken struct {
	Name  string
	Value string
}

// ValidatePaletteHex checks every token and returns one message per bad
// value, prefixed with the config path. Empty values are allowed when
// allowEmpty is set (the default palette fills them in).
func ValidatePaletteHex(prefix string, allowEmpty bool, tokens ...ColorToken) []string {
	var errs []string
	for _, tok := range tokens {
		if tok.Value == "" && allowEmpty {
			continue
		}
		if !IsHexColor(tok.Value) {
			errs = append(errs, fmt.Sprintf("%s.%s must be a hex color like #RRGGBB (got: %q)", prefix, tok.Name, tok.Value))
		}
	}
	return errs
}
