package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHexColor(t *testing.T) {
	for _, ok := range []string{"#fff", "#FAFAFA", "#0a0a0bcc"} {
		assert.True(t, IsHexColor(ok), ok)
	}
	for _, bad := range []string{"", "fff", "#ffff", "#gggggg", "red"} {
		assert.False(t, IsHexColor(bad), bad)
	}
}

func TestValidatePaletteHex(t *testing.T) {
	tokens := []ColorToken{
		{Name: "background", Value: "#000000"},
		{Name: "text", Value: ""},
		{Name: "accent", Value: "green"},
	}

	errs := ValidatePaletteHex("appearance.dark_palette", true, tokens...)
	assert.Equal(t, []string{`appearance.dark_palette.accent must be a hex color like #RRGGBB (got: "green")`}, errs)

	errs = ValidatePaletteHex("appearance.dark_palette", false, tokens...)
	assert.Len(t, errs, 2)
}
