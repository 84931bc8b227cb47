package config

import (
	"strings"

	"github.com/unkn0wn-root/otpfield"
)

type FieldSettings struct {
	Digits    int    `json:"digits"     toml:"digits"`
	Style     string `json:"style"      toml:"style"`
	Mask      bool   `json:"mask"       toml:"mask"`
	MaskGlyph string `json:"mask_glyph" toml:"mask_glyph,omitempty"`
}

func DefaultFieldSettings() FieldSettings {
	return FieldSettings{
		Digits: otpfield.DefaultMaxDigits,
		Style:  otpfield.StyleBorderedBox.String(),
	}
}

// NormaliseFieldSettings clamps digits into the supported 4-6 range and maps
// unknown styles back to the default.
func NormaliseFieldSettings(in FieldSettings) FieldSettings {
	field := DefaultFieldSettings()
	field.Digits = ClampDigits(in.Digits)
	if style, err := otpfield.ParseStyle(in.Style); err == nil {
		field.Style = style.String()
	}
	field.Mask = in.Mask
	field.MaskGlyph = strings.TrimSpace(in.MaskGlyph)
	return field
}

// ClampDigits applies the same bounds to flag values.
func ClampDigits(n int) int {
	return clampInt(n, otpfield.MinDigits, otpfield.MaxDigits, otpfield.DefaultMaxDigits)
}

// FieldStyle returns the parsed style; normalised settings always parse.
func (f FieldSettings) FieldStyle() otpfield.Style {
	style, err := otpfield.ParseStyle(f.Style)
	if err != nil {
		return otpfield.StyleBorderedBox
	}
	return style
}

func clampInt[T ~int](value, min, max, fallback T) T {
	if value == 0 {
		return fallback
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
