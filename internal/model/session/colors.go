package session

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// ColorScheme overrides the consent dialog palette.
type ColorScheme struct {
	Primary    colorful.Color
	Text       colorful.Color
	Background colorful.Color
}

// DefaultColorScheme mirrors the platform defaults used when no scheme is set.
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Primary:    mustHex("#007AFF"),
		Text:       mustHex("#000000"),
		Background: mustHex("#FFFFFF"),
	}
}

// NewColorScheme parses three hex colors such as "#1E88E5".
func NewColorScheme(primary, text, background string) (ColorScheme, error) {
	p, err := colorful.Hex(primary)
	if err != nil {
		return ColorScheme{}, &ValidationError{Field: "colors.primary", Reason: errors.Wrap(err, primary).Error()}
	}
	t, err := colorful.Hex(text)
	if err != nil {
		return ColorScheme{}, &ValidationError{Field: "colors.text", Reason: errors.Wrap(err, text).Error()}
	}
	b, err := colorful.Hex(background)
	if err != nil {
		return ColorScheme{}, &ValidationError{Field: "colors.background", Reason: errors.Wrap(err, background).Error()}
	}
	return ColorScheme{Primary: p, Text: t, Background: b}, nil
}

// IsDark reports whether c reads as a dark color (relative luminance below 0.5).
func IsDark(c colorful.Color) bool {
	r, g, b := c.Clamped().RGB255()
	luminance := 0.2126*float64(r)/255 + 0.7152*float64(g)/255 + 0.0722*float64(b)/255
	return luminance < 0.5
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
