package render

import (
	"fmt"
	"image/color"
)

// ParseColor parses a #RRGGBB hex string into an opaque RGBA color.
func ParseColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q must be in #RRGGBB form", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("color %q must be in #RRGGBB form", s)
	}

	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Palette holds the colors used by the flight-strip layout. Text, accent,
// background and box come from configuration; the remaining values are
// fixed aviation-display tones.
type Palette struct {
	Text       color.RGBA
	Accent     color.RGBA
	Background color.RGBA
	Box        color.RGBA
	RouteLine  color.RGBA
	Plane      color.RGBA
	Separator  color.RGBA
	Label      color.RGBA
}

// NewPalette builds a palette from the four configurable hex colors.
func NewPalette(text, accent, background, box string) (Palette, error) {
	var p Palette
	var err error

	if p.Text, err = ParseColor(text); err != nil {
		return p, err
	}
	if p.Accent, err = ParseColor(accent); err != nil {
		return p, err
	}
	if p.Background, err = ParseColor(background); err != nil {
		return p, err
	}
	if p.Box, err = ParseColor(box); err != nil {
		return p, err
	}

	p.RouteLine = color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 255}
	p.Plane = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 255}
	p.Separator = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}
	p.Label = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 255}

	return p, nil
}
