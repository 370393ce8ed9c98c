// Package palette defines the named color sets used for annotations.
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Palette assigns a stroke color to each annotation tool. Crop frames
// are not palette-driven: they always use the fixed green so a crop
// region is never mistaken for a highlight.
type Palette struct {
	Name  string
	Arrow color.RGBA
	Rect  color.RGBA
}

// Default returns the stock palette: red arrows and blue rectangles.
func Default() *Palette {
	return &Palette{
		Name:  "default",
		Arrow: color.RGBA{R: 0xff, A: 0xff},
		Rect:  color.RGBA{R: 0x00, G: 0x88, B: 0xff, A: 0xff},
	}
}

// Builtin returns the named built-in palette, or nil.
func Builtin(name string) *Palette {
	switch strings.ToLower(name) {
	case "", "default":
		return Default()
	case "dark":
		return &Palette{
			Name:  "dark",
			Arrow: colornames.Orangered,
			Rect:  colornames.Deepskyblue,
		}
	case "mono":
		return &Palette{
			Name:  "mono",
			Arrow: colornames.White,
			Rect:  colornames.Gainsboro,
		}
	default:
		return nil
	}
}

// ParseColor accepts #RGB, #RRGGBB, #RRGGBBAA or an SVG 1.1 color name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		return color.RGBA{}, fmt.Errorf("unknown color name %q", s)
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		val, err := strconv.ParseUint(hex, 16, 16)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("bad hex color %q: %w", s, err)
		}
		r := uint8(val >> 8 & 0xf)
		g := uint8(val >> 4 & 0xf)
		b := uint8(val & 0xf)
		return color.RGBA{R: r<<4 | r, G: g<<4 | g, B: b<<4 | b, A: 0xff}, nil
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("bad hex color %q: %w", s, err)
		}
		return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 0xff}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("bad hex color %q: %w", s, err)
		}
		return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
	}
	return color.RGBA{}, fmt.Errorf("bad hex color %q", s)
}

// FormatColor renders c as #RRGGBB, or #RRGGBBAA when not fully opaque.
func FormatColor(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
