package geom

import (
	"fmt"
	"math"
	"strings"
)

// Color is a 4-channel 8-bit-per-channel RGBA color. Premultiplication is
// never stored; all arithmetic here works in straight (non-premultiplied)
// alpha, per spec.md §4.3.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements color.Color via the stdlib's 16-bit-per-channel,
// alpha-premultiplied contract.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A) * 0x101
	r = uint32(c.R) * 0x101 * uint32(c.A) / 255
	g = uint32(c.G) * 0x101 * uint32(c.A) / 255
	b = uint32(c.B) * 0x101 * uint32(c.A) / 255
	return
}

// namedColors is the fixed palette from spec.md §3.
var namedColors = map[string]Color{
	"transparent": {0, 0, 0, 0},
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 255, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"cyan":        {0, 255, 255, 255},
	"magenta":     {255, 0, 255, 255},
	"gray":        {128, 128, 128, 255},
	"lightgray":   {211, 211, 211, 255},
	"darkgray":    {169, 169, 169, 255},
}

// ParseColor parses the grammar from spec.md §3/§6: `#RGB`, `#RRGGBB`,
// `#RRGGBBAA`, or one of the fixed named colors (case-insensitive). It is a
// total function on that grammar and rejects all other strings, per
// spec.md §8 invariant 4.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("geom: empty color literal")
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	return Color{}, fmt.Errorf("geom: unrecognized color literal %q", s)
}

func parseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	var r, g, b uint8
	var a uint8 = 255
	switch len(hex) {
	case 3:
		var rr, gg, bb uint8
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &rr, &gg, &bb); err != nil {
			return Color{}, fmt.Errorf("geom: invalid hex color %q: %w", s, err)
		}
		r, g, b = rr*17, gg*17, bb*17
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("geom: invalid hex color %q: %w", s, err)
		}
	case 8:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return Color{}, fmt.Errorf("geom: invalid hex color %q: %w", s, err)
		}
	default:
		return Color{}, fmt.Errorf("geom: invalid hex color length in %q", s)
	}
	return Color{R: r, G: g, B: b, A: a}, nil
}

// ToHex formats the color back to `#RRGGBB` (opaque) or `#RRGGBBAA`,
// matching the round-trip property in spec.md §8.
func (c Color) ToHex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// WithOpacity scales the alpha channel by a [0,1] factor, used for
// ContainerProperties/ImageProperties opacity (SPEC_FULL.md §5).
func (c Color) WithOpacity(opacity float64) Color {
	opacity = ClampF64(opacity, 0, 1)
	return Color{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(float64(c.A) * opacity))}
}

// Over performs straight-alpha Porter-Duff source-over compositing of c
// (foreground) atop bg (background), per spec.md §4.3:
//
//	αo = αf + αb·(1−αf)
//	co = (cf·αf + cb·αb·(1−αf)) / αo
func (c Color) Over(bg Color) Color {
	af := float64(c.A) / 255
	ab := float64(bg.A) / 255
	ao := af + ab*(1-af)
	if ao <= 0 {
		return Color{}
	}
	blend := func(cf, cb uint8) uint8 {
		out := (float64(cf)*af + float64(cb)*ab*(1-af)) / ao
		return uint8(math.Round(ClampF64(out, 0, 255)))
	}
	return Color{
		R: blend(c.R, bg.R),
		G: blend(c.G, bg.G),
		B: blend(c.B, bg.B),
		A: uint8(math.Round(ao * 255)),
	}
}
