// Package text shapes TrueType fonts and rasterizes glyphs, per spec.md
// §4.2. It is grounded on Krispeckt-glimo's internal/render/font.go, adapted
// from the teacher's point+DPI sizing model to the spec's pixel-based
// font_size (spec.md §3's TextProperties.font_size is specified in px).
package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Font wraps a parsed TrueType font together with a fixed pixel size,
// exposing the measurement and rasterization primitives the layout solver
// and compositor need.
type Font struct {
	tt            *truetype.Font
	sizePx        float64
	letterSpacing float64 // extra px of tracking added between glyphs
	face          font.Face
}

// Parse parses TrueType font bytes and returns a Font at the given pixel
// size. Use SetSize/SetLetterSpacing to adjust after construction, or
// Parse again for a different fixed size (faces are cheap to rebuild; the
// cache package is responsible for amortizing this across renders).
func Parse(data []byte, sizePx float64) (*Font, error) {
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	f := &Font{tt: ttf}
	f.SetSize(sizePx)
	return f, nil
}

// Fallback returns the bundled fallback face used when a requested font
// family cannot be loaded (spec.md §4.1 "If the font ... cannot be
// obtained, fall back to a documented default"). It wraps
// golang.org/x/image/font/basicfont.Face7x13, a fixed-size bitmap face
// already vendored transitively via golang.org/x/image — no font binary
// needs to be embedded in this module. The face does not rescale with
// sizePx (a fixed bitmap font has no continuous size axis); sizePx is kept
// for Font.SizePx() and for Measure's line-height arithmetic, so measured
// heights still follow the requested font size.
func Fallback(sizePx float64) *Font {
	if sizePx <= 0 {
		sizePx = 13
	}
	return &Font{face: basicfont.Face7x13, sizePx: sizePx}
}

// SetSize changes the pixel size, rebuilding the cached face. A size <= 0
// is clamped to a small positive value to avoid degenerate faces.
func (f *Font) SetSize(sizePx float64) {
	if sizePx <= 0 {
		sizePx = 0.01
	}
	f.sizePx = sizePx
	f.face = truetype.NewFace(f.tt, &truetype.Options{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// SetLetterSpacing sets extra tracking, in pixels, applied between glyphs
// (TextProperties.letter_spacing in spec.md §3).
func (f *Font) SetLetterSpacing(px float64) { f.letterSpacing = px }

// SizePx returns the current pixel size.
func (f *Font) SizePx() float64 { return f.sizePx }

// Face exposes the underlying font.Face for callers that need it directly.
func (f *Font) Face() font.Face { return f.face }

// AscentPx returns the distance from the baseline to the font's ascent
// line, in pixels — used for the rigorous baseline formula (SPEC_FULL.md
// §7) and for FirstBaseline/LastBaseline stack alignment.
func (f *Font) AscentPx() float64 {
	return float64(f.face.Metrics().Ascent) / 64
}

// DescentPx returns the distance from the baseline to the font's descent
// line, in pixels.
func (f *Font) DescentPx() float64 {
	return float64(f.face.Metrics().Descent) / 64
}

// LineHeightPx returns the font's intrinsic single-line height in pixels
// (ascent + descent + internal leading).
func (f *Font) LineHeightPx() float64 {
	return float64(f.face.Metrics().Height) / 64
}

// LeadingPx returns the extra vertical space between lines beyond
// ascent+descent.
func (f *Font) LeadingPx() float64 {
	m := f.face.Metrics()
	return float64(m.Height-(m.Ascent+m.Descent)) / 64
}

// MeasureLine measures a single line of text (no newlines), returning the
// advance width in pixels including letter spacing between glyphs
// (spec.md §4.2 Measurement).
func (f *Font) MeasureLine(s string) float64 {
	if s == "" {
		return 0
	}
	adv := font.MeasureString(f.face, s)
	w := float64(adv) / 64
	n := len([]rune(s))
	if n > 1 {
		w += float64(n-1) * f.letterSpacing
	}
	return w
}

// Measure implements spec.md §4.2's measurement contract: split content at
// '\n', sum glyph advances per line, and return
// (max_line_width, lines * font_size * line_height). For non-empty content
// the height is rounded up to a whole pixel.
func (f *Font) Measure(content string, lineHeightMultiplier float64) (width, height float64) {
	if content == "" {
		return 0, f.sizePx * lineHeightMultiplier
	}
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if w := f.MeasureLine(line); w > width {
			width = w
		}
	}
	height = math.Ceil(float64(len(lines)) * f.sizePx * lineHeightMultiplier)
	return width, height
}

// DrawLine rasterizes a single line at (x, baselineY), blending each glyph's
// coverage into dst using col as the foreground color. Letter spacing is
// applied between glyphs, not after the last one, per spec.md §4.2 step 3.
func (f *Font) DrawLine(dst draw.Image, col color.Color, s string, x, baselineY float64) {
	if s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: f.face,
		Dot: fixed.Point26_6{
			X: toFixed(x),
			Y: toFixed(baselineY),
		},
	}
	track := toFixed(f.letterSpacing)
	runes := []rune(s)
	for i, r := range runes {
		d.DrawString(string(r))
		if i < len(runes)-1 {
			d.Dot.X += track
		}
	}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
