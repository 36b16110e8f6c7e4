// Package compositor walks a laid-out scene.Tree in document order and
// rasterizes it into an *image.RGBA, per spec.md §4.3. It is grounded on
// Krispeckt-glimo's internal/core/image/utils.go (ResizeRGBA/ToRGBA via
// golang.org/x/image/draw's CatmullRom kernel — the pack's substitute
// for the spec's "Lanczos3 recommended", documented in SPEC_FULL.md §8)
// and on its internal/render/font.go glyph-drawing loop, generalized
// from the teacher's gamma-corrected linear-light blending to the
// spec's straight (non-premultiplied) alpha Porter-Duff "over" formula
// (geom.Color.Over, spec.md §4.3).
package compositor

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sort"

	xdraw "golang.org/x/image/draw"

	"github.com/lattice-ui/sceneforge/cache"
	"github.com/lattice-ui/sceneforge/geom"
	"github.com/lattice-ui/sceneforge/layout"
	"github.com/lattice-ui/sceneforge/scene"
	"github.com/lattice-ui/sceneforge/text"
)

// Resources supplies the bound caches the compositor reads from. The
// engine package constructs and owns both caches; compositor never
// allocates a cache itself (spec.md's Design Notes rule out hidden
// singletons).
type Resources struct {
	Fonts  *cache.FontCache
	Images *cache.ImageCache
}

// zEntry pairs a node with its resolved frame for the paint order sort.
type zEntry struct {
	node  scene.Node
	frame geom.Rect
}

// Paint renders tree onto a freshly allocated canvas-sized *image.RGBA
// filled with tree.Canvas.Background, walking nodes in document order
// with ZIndex reordering siblings stably (spec.md §4.1's stacking-order rule).
func Paint(ctx context.Context, tree scene.Tree, computed *layout.Result, res Resources) (*image.RGBA, error) {
	w := int(geom.ClampF64(tree.Canvas.Width, 0, 1<<20))
	h := int(geom.ClampF64(tree.Canvas.Height, 0, 1<<20))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	fillBackground(dst, tree.Canvas.Background)

	order := flattenPaintOrder(tree.Root, computed)
	for _, e := range order {
		if err := paintNode(ctx, dst, e.node, e.frame, res); err != nil {
			return dst, err
		}
	}
	return dst, nil
}

func fillBackground(dst *image.RGBA, c geom.Color) {
	if c.A == 0 {
		return
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Over)
}

// flattenPaintOrder produces a stable document-order-then-ZIndex paint
// list. Document order already visits parents before children and
// siblings left to right / top to bottom; ZIndex only reorders within
// that, via a stable sort so equal ZIndex values keep document order
// (spec.md §4.1).
func flattenPaintOrder(root scene.Node, computed *layout.Result) []zEntry {
	var entries []zEntry
	var walk func(n scene.Node)
	walk = func(n scene.Node) {
		if n == nil {
			return
		}
		if frame, ok := computed.Frames[n.ID()]; ok {
			entries = append(entries, zEntry{node: n, frame: frame})
		}
		children := append([]scene.Node(nil), scene.Children(n)...)
		sort.SliceStable(children, func(i, j int) bool {
			return children[i].ZIndex() < children[j].ZIndex()
		})
		for _, c := range children {
			walk(c)
		}
	}
	walk(root)
	return entries
}

func paintNode(ctx context.Context, dst *image.RGBA, n scene.Node, frame geom.Rect, res Resources) error {
	switch t := n.(type) {
	case *scene.ContainerNode:
		return paintContainer(dst, t, frame)
	case *scene.TextNode:
		return paintText(ctx, dst, t, frame, res.Fonts)
	case *scene.ImageNode:
		return paintImage(ctx, dst, t, frame, res.Images)
	default:
		return nil // StackNode/SpacerNode paint nothing themselves; children already enumerated
	}
}

func paintContainer(dst *image.RGBA, n *scene.ContainerNode, frame geom.Rect) error {
	p := n.Properties
	r := frame.Round()
	opacity := p.OpacityOrDefault()

	if p.Background.A > 0 {
		bg := p.Background.WithOpacity(float64(p.Background.A)/255*opacity)
		blendRect(dst, r, bg)
	}
	if p.BorderWidth > 0 && p.BorderColor.A > 0 {
		border := p.BorderColor.WithOpacity(float64(p.BorderColor.A) / 255 * opacity)
		strokeRect(dst, r, p.BorderWidth, border)
	}
	return nil
}

// blendRect composites solid color c over every pixel in r using
// spec.md §4.3's straight-alpha "over" formula.
func blendRect(dst *image.RGBA, r geom.Rect, c geom.Color) {
	bounds := dst.Bounds()
	x0, y0 := int(r.Origin.X), int(r.Origin.Y)
	x1, y1 := int(r.Right()), int(r.Bottom())
	for y := y0; y < y1; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := x0; x < x1; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			blendPixel(dst, x, y, c)
		}
	}
}

func blendPixel(dst *image.RGBA, x, y int, fg geom.Color) {
	if fg.A == 0 {
		return
	}
	bg := color.NRGBAModel.Convert(dst.RGBAAt(x, y)).(color.NRGBA)
	bgColor := geom.Color{R: bg.R, G: bg.G, B: bg.B, A: bg.A}
	out := fg.Over(bgColor)
	dst.Set(x, y, out)
}

// strokeRect draws a border of the given width just inside r's edges —
// the teacher's shapes are always filled rectangles, so this is a
// generalization rather than an adaptation of any single teacher
// routine: four blendRect calls, one per edge.
func strokeRect(dst *image.RGBA, r geom.Rect, width float64, c geom.Color) {
	w := geom.ClampF64(width, 0, geom.MinF64(r.Width(), r.Height())/2)
	if w <= 0 {
		return
	}
	blendRect(dst, geom.NewRect(r.Origin.X, r.Origin.Y, r.Width(), w), c)
	blendRect(dst, geom.NewRect(r.Origin.X, r.Bottom()-w, r.Width(), w), c)
	blendRect(dst, geom.NewRect(r.Origin.X, r.Origin.Y, w, r.Height()), c)
	blendRect(dst, geom.NewRect(r.Right()-w, r.Origin.Y, w, r.Height()), c)
}

func paintText(ctx context.Context, dst *image.RGBA, n *scene.TextNode, frame geom.Rect, fonts *cache.FontCache) error {
	f, err := fonts.Get(ctx, n.Properties.FontFamily, n.Properties.FontSize)
	if err != nil {
		f = text.Fallback(n.Properties.FontSize)
	}
	f.SetLetterSpacing(n.Properties.LetterSpacing)

	lines := splitLines(n.Content)
	lineHeight := n.Properties.FontSize * n.Properties.LineHeightOrDefault()
	if n.Properties.MaxLines > 0 && len(lines) > n.Properties.MaxLines {
		lines = lines[:n.Properties.MaxLines]
	}
	r := frame.Round()
	baseline := float64(r.Origin.Y) + f.AscentPx()
	for _, line := range lines {
		lw := f.MeasureLine(line)
		x := float64(r.Origin.X)
		switch n.Properties.Alignment {
		case scene.AlignCenter:
			x += (r.Width() - lw) / 2
		case scene.AlignTrailing:
			x += r.Width() - lw
		}
		// AlignJustified falls back to Leading in this core (spec.md §4.2
		// step 2) — no inter-word stretching is implemented, so it behaves
		// exactly like the default x above.
		f.DrawLine(dst, n.Properties.Color, line, x, baseline)
		baseline += lineHeight
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + len(string(r))
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func paintImage(ctx context.Context, dst *image.RGBA, n *scene.ImageNode, frame geom.Rect, images *cache.ImageCache) error {
	src, err := images.Get(ctx, n.Source)
	if err != nil {
		return nil // spec.md §4.1: missing image degrades to a blank frame, caller already logged via the cache's ResourceFailure
	}
	r := frame.Round()
	target := placementForScaleMode(n.Properties.ScaleMode, src.Bounds(), r) // frame-local coordinates

	scratch := image.NewRGBA(image.Rect(0, 0, int(r.Width()), int(r.Height())))
	xdraw.CatmullRom.Scale(scratch, target, src, src.Bounds(), xdraw.Src, nil)

	opacity := n.Properties.OpacityOrDefault()
	compositeRGBAOver(dst, scratch, r.Origin, opacity, n.Properties.TintColor)
	return nil
}

// placementForScaleMode computes the destination rectangle (within
// frame) that src should be scaled into, per spec.md §3's scale_mode
// (Fit/Fill/Stretch/Center).
func placementForScaleMode(mode scene.ImageScaleMode, srcBounds image.Rectangle, frame geom.Rect) image.Rectangle {
	fw, fh := frame.Width(), frame.Height()
	sw, sh := float64(srcBounds.Dx()), float64(srcBounds.Dy())
	if sw == 0 || sh == 0 {
		return image.Rect(0, 0, int(fw), int(fh))
	}
	switch mode {
	case scene.ScaleStretch:
		return image.Rect(0, 0, int(fw), int(fh))
	case scene.ScaleCenter:
		x := (fw - sw) / 2
		y := (fh - sh) / 2
		return image.Rect(int(x), int(y), int(x+sw), int(y+sh))
	case scene.ScaleFill:
		scale := geom.MaxF64(fw/sw, fh/sh)
		w, h := sw*scale, sh*scale
		x, y := (fw-w)/2, (fh-h)/2
		return image.Rect(int(x), int(y), int(x+w), int(y+h))
	default: // ScaleFit
		scale := geom.MinF64(fw/sw, fh/sh)
		w, h := sw*scale, sh*scale
		x, y := (fw-w)/2, (fh-h)/2
		return image.Rect(int(x), int(y), int(x+w), int(y+h))
	}
}

// compositeRGBAOver blends scratch onto dst at origin using spec.md
// §4.3's straight-alpha over formula, applying opacity and an optional
// tint multiplicatively per pixel.
func compositeRGBAOver(dst *image.RGBA, scratch *image.RGBA, origin geom.Point, opacity float64, tint *geom.Color) {
	b := scratch.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		dy := int(origin.Y) + (y - b.Min.Y)
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := int(origin.X) + (x - b.Min.X)
			if dx < dst.Bounds().Min.X || dx >= dst.Bounds().Max.X || dy < dst.Bounds().Min.Y || dy >= dst.Bounds().Max.Y {
				continue
			}
			px := color.NRGBAModel.Convert(scratch.RGBAAt(x, y)).(color.NRGBA)
			fg := geom.Color{R: px.R, G: px.G, B: px.B, A: px.A}
			if tint != nil {
				fg.R = uint8(uint32(fg.R) * uint32(tint.R) / 255)
				fg.G = uint8(uint32(fg.G) * uint32(tint.G) / 255)
				fg.B = uint8(uint32(fg.B) * uint32(tint.B) / 255)
			}
			fg = fg.WithOpacity(float64(fg.A) / 255 * opacity)
			blendPixel(dst, dx, dy, fg)
		}
	}
}
