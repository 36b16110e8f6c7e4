// Package engine is sceneforge's façade: it owns the font/image caches
// and orchestrates Validate -> Solve -> Paint into one Render call, per
// spec.md §1's "single entry point" design note. It is grounded on
// Krispeckt-glimo's top-level Glimo struct (aliases.go), which plays the
// same "owns the caches, exposes one Render-shaped method" role for the
// teacher's instruction list.
package engine

import (
	"context"
	"image"
	"log"

	"github.com/lattice-ui/sceneforge/cache"
	"github.com/lattice-ui/sceneforge/compositor"
	"github.com/lattice-ui/sceneforge/geom"
	"github.com/lattice-ui/sceneforge/layout"
	"github.com/lattice-ui/sceneforge/scene"
	"github.com/lattice-ui/sceneforge/sferr"
	"github.com/lattice-ui/sceneforge/text"
)

// Config configures a new Engine. Logger defaults to log.Default() when
// nil; FontCacheSize/ImageCacheSize default to 32/16 when <= 0.
type Config struct {
	FontLoader     cache.FontLoader
	ImageLoader    cache.ImageLoader
	FontCacheSize  int
	ImageCacheSize int
	Logger         *log.Logger
}

// Engine is sceneforge's façade over layout and compositor, owning the
// font/image caches for its lifetime. Construct one with New and reuse
// it across renders — that is what makes the caches worth having.
type Engine struct {
	fonts  *cache.FontCache
	images *cache.ImageCache
	logger *log.Logger
	warned map[string]bool
}

// New constructs an Engine. A nil FontLoader/ImageLoader is valid: every
// font/image resolution then degrades immediately to the documented
// fallback (text.Fallback, a blank image frame), which is useful for
// tests and for --validate-only CLI runs that never touch resources.
func New(cfg Config) *Engine {
	if cfg.FontCacheSize <= 0 {
		cfg.FontCacheSize = 32
	}
	if cfg.ImageCacheSize <= 0 {
		cfg.ImageCacheSize = 16
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	fontLoader := cfg.FontLoader
	if fontLoader == nil {
		fontLoader = noFontLoader{}
	}
	imageLoader := cfg.ImageLoader
	if imageLoader == nil {
		imageLoader = noImageLoader{}
	}
	return &Engine{
		fonts:  cache.NewFontCache(fontLoader, cfg.FontCacheSize),
		images: cache.NewImageCache(imageLoader, cfg.ImageCacheSize),
		logger: cfg.Logger,
		warned: make(map[string]bool),
	}
}

// Render validates, lays out and rasterizes tree, returning the final
// RGBA image. Missing fonts/images never abort the render (spec.md
// §4.1): Engine logs at most one warning per distinct missing resource
// key for the lifetime of the Engine, then falls back to the documented
// default.
func (e *Engine) Render(ctx context.Context, tree scene.Tree) (*image.RGBA, error) {
	if err := scene.Validate(tree.Root); err != nil {
		return nil, err
	}
	computed, err := layout.Solve(tree, &measureContext{engine: e, ctx: ctx})
	if err != nil {
		return nil, err
	}
	return compositor.Paint(ctx, tree, computed, compositor.Resources{Fonts: e.fonts, Images: e.images})
}

// Validate checks tree.Root's structural invariants without laying out
// or rasterizing anything — the CLI's --validate flag uses this.
func (e *Engine) Validate(tree scene.Tree) error {
	return scene.Validate(tree.Root)
}

func (e *Engine) warnOnce(key string, err error) {
	if e.warned[key] {
		return
	}
	e.warned[key] = true
	e.logger.Printf("sceneforge: %v", err)
}

// measureContext adapts Engine's caches to layout.MeasureContext,
// degrading to text.Fallback/a 100×100 placeholder image size on any ResourceFailure
// and logging once via Engine.warnOnce, per spec.md §4.1.
type measureContext struct {
	engine *Engine
	ctx    context.Context
}

func (m *measureContext) MeasureText(props scene.TextProperties, content string) (float64, float64, error) {
	f, err := m.engine.fonts.Get(m.ctx, props.FontFamily, props.FontSize)
	if err != nil {
		m.engine.warnOnce("font:"+props.FontFamily, err)
		f = text.Fallback(props.FontSize)
	}
	f.SetLetterSpacing(props.LetterSpacing)
	w, h := f.Measure(content, props.LineHeightOrDefault())
	return w, h, nil
}

// TextAscent implements layout.MeasureContext for FirstBaseline/
// LastBaseline stack alignment, degrading to the same fallback face
// MeasureText uses on a font load failure.
func (m *measureContext) TextAscent(props scene.TextProperties) (float64, error) {
	f, err := m.engine.fonts.Get(m.ctx, props.FontFamily, props.FontSize)
	if err != nil {
		m.engine.warnOnce("font:"+props.FontFamily, err)
		f = text.Fallback(props.FontSize)
	}
	return f.AscentPx(), nil
}

// placeholderImageSize is the documented intrinsic size a missing image
// falls back to (spec.md §4.1: "image: a 100×100 placeholder").
const placeholderImageSize = 100

func (m *measureContext) ImageSize(source string) (geom.Size, error) {
	img, err := m.engine.images.Get(m.ctx, source)
	if err != nil {
		m.engine.warnOnce("image:"+source, err)
		return geom.NewSize(placeholderImageSize, placeholderImageSize), nil
	}
	b := img.Bounds()
	return geom.NewSize(float64(b.Dx()), float64(b.Dy())), nil
}

type noFontLoader struct{}

func (noFontLoader) LoadFont(ctx context.Context, family string) ([]byte, error) {
	return nil, &sferr.ResourceFailure{Kind: "font", Key: family, Cause: errNoLoaderConfigured}
}

type noImageLoader struct{}

func (noImageLoader) LoadImage(ctx context.Context, key string) (image.Image, error) {
	return nil, &sferr.ResourceFailure{Kind: "image", Key: key, Cause: errNoLoaderConfigured}
}

var errNoLoaderConfigured = noLoaderError{}

type noLoaderError struct{}

func (noLoaderError) Error() string { return "no loader configured" }
