package cache

import (
	"context"
	"strconv"

	"github.com/lattice-ui/sceneforge/sferr"
	"github.com/lattice-ui/sceneforge/text"
	"golang.org/x/sync/singleflight"
)

// FontLoader fetches the raw bytes for a font family name. The scenedsl
// and cmd/sceneforge adapters supply a concrete implementation (e.g.
// reading from disk or an embedded set); cache stays agnostic to the
// source.
type FontLoader interface {
	LoadFont(ctx context.Context, family string) ([]byte, error)
}

// FontCache bounds the number of parsed *text.Font instances held in
// memory and collapses concurrent loads of the same family into one
// parse, per spec.md §5. A FontCache must be constructed with
// NewFontCache and owned by its creator (spec.md's Design Notes rule out
// a hidden package-level singleton).
type FontCache struct {
	loader FontLoader
	sizes  *lru[*text.Font] // keyed by "family@sizePx"
	group  singleflight.Group
}

// NewFontCache constructs a FontCache bounded to capacity distinct
// (family, size) faces.
func NewFontCache(loader FontLoader, capacity int) *FontCache {
	return &FontCache{loader: loader, sizes: newLRU[*text.Font](capacity, nil)}
}

// Get returns a *text.Font for family at sizePx, parsing and caching it
// on first use. Concurrent callers requesting the same key share one
// parse via singleflight. A load failure is a *sferr.ResourceFailure;
// callers are expected to fall back to text.Fallback and log once,
// per spec.md §4.1's "bundled fallback face" rule — FontCache itself
// never silently substitutes the fallback, so the caller controls
// warning policy.
func (c *FontCache) Get(ctx context.Context, family string, sizePx float64) (*text.Font, error) {
	key := cacheKey(family, sizePx)
	if f, ok := c.sizes.get(key); ok {
		return f, nil
	}
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if f, ok := c.sizes.get(key); ok {
			return f, nil
		}
		data, err := c.loader.LoadFont(ctx, family)
		if err != nil {
			return nil, &sferr.ResourceFailure{Kind: "font", Key: family, Cause: err}
		}
		f, err := text.Parse(data, sizePx)
		if err != nil {
			return nil, &sferr.ResourceFailure{Kind: "font", Key: family, Cause: err}
		}
		c.sizes.put(key, f)
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*text.Font), nil
}

// Len reports the number of faces currently resident, for tests and
// diagnostics.
func (c *FontCache) Len() int { return c.sizes.len() }

// cacheKey rounds sizePx to hundredths of a pixel so cache lookups
// never depend on float64 equality: sizes that round to the same
// hundredth (e.g. 12.0 and 12.00000001) share one cached face.
func cacheKey(family string, sizePx float64) string {
	scaled := int64(sizePx*100 + 0.5)
	return family + "@" + strconv.FormatInt(scaled, 10)
}
