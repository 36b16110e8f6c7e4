package cache

import (
	"context"
	"image"

	"github.com/lattice-ui/sceneforge/sferr"
	"golang.org/x/sync/singleflight"
)

// ImageLoader decodes the bitmap resource referenced by key (spec.md
// §3's ImageProperties.source). scenedsl/cmd adapters provide the actual
// decode (file, embedded asset, network); cache only owns bounding and
// deduplication.
type ImageLoader interface {
	LoadImage(ctx context.Context, key string) (image.Image, error)
}

// ImageCache bounds the number of decoded images held in memory and
// collapses concurrent loads of the same key into one decode, per
// spec.md §5. Must be constructed with NewImageCache and owned by its
// creator.
type ImageCache struct {
	loader ImageLoader
	images *lru[image.Image]
	group  singleflight.Group
}

// NewImageCache constructs an ImageCache bounded to capacity distinct
// decoded images.
func NewImageCache(loader ImageLoader, capacity int) *ImageCache {
	return &ImageCache{loader: loader, images: newLRU[image.Image](capacity, nil)}
}

// Get returns the decoded image for key, decoding and caching it on
// first use. A load failure is a *sferr.ResourceFailure; per spec.md
// §4.1 the caller degrades to a documented placeholder and logs once.
func (c *ImageCache) Get(ctx context.Context, key string) (image.Image, error) {
	if img, ok := c.images.get(key); ok {
		return img, nil
	}
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if img, ok := c.images.get(key); ok {
			return img, nil
		}
		img, err := c.loader.LoadImage(ctx, key)
		if err != nil {
			return nil, &sferr.ResourceFailure{Kind: "image", Key: key, Cause: err}
		}
		c.images.put(key, img)
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// Len reports the number of images currently resident.
func (c *ImageCache) Len() int { return c.images.len() }
