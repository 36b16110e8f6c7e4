package cache_test

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"
	"testing"

	"github.com/lattice-ui/sceneforge/cache"
	"github.com/lattice-ui/sceneforge/sferr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingImageLoader struct {
	calls atomic.Int32
}

func (l *countingImageLoader) LoadImage(ctx context.Context, key string) (image.Image, error) {
	l.calls.Add(1)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	return img, nil
}

func TestImageCacheDeduplicatesLoads(t *testing.T) {
	loader := &countingImageLoader{}
	c := cache.NewImageCache(loader, 4)

	img1, err := c.Get(context.Background(), "a.png")
	require.NoError(t, err)
	img2, err := c.Get(context.Background(), "a.png")
	require.NoError(t, err)

	assert.Same(t, img1, img2)
	assert.EqualValues(t, 1, loader.calls.Load())
}

func TestImageCacheEvictsLeastRecentlyUsed(t *testing.T) {
	loader := &countingImageLoader{}
	c := cache.NewImageCache(loader, 1)

	_, err := c.Get(context.Background(), "a.png")
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "b.png")
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	_, err = c.Get(context.Background(), "a.png")
	require.NoError(t, err)
	assert.EqualValues(t, 3, loader.calls.Load())
}

type erroringFontLoader struct{}

func (erroringFontLoader) LoadFont(ctx context.Context, family string) ([]byte, error) {
	return nil, assertError{}
}

type assertError struct{}

func (assertError) Error() string { return "no such font" }

func TestFontCacheWrapsLoadErrorAsResourceFailure(t *testing.T) {
	c := cache.NewFontCache(erroringFontLoader{}, 4)
	_, err := c.Get(context.Background(), "Inter", 16)
	require.Error(t, err)
	var rf *sferr.ResourceFailure
	assert.ErrorAs(t, err, &rf)
}
