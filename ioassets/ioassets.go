// Package ioassets is sceneforge's disk-backed resource loader: the
// concrete cache.FontLoader/cache.ImageLoader the CLI wires into
// engine.New. It is adapted from Krispeckt-glimo's
// internal/core/image/utils.go (LoadImage/ToRGBA), generalized from a
// single image-loading helper into the pair of loader interfaces
// cache.FontCache/cache.ImageCache expect, and extended with a font
// family -> path resolution table since the teacher never loaded fonts
// from disk by family name.
package ioassets

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
)

// DirLoader resolves both image and font resources beneath Root: images
// by their scene `source` key taken as a path relative to Root, and
// fonts by looking up family in FontPaths (falling back to
// "<Root>/<family>.ttf" when the family has no explicit entry).
type DirLoader struct {
	Root      string
	FontPaths map[string]string // family -> absolute or Root-relative .ttf path
}

// LoadImage implements cache.ImageLoader.
func (d DirLoader) LoadImage(ctx context.Context, key string) (image.Image, error) {
	path := key
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.Root, key)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// LoadFont implements cache.FontLoader.
func (d DirLoader) LoadFont(ctx context.Context, family string) ([]byte, error) {
	path, ok := d.FontPaths[family]
	if !ok {
		path = filepath.Join(d.Root, family+".ttf")
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(d.Root, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font %q: %w", path, err)
	}
	return data, nil
}

// ToRGBA converts src to *image.RGBA, returning src itself when it
// already is one — avoids a redundant copy for the common case of a
// freshly decoded PNG.
func ToRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return dst
}
