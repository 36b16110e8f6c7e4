package compositor_test

import (
	"context"
	"image"
	"testing"

	"github.com/lattice-ui/sceneforge/cache"
	"github.com/lattice-ui/sceneforge/compositor"
	"github.com/lattice-ui/sceneforge/geom"
	"github.com/lattice-ui/sceneforge/layout"
	"github.com/lattice-ui/sceneforge/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubImageLoader struct{}

func (stubImageLoader) LoadImage(ctx context.Context, key string) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, image.White)
		}
	}
	return img, nil
}

type stubFontLoader struct{}

func (stubFontLoader) LoadFont(ctx context.Context, family string) ([]byte, error) {
	return nil, assertErr{}
}

type assertErr struct{}

func (assertErr) Error() string { return "no font available in this test" }

func resources() compositor.Resources {
	return compositor.Resources{
		Fonts:  cache.NewFontCache(stubFontLoader{}, 4),
		Images: cache.NewImageCache(stubImageLoader{}, 4),
	}
}

func TestPaintFillsBackground(t *testing.T) {
	root := scene.NewContainer("root", scene.ContainerProperties{}, nil)
	tree := scene.Tree{Canvas: scene.Canvas{Width: 10, Height: 10, Background: geom.Color{R: 10, G: 20, B: 30, A: 255}}, Root: root}
	computed := &layout.Result{Frames: map[string]geom.Rect{"root": geom.NewRect(0, 0, 10, 10)}}

	img, err := compositor.Paint(context.Background(), tree, computed, resources())
	require.NoError(t, err)
	px := img.RGBAAt(0, 0)
	assert.Equal(t, uint8(10), px.R)
	assert.Equal(t, uint8(20), px.G)
	assert.Equal(t, uint8(30), px.B)
}

func TestPaintContainerBackgroundFillsItsOwnRect(t *testing.T) {
	root := scene.NewContainer("box", scene.ContainerProperties{Background: geom.Color{R: 255, A: 255}}, nil)
	tree := scene.Tree{Canvas: scene.Canvas{Width: 20, Height: 20}, Root: root}
	computed := &layout.Result{Frames: map[string]geom.Rect{"box": geom.NewRect(5, 5, 10, 10)}}

	img, err := compositor.Paint(context.Background(), tree, computed, resources())
	require.NoError(t, err)
	inside := img.RGBAAt(8, 8)
	outside := img.RGBAAt(0, 0)
	assert.Equal(t, uint8(255), inside.R)
	assert.Equal(t, uint8(0), outside.A)
}

func TestPaintTextFallsBackToBundledFaceWhenFontLoadFails(t *testing.T) {
	root := scene.NewText("t", "hi", scene.TextProperties{FontSize: 12, Color: geom.Color{A: 255}})
	tree := scene.Tree{Canvas: scene.Canvas{Width: 40, Height: 20}, Root: root}
	computed := &layout.Result{Frames: map[string]geom.Rect{"t": geom.NewRect(0, 0, 40, 20)}}

	_, err := compositor.Paint(context.Background(), tree, computed, resources())
	assert.NoError(t, err)
}

func TestPaintImageScalesIntoFrame(t *testing.T) {
	root := scene.NewImage("img", "a.png", scene.ImageProperties{ScaleMode: scene.ScaleStretch})
	tree := scene.Tree{Canvas: scene.Canvas{Width: 20, Height: 20}, Root: root}
	computed := &layout.Result{Frames: map[string]geom.Rect{"img": geom.NewRect(0, 0, 20, 20)}}

	img, err := compositor.Paint(context.Background(), tree, computed, resources())
	require.NoError(t, err)
	px := img.RGBAAt(10, 10)
	assert.Equal(t, uint8(255), px.R)
}
