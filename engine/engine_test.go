package engine_test

import (
	"context"
	"testing"

	"github.com/lattice-ui/sceneforge/engine"
	"github.com/lattice-ui/sceneforge/geom"
	"github.com/lattice-ui/sceneforge/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWithoutLoadersDegradesGracefully(t *testing.T) {
	e := engine.New(engine.Config{})
	root := scene.NewText("t", "Hello", scene.TextProperties{FontSize: 16, Color: geom.Color{A: 255}})
	tree := scene.Tree{Canvas: scene.Canvas{Width: 100, Height: 40}, Root: root}

	img, err := e.Render(context.Background(), tree)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
}

func TestRenderRejectsInvalidTree(t *testing.T) {
	e := engine.New(engine.Config{})
	root := scene.NewVStack("s", scene.StackProperties{}, []scene.StackChild{
		{Node: scene.NewText("dup", "a", scene.TextProperties{})},
		{Node: scene.NewText("dup", "b", scene.TextProperties{})},
	})
	tree := scene.Tree{Canvas: scene.Canvas{Width: 100, Height: 40}, Root: root}

	_, err := e.Render(context.Background(), tree)
	require.Error(t, err)
}

func TestValidateAlone(t *testing.T) {
	e := engine.New(engine.Config{})
	root := scene.NewText("t", "ok", scene.TextProperties{})
	tree := scene.Tree{Canvas: scene.Canvas{Width: 10, Height: 10}, Root: root}
	assert.NoError(t, e.Validate(tree))
}
