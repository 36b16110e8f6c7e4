package layout_test

import (
	"testing"

	"github.com/lattice-ui/sceneforge/geom"
	"github.com/lattice-ui/sceneforge/layout"
	"github.com/lattice-ui/sceneforge/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCtx gives every non-empty text node an 80px width and a height of
// font size × line height (80x20 for the 20px text used below), and every
// image a fixed natural size, so tests exercise the solver's geometry
// without depending on the text/cache packages.
type stubCtx struct{}

func (stubCtx) MeasureText(props scene.TextProperties, content string) (float64, float64, error) {
	if content == "" {
		return 0, props.FontSize, nil
	}
	return 80, props.FontSize * props.LineHeightOrDefault(), nil
}

func (stubCtx) ImageSize(source string) (geom.Size, error) {
	return geom.NewSize(200, 100), nil
}

func (stubCtx) TextAscent(props scene.TextProperties) (float64, error) {
	return props.FontSize * 0.8, nil
}

func TestSolveCentersTitleOnCanvas(t *testing.T) {
	root := scene.NewText("title", "Hello", scene.TextProperties{FontSize: 20},
		scene.CenterXTo("", 0, scene.PriorityRequired),
		scene.CenterYTo("", 0, scene.PriorityRequired),
	)
	tree := scene.Tree{Canvas: scene.Canvas{Width: 400, Height: 300}, Root: root}
	res, err := layout.Solve(tree, stubCtx{})
	require.NoError(t, err)
	frame := res.Frames["title"]
	assert.InDelta(t, 200, frame.CenterX(), 0.01)
	assert.InDelta(t, 150, frame.CenterY(), 0.01)
}

func TestSolveStretchedImageFillsCanvas(t *testing.T) {
	root := scene.NewImage("bg", "photo.png", scene.ImageProperties{ScaleMode: scene.ScaleStretch},
		scene.WidthPercent(1.0, scene.PriorityRequired),
		scene.HeightPercent(1.0, scene.PriorityRequired),
	)
	tree := scene.Tree{Canvas: scene.Canvas{Width: 500, Height: 250}, Root: root}
	res, err := layout.Solve(tree, stubCtx{})
	require.NoError(t, err)
	frame := res.Frames["bg"]
	assert.Equal(t, 500.0, frame.Width())
	assert.Equal(t, 250.0, frame.Height())
}

func TestSolveVStackWithSpacing(t *testing.T) {
	root := scene.NewVStack("col", scene.StackProperties{Spacing: 10}, []scene.StackChild{
		{Node: scene.NewText("a", "one", scene.TextProperties{FontSize: 20})},
		{Node: scene.NewText("b", "two", scene.TextProperties{FontSize: 20})},
	})
	tree := scene.Tree{Canvas: scene.Canvas{Width: 400, Height: 300}, Root: root}
	res, err := layout.Solve(tree, stubCtx{})
	require.NoError(t, err)
	a, b := res.Frames["a"], res.Frames["b"]
	assert.InDelta(t, a.Bottom()+10, b.Origin.Y, 0.01)
}

func TestSolvePercentWidth(t *testing.T) {
	root := scene.NewContainer("box", scene.ContainerProperties{}, nil,
		scene.WidthPercent(0.5, scene.PriorityRequired),
		scene.Height(50, scene.PriorityRequired),
	)
	tree := scene.Tree{Canvas: scene.Canvas{Width: 400, Height: 300}, Root: root}
	res, err := layout.Solve(tree, stubCtx{})
	require.NoError(t, err)
	assert.Equal(t, 200.0, res.Frames["box"].Width())
}

func TestSolveRequiredOverridesIntrinsic(t *testing.T) {
	root := scene.NewText("t", "Hello", scene.TextProperties{FontSize: 20},
		scene.Width(999, scene.PriorityRequired),
	)
	tree := scene.Tree{Canvas: scene.Canvas{Width: 400, Height: 300}, Root: root}
	res, err := layout.Solve(tree, stubCtx{})
	require.NoError(t, err)
	assert.Equal(t, 999.0, res.Frames["t"].Width())
}

func TestSolveFlexItemMarginPushesSiblingAlong(t *testing.T) {
	root := scene.NewHStack("row", scene.StackProperties{}, []scene.StackChild{
		{Node: scene.NewContainer("a", scene.ContainerProperties{}, nil, scene.Width(40, scene.PriorityRequired), scene.Height(20, scene.PriorityRequired)),
			FlexItem: &scene.FlexItemStyle{Shrink: 1, Basis: -1, Margin: geom.EdgeInsets{Right: 15}}},
		{Node: scene.NewContainer("b", scene.ContainerProperties{}, nil, scene.Width(40, scene.PriorityRequired), scene.Height(20, scene.PriorityRequired)),
			FlexItem: &scene.FlexItemStyle{Shrink: 1, Basis: -1}},
	})
	root.Flex = &scene.FlexDirective{Axis: scene.FlexRow}
	tree := scene.Tree{Canvas: scene.Canvas{Width: 400, Height: 100}, Root: root}
	res, err := layout.Solve(tree, stubCtx{})
	require.NoError(t, err)
	a, b := res.Frames["a"], res.Frames["b"]
	assert.InDelta(t, a.Right()+15, b.Origin.X, 0.01)
}

func TestSolveFlexAbsoluteChildSkipsFlow(t *testing.T) {
	top := 5.0
	left := 5.0
	root := scene.NewHStack("row", scene.StackProperties{}, []scene.StackChild{
		{Node: scene.NewContainer("badge", scene.ContainerProperties{}, nil, scene.Width(10, scene.PriorityRequired), scene.Height(10, scene.PriorityRequired)),
			FlexItem: &scene.FlexItemStyle{Position: scene.PositionAbsolute, Top: &top, Left: &left}},
		{Node: scene.NewContainer("a", scene.ContainerProperties{}, nil, scene.Width(40, scene.PriorityRequired), scene.Height(20, scene.PriorityRequired)),
			FlexItem: &scene.FlexItemStyle{Shrink: 1, Basis: -1}},
	})
	root.Flex = &scene.FlexDirective{Axis: scene.FlexRow}
	tree := scene.Tree{Canvas: scene.Canvas{Width: 400, Height: 100}, Root: root}
	res, err := layout.Solve(tree, stubCtx{})
	require.NoError(t, err)
	badge, a := res.Frames["badge"], res.Frames["a"]
	assert.InDelta(t, 5, badge.Origin.X, 0.01)
	assert.InDelta(t, 5, badge.Origin.Y, 0.01)
	assert.InDelta(t, 0, a.Origin.X, 0.01) // unaffected by the absolute sibling
}

func TestSolveDetectsUnsatisfiableConflict(t *testing.T) {
	root := scene.NewText("t", "Hello", scene.TextProperties{FontSize: 20},
		scene.Width(100, scene.PriorityRequired),
		scene.Width(300, scene.PriorityRequired),
	)
	tree := scene.Tree{Canvas: scene.Canvas{Width: 400, Height: 300}, Root: root}
	_, err := layout.Solve(tree, stubCtx{})
	require.Error(t, err)
}
