package scene_test

import (
	"testing"

	"github.com/lattice-ui/sceneforge/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsDuplicateID(t *testing.T) {
	root := scene.NewVStack("root", scene.StackProperties{}, []scene.StackChild{
		{Node: scene.NewText("a", "hi", scene.TextProperties{})},
		{Node: scene.NewText("a", "bye", scene.TextProperties{})},
	})
	err := scene.Validate(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestValidateRejectsSelfReferencingConstraint(t *testing.T) {
	root := scene.NewText("title", "hi", scene.TextProperties{}, scene.LeadingTo("title", 0, scene.PriorityRequired))
	err := scene.Validate(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "itself")
}

func TestValidateRejectsDanglingReference(t *testing.T) {
	root := scene.NewText("title", "hi", scene.TextProperties{}, scene.LeadingTo("missing", 0, scene.PriorityRequired))
	err := scene.Validate(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestValidateAcceptsWellFormedTree(t *testing.T) {
	root := scene.NewVStack("root", scene.StackProperties{Spacing: 8}, []scene.StackChild{
		{Node: scene.NewText("a", "hi", scene.TextProperties{})},
		{Node: scene.NewSpacer("sp", 0)},
		{Node: scene.NewText("b", "bye", scene.TextProperties{})},
	})
	assert.NoError(t, scene.Validate(root))
}

func TestValidateRejectsMixedAutoLayoutAndFlexChildren(t *testing.T) {
	root := scene.NewHStack("row", scene.StackProperties{}, []scene.StackChild{
		{Node: scene.NewText("a", "hi", scene.TextProperties{})},
		{Node: scene.NewText("b", "bye", scene.TextProperties{}), FlexItem: &scene.FlexItemStyle{Grow: 1, Shrink: 1, Basis: -1}},
	})
	err := scene.Validate(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Flexbox")
}

func TestValidateRejectsFlexStackMissingItemStyle(t *testing.T) {
	root := scene.NewHStack("row", scene.StackProperties{}, []scene.StackChild{
		{Node: scene.NewText("a", "hi", scene.TextProperties{})},
	})
	root.Flex = &scene.FlexDirective{Axis: scene.FlexRow}
	err := scene.Validate(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FlexItemStyle")
}

func TestChildrenForContainerAndStack(t *testing.T) {
	leaf := scene.NewText("leaf", "x", scene.TextProperties{})
	container := scene.NewContainer("box", scene.ContainerProperties{}, []scene.Node{leaf})
	assert.Equal(t, []scene.Node{leaf}, scene.Children(container))

	empty := scene.NewContainer("empty", scene.ContainerProperties{}, nil)
	assert.Nil(t, scene.Children(empty))
}

func TestWithZIndexPreservesOtherFields(t *testing.T) {
	n := scene.NewText("t", "hello", scene.TextProperties{})
	z := scene.WithZIndex(n, 3)
	assert.Equal(t, 3, z.ZIndex())
	assert.Equal(t, "t", z.ID())
	assert.Equal(t, 0, n.ZIndex())
}
