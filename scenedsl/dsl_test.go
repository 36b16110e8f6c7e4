package scenedsl_test

import (
	"testing"

	"github.com/lattice-ui/sceneforge/scene"
	"github.com/lattice-ui/sceneforge/scenedsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basicScene = `
canvas:
  width: 400
  height: 300
  background: "#FFFFFF"
elements:
  - type: text
    id: title
    content: "Hello, {{name}}"
    properties:
      fontSize: 24
      color: black
    constraints:
      - type: centerX
        priority: required
      - type: centerY
        priority: required
`

func TestLoadParsesBasicScene(t *testing.T) {
	tree, err := scenedsl.Load([]byte(basicScene), map[string]string{"name": "World"})
	require.NoError(t, err)
	assert.Equal(t, 400.0, tree.Canvas.Width)
	text, ok := tree.Root.(*scene.TextNode)
	require.True(t, ok)
	assert.Equal(t, "Hello, World", text.Content)
	assert.Len(t, text.Constraints(), 2)
}

func TestLoadRejectsUnknownNodeType(t *testing.T) {
	bad := `
canvas: {width: 10, height: 10}
elements:
  - type: bogus
    id: x
`
	_, err := scenedsl.Load([]byte(bad), nil)
	require.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := scenedsl.Load([]byte("not: [valid yaml"), nil)
	require.Error(t, err)
}

func TestSubstituteLeavesUnknownVariablesVerbatim(t *testing.T) {
	out := scenedsl.Substitute("hi {{known}} and {{unknown}}", map[string]string{"known": "there"})
	assert.Equal(t, "hi there and {{unknown}}", out)
}

func TestListVarsFindsDistinctNamesInOrder(t *testing.T) {
	names := scenedsl.ListVars("{{b}} {{a}} {{b}}")
	assert.Equal(t, []string{"b", "a"}, names)
}

const nestedScene = `
canvas: {width: 200, height: 200}
elements:
  - type: vstack
    id: col
    properties: {spacing: 8}
    children:
      - type: text
        id: a
        content: "one"
        properties: {fontSize: 12}
      - type: text
        id: b
        content: "two"
        properties: {fontSize: 12}
`

func TestLoadParsesNestedStackChildren(t *testing.T) {
	tree, err := scenedsl.Load([]byte(nestedScene), nil)
	require.NoError(t, err)
	stack, ok := tree.Root.(*scene.StackNode)
	require.True(t, ok)
	assert.Len(t, stack.Children, 2)
	assert.Equal(t, scene.KindVStack, stack.Kind())
}
