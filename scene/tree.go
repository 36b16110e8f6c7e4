package scene

import "github.com/lattice-ui/sceneforge/geom"

// Canvas is the root sizing context a scene is laid out into, per
// spec.md §3. Width/Height seed the solver's root variables and anchor
// percentage constraints at the top level.
type Canvas struct {
	Width      float64
	Height     float64
	Background geom.Color
}

// Tree is a fully-built, not-yet-validated scene: a canvas and its root
// node. engine.Engine calls Validate before handing it to the layout
// package.
type Tree struct {
	Canvas Canvas
	Root   Node
}
