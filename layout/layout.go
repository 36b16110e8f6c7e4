// Package layout turns a validated scene.Tree into a ComputedLayout: one
// resolved geom.Rect per node id. It implements two distinct engines
// behind one entry point, per SPEC_FULL.md §6 and spec.md §4.1:
//
//   - an Auto-Layout engine: a priority-ordered (Required > Strong >
//     Medium > Weak) constraint resolver in the spirit of Cassowary,
//     grounded on the incremental-solver structure of
//     original_source/auto_layout_render_test/src/solver.rs, but scoped
//     to the equality-shaped constraints spec.md §3 actually defines
//     (size, edge-to-target, center-to-target, aspect ratio) rather than
//     a general linear-inequality simplex — see DESIGN.md's layout
//     ledger entry for why a full simplex was not warranted.
//   - a Flexbox engine for stacks carrying a scene.FlexDirective,
//     grounded on Krispeckt-glimo's instructions/auto_layout_flex.go
//     FlexGrow/FlexShrink apportionment (kept proportional in float64).
//
// Both engines run as a measure pass (bottom-up, intrinsic sizing) and
// an arrange pass (top-down, final rects), the same two-pass shape the
// teacher's auto_layout.go uses (buildLines/placeLines).
package layout

import (
	"github.com/lattice-ui/sceneforge/geom"
	"github.com/lattice-ui/sceneforge/scene"
	"github.com/lattice-ui/sceneforge/sferr"
)

// MeasureContext supplies the content-dependent measurements the solver
// cannot compute itself: text shaping and natural image dimensions. The
// engine package implements this over its font/image caches; layout
// never imports cache or text directly, keeping the solver a pure
// geometry component.
type MeasureContext interface {
	MeasureText(props scene.TextProperties, content string) (width, height float64, err error)
	ImageSize(source string) (geom.Size, error)
	// TextAscent returns the font's ascent, in px, for props — the
	// distance from the baseline to the font's ascent line. Used for
	// FirstBaseline/LastBaseline stack alignment (spec.md §4.1 "Stacking"
	// baseline rule).
	TextAscent(props scene.TextProperties) (float64, error)
}

// Result is the solver's output: a resolved rect per node id, rounded to
// integral device pixels only at Extract (spec.md §4.1's "Extraction"),
// which is the compositor's job, not layout's — Frames here stay float.
type Result struct {
	Frames map[string]geom.Rect
}

// Solve lays out tree.Root within tree.Canvas and returns one rect per
// node id. tree must already have passed scene.Validate.
func Solve(tree scene.Tree, ctx MeasureContext) (*Result, error) {
	s := &solver{
		ctx:      ctx,
		measured: make(map[string]geom.Size),
		frames:   make(map[string]geom.Rect),
	}
	s.measure(tree.Root, geom.NewSize(tree.Canvas.Width, tree.Canvas.Height))

	canvasRect := geom.NewRect(0, 0, tree.Canvas.Width, tree.Canvas.Height)
	if err := s.arrange(tree.Root, canvasRect, canvasRect); err != nil {
		return nil, err
	}
	return &Result{Frames: s.frames}, nil
}

type solver struct {
	ctx      MeasureContext
	measured map[string]geom.Size // measure-pass intrinsic sizes, keyed by node id
	frames   map[string]geom.Rect // arrange-pass final rects, keyed by node id
}

// resolveDimension applies spec.md §4.1's priority rule to a single
// scalar dimension: the strongest-priority source wins; a tie between
// two Required sources with materially different values is
// unsatisfiable.
func resolveDimension(base float64, basePriority scene.Priority, candidates []struct {
	value    float64
	priority scene.Priority
}) (float64, error) {
	best := base
	bestPri := basePriority
	for _, c := range candidates {
		if c.priority < bestPri {
			best, bestPri = c.value, c.priority
			continue
		}
		if c.priority == bestPri && bestPri == scene.PriorityRequired && absDiff(c.value, best) > 0.5 {
			return 0, &sferr.ConstraintFailure{Message: "conflicting Required constraints produce different values"}
		}
	}
	return best, nil
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
