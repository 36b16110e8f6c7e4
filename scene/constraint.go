package scene

// Priority mirrors Cassowary strength tiers, per spec.md §4.1. Required
// constraints must all be satisfiable simultaneously or the solve fails;
// Strong/Medium/Weak are soft and may be violated when they conflict.
type Priority int

const (
	PriorityRequired Priority = iota
	PriorityStrong
	PriorityMedium
	PriorityWeak
)

// ConstraintKind names which geometric relationship a Constraint encodes,
// per spec.md §3's Constraint union.
type ConstraintKind int

const (
	// ConstraintWidth/Height pin a node's own size. Value is either an
	// absolute px amount (IsPercent == false) or a [0,1] fraction of the
	// canvas size (IsPercent == true). Percent values are not resolved
	// against the parent's box or against Target.
	ConstraintWidth ConstraintKind = iota
	ConstraintHeight
	// ConstraintMinWidth/MaxWidth/MinHeight/MaxHeight bound the resolved
	// size (spec.md §4.1's translation table; §3's invariant "min/max
	// constraints at Required strength bound them").
	ConstraintMinWidth
	ConstraintMaxWidth
	ConstraintMinHeight
	ConstraintMaxHeight
	// ConstraintLeading/Trailing/Top/Bottom place an edge *adjacent to*
	// Target's opposite edge — spec.md §4.1's stacking semantics:
	// Top{target,v}: n.y = target.bottom + v
	// Bottom{target,v}: n.bottom = target.y - v
	// Leading{target,v}: n.x = target.right + v
	// Trailing{target,v}: n.right = target.x - v
	// (empty Target means the canvas). Confirmed against
	// original_source/auto_layout_render_test/src/solver.rs's
	// ConstraintType::Leading/Trailing/Top/Bottom handlers.
	ConstraintLeading
	ConstraintTrailing
	ConstraintTop
	ConstraintBottom
	// ConstraintAlignLeading/AlignTrailing/AlignTop/AlignBottom pin an edge
	// to the *same* edge of Target — the separate same-edge-equality family
	// spec.md §4.1 distinguishes from Leading/Trailing/Top/Bottom above.
	ConstraintAlignLeading
	ConstraintAlignTrailing
	ConstraintAlignTop
	ConstraintAlignBottom
	// ConstraintCenterX/CenterY pin this node's center to Target's center
	// (empty Target means the canvas).
	ConstraintCenterX
	ConstraintCenterY
	// ConstraintAspectRatio pins width = Value * height.
	ConstraintAspectRatio
)

// Constraint is one Cassowary-lowerable relationship attached to a node.
// Target is the id of another node the relationship is relative to, or
// "" for the canvas. Offset is an additional px adjustment applied after
// the base relationship (e.g. leading-to(target) + 8px).
type Constraint struct {
	Kind      ConstraintKind
	Priority  Priority
	Target    string
	Value     float64
	IsPercent bool
	Offset    float64
}

// Width returns an absolute-width constraint.
func Width(px float64, priority Priority) Constraint {
	return Constraint{Kind: ConstraintWidth, Priority: priority, Value: px}
}

// WidthPercent returns a width constraint as a fraction of the canvas
// width ([0,1]).
func WidthPercent(fraction float64, priority Priority) Constraint {
	return Constraint{Kind: ConstraintWidth, Priority: priority, Value: fraction, IsPercent: true}
}

// Height returns an absolute-height constraint.
func Height(px float64, priority Priority) Constraint {
	return Constraint{Kind: ConstraintHeight, Priority: priority, Value: px}
}

// HeightPercent returns a height constraint as a fraction of the canvas
// height ([0,1]).
func HeightPercent(fraction float64, priority Priority) Constraint {
	return Constraint{Kind: ConstraintHeight, Priority: priority, Value: fraction, IsPercent: true}
}

// AspectRatio returns a constraint pinning width = ratio * height.
func AspectRatio(ratio float64, priority Priority) Constraint {
	return Constraint{Kind: ConstraintAspectRatio, Priority: priority, Value: ratio}
}

// MinWidth/MaxWidth/MinHeight/MaxHeight bound the resolved size, per
// spec.md §4.1's translation table.
func MinWidth(px float64, priority Priority) Constraint {
	return Constraint{Kind: ConstraintMinWidth, Priority: priority, Value: px}
}

func MaxWidth(px float64, priority Priority) Constraint {
	return Constraint{Kind: ConstraintMaxWidth, Priority: priority, Value: px}
}

func MinHeight(px float64, priority Priority) Constraint {
	return Constraint{Kind: ConstraintMinHeight, Priority: priority, Value: px}
}

func MaxHeight(px float64, priority Priority) Constraint {
	return Constraint{Kind: ConstraintMaxHeight, Priority: priority, Value: px}
}

func edge(kind ConstraintKind, target string, offset float64, priority Priority) Constraint {
	return Constraint{Kind: kind, Priority: priority, Target: target, Offset: offset}
}

// LeadingTo places this node's left edge offset px past target's right edge
// (target "" means the canvas) — the stacking form, spec.md §4.1.
func LeadingTo(target string, offset float64, priority Priority) Constraint {
	return edge(ConstraintLeading, target, offset, priority)
}

// TrailingTo places this node's right edge offset px before target's left
// edge — the stacking form, spec.md §4.1.
func TrailingTo(target string, offset float64, priority Priority) Constraint {
	return edge(ConstraintTrailing, target, offset, priority)
}

// TopTo places this node's top edge offset px below target's bottom edge —
// the stacking form, spec.md §4.1.
func TopTo(target string, offset float64, priority Priority) Constraint {
	return edge(ConstraintTop, target, offset, priority)
}

// BottomTo places this node's bottom edge offset px above target's top
// edge — the stacking form, spec.md §4.1.
func BottomTo(target string, offset float64, priority Priority) Constraint {
	return edge(ConstraintBottom, target, offset, priority)
}

// AlignLeadingTo pins this node's left edge to target's left edge (target
// "" means the canvas), offset by offset px — the same-edge-equality form.
func AlignLeadingTo(target string, offset float64, priority Priority) Constraint {
	return edge(ConstraintAlignLeading, target, offset, priority)
}

// AlignTrailingTo pins this node's right edge to target's right edge.
func AlignTrailingTo(target string, offset float64, priority Priority) Constraint {
	return edge(ConstraintAlignTrailing, target, offset, priority)
}

// AlignTopTo pins this node's top edge to target's top edge.
func AlignTopTo(target string, offset float64, priority Priority) Constraint {
	return edge(ConstraintAlignTop, target, offset, priority)
}

// AlignBottomTo pins this node's bottom edge to target's bottom edge.
func AlignBottomTo(target string, offset float64, priority Priority) Constraint {
	return edge(ConstraintAlignBottom, target, offset, priority)
}

// CenterXTo pins this node's horizontal center to target's.
func CenterXTo(target string, offset float64, priority Priority) Constraint {
	return edge(ConstraintCenterX, target, offset, priority)
}

// CenterYTo pins this node's vertical center to target's.
func CenterYTo(target string, offset float64, priority Priority) Constraint {
	return edge(ConstraintCenterY, target, offset, priority)
}
