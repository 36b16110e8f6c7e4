package scene

import "github.com/lattice-ui/sceneforge/geom"

// FlexAxis is the main axis of a Flexbox-mode stack, per SPEC_FULL.md §6
// (the teacher's auto_layout.go calls this the "stack direction").
type FlexAxis int

const (
	FlexRow FlexAxis = iota
	FlexColumn
)

// FlexWrap controls whether overflowing items wrap to a new line,
// per SPEC_FULL.md §6.
type FlexWrap int

const (
	FlexNoWrap FlexWrap = iota
	FlexWrapOn
)

// FlexJustify positions items along the main axis, matching CSS
// justify-content (SPEC_FULL.md §6).
type FlexJustify int

const (
	JustifyStart FlexJustify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// FlexAlign positions items along the cross axis, matching CSS
// align-items/align-self (SPEC_FULL.md §6).
type FlexAlign int

const (
	AlignStretch FlexAlign = iota
	AlignFlexStart
	AlignFlexEnd
	AlignCenterCross
	AlignBaselineCross
)

// FlexDirective selects and configures the Flexbox layout path for a
// StackNode, per SPEC_FULL.md §6. A StackNode with Flex == nil uses the
// Auto-Layout stacking path instead (spec.md §4.1).
type FlexDirective struct {
	Axis       FlexAxis
	Wrap       FlexWrap
	Justify    FlexJustify
	AlignItems FlexAlign
	// AlignContent distributes lines along the cross axis when Wrap
	// produces more than one line (CSS align-content, SPEC_FULL.md §5/§6).
	// Ignored for a single-line stack.
	AlignContent FlexAlign
	Gap          float64 // px, applied between items (and lines, when wrapped)
}

// FlexPosition selects whether a Flexbox-mode child participates in flow
// layout, per SPEC_FULL.md §6.
type FlexPosition int

const (
	PositionRelative FlexPosition = iota
	PositionAbsolute
)

// FlexItemStyle is a Flexbox-mode child's per-item participation style,
// per SPEC_FULL.md §6 — the generalization of the teacher's auto_layout
// FlexGrow/FlexShrink/FlexBasis fields onto scene.StackChild.
type FlexItemStyle struct {
	Grow      float64    // FlexGrow: share of positive free space, default 0
	Shrink    float64    // FlexShrink: share of negative free space, default 1
	Basis     float64    // FlexBasis in px; < 0 means "use intrinsic size"
	AlignSelf *FlexAlign // nil means "inherit the stack's AlignItems"
	MinLength float64
	MaxLength float64 // <= 0 means unbounded
	// Margin adds space around the item: it is added to the item's used
	// main-axis size during apportionment and offsets its cross-axis
	// placement within the line (SPEC_FULL.md §5).
	Margin geom.EdgeInsets
	// Position selects flow vs. absolute participation (SPEC_FULL.md §6).
	// PositionAbsolute excludes the item from flow entirely; it is placed
	// against the stack's own frame via Top/Right/Bottom/Left instead,
	// mirroring the teacher's positionAbsolute helper.
	Position                 FlexPosition
	Top, Right, Bottom, Left *float64
}

// NewFlexItemStyle returns the CSS-flexbox defaults (grow 0, shrink 1,
// basis auto).
func NewFlexItemStyle() FlexItemStyle {
	return FlexItemStyle{Grow: 0, Shrink: 1, Basis: -1}
}
