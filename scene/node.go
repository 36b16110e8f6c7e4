// Package scene is sceneforge's declarative scene graph, per spec.md §3.
// It is grounded on Krispeckt-glimo's instructions/ package (Shape,
// Rectangle, Layer as the teacher's node variants) generalized from an
// imperative "instruction" list into an immutable tree the layout and
// compositor packages walk read-only.
package scene

import "github.com/lattice-ui/sceneforge/sferr"

// NodeKind discriminates the concrete node variants. Go has no tagged
// unions, so Node is a closed interface implemented only by the types in
// this file (the sealed-interface idiom the teacher uses for its own
// Shape variants in instructions/shape.go).
type NodeKind int

const (
	KindText NodeKind = iota
	KindImage
	KindContainer
	KindVStack
	KindHStack
	KindZStack
	KindSpacer
)

func (k NodeKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindImage:
		return "Image"
	case KindContainer:
		return "Container"
	case KindVStack:
		return "VStack"
	case KindHStack:
		return "HStack"
	case KindZStack:
		return "ZStack"
	case KindSpacer:
		return "Spacer"
	default:
		return "Unknown"
	}
}

// Node is implemented by every scene graph element. unexported sealed()
// keeps the set of implementations closed to this package.
type Node interface {
	ID() string
	Kind() NodeKind
	ZIndex() int
	Constraints() []Constraint
	sealed()
}

type base struct {
	id          string
	zIndex      int
	constraints []Constraint
}

func (b base) ID() string                { return b.id }
func (b base) ZIndex() int               { return b.zIndex }
func (b base) Constraints() []Constraint { return b.constraints }
func (base) sealed()                     {}

// TextNode renders a run of text, per spec.md §3.
type TextNode struct {
	base
	Content    string
	Properties TextProperties
}

func (TextNode) Kind() NodeKind { return KindText }

// ImageNode draws a bitmap resource, per spec.md §3.
type ImageNode struct {
	base
	Source     string // resource key resolved through an ImageCache
	Properties ImageProperties
}

func (ImageNode) Kind() NodeKind { return KindImage }

// ContainerNode is a decorative box (background, border, padding,
// opacity) that may hold any number of children, per spec.md §3 (`id,
// ContainerProperties, constraints[], children[]`) and
// original_source/flex_layout_render_test/src/layout/node.rs's
// `Container { style, children: Vec<LayoutNode> }`. A nil/empty Children
// is valid: a decorated box with nothing inside.
type ContainerNode struct {
	base
	Properties ContainerProperties
	Children   []Node
}

func (ContainerNode) Kind() NodeKind { return KindContainer }

// StackChild pairs a child node with its Flexbox participation style
// (SPEC_FULL.md §6). FlexItem is nil for a child laid out purely by
// Auto-Layout constraints.
type StackChild struct {
	Node     Node
	FlexItem *FlexItemStyle
}

// StackNode is the shared shape behind VStack, HStack and ZStack. Which
// constructor built it determines Kind(); ZStack ignores Properties'
// Spacing/Distribution (spec.md §4.1 "Stacking").
type StackNode struct {
	base
	kind       NodeKind
	Properties StackProperties
	Flex       *FlexDirective // non-nil selects the Flexbox layout path, SPEC_FULL.md §6
	Children   []StackChild
}

func (s StackNode) Kind() NodeKind { return s.kind }

// SpacerNode consumes remaining space along a stack's main axis,
// per spec.md §3. Only a VStack/HStack on the Auto-Layout stacking path
// gives a Spacer the remaining space; Validate does not reject a Spacer
// elsewhere, where it measures MinLength on both axes (in a Flexbox-mode
// stack, FlexItemStyle.Grow plays the space-absorbing role).
type SpacerNode struct {
	base
	MinLength float64
}

func (SpacerNode) Kind() NodeKind { return KindSpacer }

// NewText constructs a TextNode.
func NewText(id, content string, props TextProperties, constraints ...Constraint) *TextNode {
	return &TextNode{base: base{id: id, constraints: constraints}, Content: content, Properties: props}
}

// NewImage constructs an ImageNode.
func NewImage(id, source string, props ImageProperties, constraints ...Constraint) *ImageNode {
	return &ImageNode{base: base{id: id, constraints: constraints}, Source: source, Properties: props}
}

// NewContainer constructs a ContainerNode.
func NewContainer(id string, props ContainerProperties, children []Node, constraints ...Constraint) *ContainerNode {
	return &ContainerNode{base: base{id: id, constraints: constraints}, Properties: props, Children: children}
}

// NewVStack constructs a top-to-bottom stack.
func NewVStack(id string, props StackProperties, children []StackChild, constraints ...Constraint) *StackNode {
	return &StackNode{base: base{id: id, constraints: constraints}, kind: KindVStack, Properties: props, Children: children}
}

// NewHStack constructs a left-to-right stack.
func NewHStack(id string, props StackProperties, children []StackChild, constraints ...Constraint) *StackNode {
	return &StackNode{base: base{id: id, constraints: constraints}, kind: KindHStack, Properties: props, Children: children}
}

// NewZStack constructs an overlay stack (document order = back to front;
// a lower ZIndex paints earlier among siblings, equal ZIndex keeps
// document order; spec.md §4.1).
func NewZStack(id string, children []StackChild, constraints ...Constraint) *StackNode {
	return &StackNode{base: base{id: id, constraints: constraints}, kind: KindZStack, Children: children}
}

// NewSpacer constructs a SpacerNode.
func NewSpacer(id string, minLength float64) *SpacerNode {
	return &SpacerNode{base: base{id: id}, MinLength: minLength}
}

// WithZIndex returns a shallow copy of n with ZIndex overridden — nodes
// are otherwise built with ZIndex 0 (document order only).
func WithZIndex(n Node, z int) Node {
	switch t := n.(type) {
	case *TextNode:
		c := *t
		c.zIndex = z
		return &c
	case *ImageNode:
		c := *t
		c.zIndex = z
		return &c
	case *ContainerNode:
		c := *t
		c.zIndex = z
		return &c
	case *StackNode:
		c := *t
		c.zIndex = z
		return &c
	case *SpacerNode:
		c := *t
		c.zIndex = z
		return &c
	default:
		return n
	}
}

// Children returns n's direct descendants in document order, or nil for
// leaf nodes. Used by Validate and by the layout/compositor tree walks.
func Children(n Node) []Node {
	switch t := n.(type) {
	case *ContainerNode:
		return t.Children
	case *StackNode:
		out := make([]Node, len(t.Children))
		for i, c := range t.Children {
			out[i] = c.Node
		}
		return out
	default:
		return nil
	}
}

// walk calls fn for n and every descendant, document order, depth-first.
func walk(n Node, fn func(Node) error) error {
	if n == nil {
		return nil
	}
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range Children(n) {
		if err := walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the structural invariants spec.md §8 requires before a
// tree may reach the layout stage: unique node ids, no node referencing
// itself in a constraint, no cycles, and (SPEC_FULL.md §6) no stack mixing
// Auto-Layout-only children with Flexbox children.
func Validate(root Node) error {
	seen := make(map[string]bool)
	err := walk(root, func(n Node) error {
		if n.ID() == "" {
			return &sferr.ValidationFailure{Message: "node has empty id"}
		}
		if seen[n.ID()] {
			return &sferr.ValidationFailure{Message: "duplicate node id: " + n.ID()}
		}
		seen[n.ID()] = true
		for _, c := range n.Constraints() {
			if c.Target == n.ID() {
				return &sferr.ValidationFailure{Message: "node references itself in a constraint: " + n.ID()}
			}
		}
		if s, ok := n.(*StackNode); ok {
			if err := validateStackMode(s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return walk(root, func(n Node) error {
		for _, c := range n.Constraints() {
			if c.Target != "" && !seen[c.Target] {
				return &sferr.ReferenceFailure{TargetID: c.Target}
			}
		}
		return nil
	})
}

// validateStackMode enforces SPEC_FULL.md §6: a stack is either entirely
// Auto-Layout (Flex == nil, every child's FlexItem == nil) or entirely
// Flexbox (Flex != nil); mixing is a build-time ValidationFailure rather
// than an implicit, surprising fallback.
func validateStackMode(s *StackNode) error {
	for _, c := range s.Children {
		isFlexChild := c.FlexItem != nil
		if s.Flex == nil && isFlexChild {
			return &sferr.ValidationFailure{Message: "stack " + s.ID() + " has a Flexbox child but no FlexDirective"}
		}
		if s.Flex != nil && !isFlexChild && s.kind != KindZStack {
			return &sferr.ValidationFailure{Message: "stack " + s.ID() + " is in Flexbox mode but child " + c.Node.ID() + " has no FlexItemStyle"}
		}
	}
	return nil
}
