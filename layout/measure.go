package layout

import (
	"github.com/lattice-ui/sceneforge/geom"
	"github.com/lattice-ui/sceneforge/scene"
)

// measure computes a bottom-up intrinsic size for n, storing it in
// s.measured and returning it. available is a sizing hint (the space the
// parent is likely to offer); percent-based Width/Height constraints are
// deliberately NOT resolved here — they are resolved in arrange, as a
// fraction of the canvas size (see resolveSize).
func (s *solver) measure(n scene.Node, available geom.Size) geom.Size {
	var size geom.Size
	switch t := n.(type) {
	case *scene.TextNode:
		w, h, err := s.ctx.MeasureText(t.Properties, t.Content)
		if err != nil {
			w, h = 0, t.Properties.FontSize*t.Properties.LineHeightOrDefault()
		}
		size = geom.NewSize(w, h)
	case *scene.ImageNode:
		natural, err := s.ctx.ImageSize(t.Source)
		if err != nil {
			natural = geom.NewSize(0, 0)
		}
		size = natural
	case *scene.ContainerNode:
		var inner geom.Size
		if len(t.Children) > 0 {
			childAvail := geom.NewSize(
				available.W-t.Properties.Padding.Left-t.Properties.Padding.Right,
				available.H-t.Properties.Padding.Top-t.Properties.Padding.Bottom,
			)
			// Children overlay the content box (like a ZStack), so the
			// container's intrinsic size is the max across them, not a sum.
			for _, child := range t.Children {
				cs := s.measure(child, childAvail)
				inner.W = geom.MaxF64(inner.W, cs.W)
				inner.H = geom.MaxF64(inner.H, cs.H)
			}
		}
		size = geom.NewSize(
			inner.W+t.Properties.Padding.Left+t.Properties.Padding.Right,
			inner.H+t.Properties.Padding.Top+t.Properties.Padding.Bottom,
		)
	case *scene.SpacerNode:
		size = geom.NewSize(t.MinLength, t.MinLength)
	case *scene.StackNode:
		size = s.measureStack(t, available)
	default:
		size = geom.NewSize(0, 0)
	}
	size = s.applyMeasureOverrides(n, size)
	s.measured[n.ID()] = size
	return size
}

// applyMeasureOverrides lets an absolute (non-percent) Width/Height/
// AspectRatio constraint participate in bottom-up sizing, so a parent
// stack sums real sizes rather than pre-override intrinsic guesses.
// Percent constraints are intentionally skipped (see measure's doc
// comment).
func (s *solver) applyMeasureOverrides(n scene.Node, size geom.Size) geom.Size {
	w, h := size.W, size.H
	haveW, haveH := false, false
	for _, c := range n.Constraints() {
		switch c.Kind {
		case scene.ConstraintWidth:
			if !c.IsPercent {
				w, haveW = c.Value, true
			}
		case scene.ConstraintHeight:
			if !c.IsPercent {
				h, haveH = c.Value, true
			}
		}
	}
	for _, c := range n.Constraints() {
		if c.Kind == scene.ConstraintAspectRatio && c.Value > 0 {
			if haveW && !haveH {
				h = w / c.Value
			} else if haveH && !haveW {
				w = h * c.Value
			} else if !haveW && !haveH && h > 0 {
				w = h * c.Value
			}
		}
	}
	return geom.NewSize(w, h)
}

func (s *solver) measureStack(st *scene.StackNode, available geom.Size) geom.Size {
	if st.Kind() == scene.KindZStack {
		var w, h float64
		for _, c := range st.Children {
			cs := s.measure(c.Node, available)
			w = geom.MaxF64(w, cs.W)
			h = geom.MaxF64(h, cs.H)
		}
		return geom.NewSize(w, h)
	}

	horizontal := st.Kind() == scene.KindHStack
	gap := st.Properties.Spacing
	if st.Flex != nil {
		gap = st.Flex.Gap
	}

	var main, cross float64
	counted := 0
	for _, c := range st.Children {
		cs := s.measure(c.Node, available)
		if st.Flex != nil && c.FlexItem != nil && c.FlexItem.Position == scene.PositionAbsolute {
			continue // excluded from flow sizing, still measured and cached for arrange
		}
		var m, x float64
		if horizontal {
			m, x = cs.W, cs.H
		} else {
			m, x = cs.H, cs.W
		}
		if st.Flex != nil && c.FlexItem != nil {
			if c.FlexItem.Basis >= 0 {
				m = c.FlexItem.Basis
			}
			mg := c.FlexItem.Margin
			if horizontal {
				m += mg.Left + mg.Right
				x += mg.Top + mg.Bottom
			} else {
				m += mg.Top + mg.Bottom
				x += mg.Left + mg.Right
			}
		}
		main += m
		if counted > 0 {
			main += gap
		}
		counted++
		cross = geom.MaxF64(cross, x)
	}
	if horizontal {
		return geom.NewSize(main, cross)
	}
	return geom.NewSize(cross, main)
}
