package layout

import (
	"github.com/lattice-ui/sceneforge/geom"
	"github.com/lattice-ui/sceneforge/scene"
)

// arrangeAutoStack implements spec.md §4.1's VStack/HStack placement:
// children are laid out sequentially along the main axis (spacing plus
// a distribution policy) and aligned along the cross axis, grounded on
// Krispeckt-glimo's auto_layout_place.go placeLines pass.
func (s *solver) arrangeAutoStack(st *scene.StackNode, frame, canvasRect geom.Rect) error {
	horizontal := st.Kind() == scene.KindHStack
	mainLen := frame.Width()
	if !horizontal {
		mainLen = frame.Height()
	}

	type item struct {
		node     scene.Node
		mainSize float64
		crossSz  float64
		spacer   *scene.SpacerNode
	}
	items := make([]item, len(st.Children))
	var totalMain float64
	nSpacers := 0
	for i, c := range st.Children {
		w, h, err := s.resolveSize(c.Node, canvasRect.Size)
		if err != nil {
			return err
		}
		it := item{node: c.Node}
		if horizontal {
			it.mainSize, it.crossSz = w, h
		} else {
			it.mainSize, it.crossSz = h, w
		}
		if sp, ok := c.Node.(*scene.SpacerNode); ok {
			it.spacer = sp
			nSpacers++
		}
		items[i] = it
		totalMain += it.mainSize
	}
	gapCount := 0
	if len(items) > 1 {
		gapCount = len(items) - 1
	}
	gaps := float64(gapCount) * st.Properties.Spacing
	free := mainLen - totalMain - gaps

	extra := make([]float64, len(items))
	switch {
	case nSpacers > 0:
		if free > 0 {
			share := free / float64(nSpacers)
			for i, it := range items {
				if it.spacer != nil {
					extra[i] = share
				}
			}
		}
	case st.Properties.Distribution == scene.DistributeFillEqually && free > 0 && len(items) > 0:
		share := free / float64(len(items))
		for i := range items {
			extra[i] = share
		}
	case st.Properties.Distribution == scene.DistributeFillProportionally && free != 0 && totalMain > 0:
		for i, it := range items {
			extra[i] = free * (it.mainSize / totalMain)
		}
	case (st.Properties.Distribution == scene.DistributeEqualSpacing ||
		st.Properties.Distribution == scene.DistributeEqualCentering) && free > 0 && len(items) > 1:
		gaps += free
	}

	cursor := frame.Origin.X
	crossOrigin, crossLen := frame.Origin.Y, frame.Height()
	if !horizontal {
		cursor = frame.Origin.Y
		crossOrigin, crossLen = frame.Origin.X, frame.Width()
	}
	effectiveGap := st.Properties.Spacing
	if (st.Properties.Distribution == scene.DistributeEqualSpacing ||
		st.Properties.Distribution == scene.DistributeEqualCentering) && len(items) > 1 && nSpacers == 0 {
		effectiveGap = st.Properties.Spacing + free/float64(len(items)-1)
	}

	for i, it := range items {
		mainSize := it.mainSize + extra[i]
		crossSize := it.crossSz
		crossPos := crossAlign(st.Properties.Alignment, crossOrigin, crossLen, crossSize, it.node, s)

		var slot geom.Rect
		if horizontal {
			slot = geom.NewRect(cursor, crossPos, mainSize, crossLen)
			if st.Properties.Alignment != scene.StackAlignTop && st.Properties.Alignment != scene.StackAlignBottom {
				slot = geom.NewRect(cursor, crossPos, mainSize, crossSize)
			}
		} else {
			slot = geom.NewRect(crossPos, cursor, crossLen, mainSize)
			if st.Properties.Alignment != scene.StackAlignLeading && st.Properties.Alignment != scene.StackAlignTrailing {
				slot = geom.NewRect(crossPos, cursor, crossSize, mainSize)
			}
		}
		if err := s.arrange(it.node, slot, canvasRect); err != nil {
			return err
		}
		cursor += mainSize + effectiveGap
	}
	return nil
}

// crossAlign resolves a single child's cross-axis origin per the stack's
// StackAlignment, per spec.md §4.1. Baseline alignment only applies to
// text content (SPEC_FULL.md §7); non-text children fall back to
// leading/top alignment.
func crossAlign(a scene.StackAlignment, origin, length, size float64, n scene.Node, s *solver) float64 {
	switch a {
	case scene.StackAlignCenter:
		return origin + (length-size)/2
	case scene.StackAlignTrailing, scene.StackAlignBottom:
		return origin + length - size
	case scene.StackAlignFirstBaseline, scene.StackAlignLastBaseline:
		if tn, ok := n.(*scene.TextNode); ok {
			return baselineCrossOffset(s, tn, origin, length)
		}
		return origin
	default: // StackAlignLeading, StackAlignTop
		return origin
	}
}

// baselineCrossOffset aligns every text sibling's baseline to the same
// line, using the font's real ascent metric (MeasureContext.TextAscent)
// rather than a guess, per SPEC_FULL.md §7's rigorous-ascent decision:
// offset so the first-line baseline lands at the middle of the cross
// length, approximating a shared baseline without a second global pass
// over all siblings. FirstBaseline and LastBaseline are handled alike.
func baselineCrossOffset(s *solver, tn *scene.TextNode, origin, length float64) float64 {
	ascent, err := s.ctx.TextAscent(tn.Properties)
	if err != nil {
		ascent = tn.Properties.FontSize * 0.8
	}
	return origin + length*0.5 - ascent
}
