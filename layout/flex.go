package layout

import (
	"github.com/lattice-ui/sceneforge/geom"
	"github.com/lattice-ui/sceneforge/scene"
)

// flexItem carries per-child working state through the Flexbox pass. basis/
// final/crossSz are the item's own content-box sizes; the margin fields are
// added on top when apportioning main-axis space and placing within a line,
// per SPEC_FULL.md §5's per-item Margin. Start/end are tracked separately
// (not summed) since CSS margins are not symmetric.
type flexItem struct {
	child                            scene.StackChild
	basis                            float64
	crossSz                          float64
	grow                             float64
	shrink                           float64
	min, max                         float64
	final                            float64
	mainMarginStart, mainMarginEnd   float64
	crossMarginStart, crossMarginEnd float64
}

func (it flexItem) mainMargin() float64 { return it.mainMarginStart + it.mainMarginEnd }

// arrangeFlex implements SPEC_FULL.md §6's Flexbox layout path, adapted
// from Krispeckt-glimo's instructions/auto_layout_flex.go: resolve each
// item's flex basis, distribute remaining free space (or shrink deficit)
// in proportion to Grow/Shrink weights, then
// position items along the main axis per Justify and the cross axis per
// AlignItems/AlignSelf/Margin. FlexWrap packs greedily into lines, and
// AlignContent distributes those lines along the cross axis when there is
// more than one (SPEC_FULL.md §5/§6). PositionAbsolute children skip flow
// entirely and are placed against the stack's own frame via their
// Top/Right/Bottom/Left offsets, mirroring the teacher's positionAbsolute
// helper.
func (s *solver) arrangeFlex(st *scene.StackNode, frame, canvasRect geom.Rect) error {
	horizontal := st.Flex.Axis == scene.FlexRow
	mainLen, crossLen := frame.Width(), frame.Height()
	if !horizontal {
		mainLen, crossLen = frame.Height(), frame.Width()
	}

	var items []flexItem
	for _, c := range st.Children {
		if c.FlexItem != nil && c.FlexItem.Position == scene.PositionAbsolute {
			w, h, err := s.resolveSize(c.Node, canvasRect.Size)
			if err != nil {
				return err
			}
			if err := placeAbsoluteFlexChild(s, c, frame, canvasRect, w, h); err != nil {
				return err
			}
			continue
		}
		w, h, err := s.resolveSize(c.Node, canvasRect.Size)
		if err != nil {
			return err
		}
		var basis, cross float64
		if horizontal {
			basis, cross = w, h
		} else {
			basis, cross = h, w
		}
		fi := flexItem{child: c, basis: basis, crossSz: cross, grow: 0, shrink: 1}
		if c.FlexItem != nil {
			fi.grow = c.FlexItem.Grow
			fi.shrink = c.FlexItem.Shrink
			fi.min, fi.max = c.FlexItem.MinLength, c.FlexItem.MaxLength
			if c.FlexItem.Basis >= 0 {
				fi.basis = c.FlexItem.Basis
			}
			m := c.FlexItem.Margin
			if horizontal {
				fi.mainMarginStart, fi.mainMarginEnd = m.Left, m.Right
				fi.crossMarginStart, fi.crossMarginEnd = m.Top, m.Bottom
			} else {
				fi.mainMarginStart, fi.mainMarginEnd = m.Top, m.Bottom
				fi.crossMarginStart, fi.crossMarginEnd = m.Left, m.Right
			}
		}
		fi.final = fi.basis
		items = append(items, fi)
	}

	lines := packLines(items, mainLen, st.Flex.Wrap == scene.FlexWrapOn, st.Flex.Gap)

	lineCrosses := make([]float64, len(lines))
	for i, line := range lines {
		apportion(line, mainLen, st.Flex.Gap)
		lineCrosses[i] = lineCrossSize(line)
	}
	if len(lines) == 1 {
		lineCrosses[0] = crossLen // a single line spans the stack's whole cross length
	}

	crossOrigins := alignContentOffsets(st.Flex.AlignContent, crossLen, lineCrosses, st.Flex.Gap)
	for i, line := range lines {
		if err := placeLine(s, st, line, frame, horizontal, crossOrigins[i], lineCrosses[i], canvasRect); err != nil {
			return err
		}
	}
	return nil
}

// placeAbsoluteFlexChild positions a PositionAbsolute flex child against the
// stack's own frame using its Top/Right/Bottom/Left offsets, falling back to
// the frame's origin on the axes it doesn't specify (SPEC_FULL.md §6).
func placeAbsoluteFlexChild(s *solver, c scene.StackChild, frame, canvasRect geom.Rect, w, h float64) error {
	x, y := frame.Origin.X, frame.Origin.Y
	style := c.FlexItem
	switch {
	case style.Left != nil:
		x = frame.Origin.X + *style.Left
	case style.Right != nil:
		x = frame.Right() - w - *style.Right
	}
	switch {
	case style.Top != nil:
		y = frame.Origin.Y + *style.Top
	case style.Bottom != nil:
		y = frame.Bottom() - h - *style.Bottom
	}
	return s.arrange(c.Node, geom.NewRect(x, y, w, h), canvasRect)
}

func packLines(items []flexItem, mainLen float64, wrap bool, gap float64) [][]flexItem {
	if !wrap || len(items) == 0 {
		return [][]flexItem{items}
	}
	var lines [][]flexItem
	var cur []flexItem
	var curMain float64
	for _, it := range items {
		add := it.basis + it.mainMargin()
		if len(cur) > 0 {
			add += gap
		}
		if len(cur) > 0 && curMain+add > mainLen {
			lines = append(lines, cur)
			cur = nil
			curMain = 0
			add = it.basis + it.mainMargin()
		}
		cur = append(cur, it)
		curMain += add
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// apportion distributes free space (grow) or deficit (shrink) across
// line in proportion to each item's Grow (or Shrink × basis) weight. Unlike
// the teacher's integer-pixel apportionment, no per-item rounding happens
// here: sizes stay float64, since rounding only happens once, at Extract.
// Each item's margin counts toward used space but never grows or shrinks.
func apportion(line []flexItem, mainLen, gap float64) {
	if len(line) == 0 {
		return
	}
	var used float64
	for i, it := range line {
		used += it.basis + it.mainMargin()
		if i > 0 {
			used += gap
		}
	}
	free := mainLen - used
	if free > 0 {
		var totalGrow float64
		for _, it := range line {
			totalGrow += it.grow
		}
		if totalGrow > 0 {
			remaining := free
			for i := range line {
				share := free * (line[i].grow / totalGrow)
				if line[i].max > 0 && line[i].basis+share > line[i].max {
					share = line[i].max - line[i].basis
				}
				line[i].final = line[i].basis + share
				remaining -= share
			}
			_ = remaining
		}
	} else if free < 0 {
		var totalShrink float64
		for _, it := range line {
			totalShrink += it.shrink * it.basis
		}
		deficit := -free
		if totalShrink > 0 {
			for i := range line {
				weight := line[i].shrink * line[i].basis
				reduction := deficit * (weight / totalShrink)
				newSize := line[i].basis - reduction
				if newSize < line[i].min {
					newSize = line[i].min
				}
				line[i].final = newSize
			}
		}
	}
}

func lineCrossSize(line []flexItem) float64 {
	var max float64
	for _, it := range line {
		max = geom.MaxF64(max, it.crossSz+it.crossMarginStart+it.crossMarginEnd)
	}
	return max
}

// alignContentOffsets resolves each line's cross-axis origin, mirroring CSS
// align-content (SPEC_FULL.md §5/§6). A single line always fills the full
// cross length regardless of AlignContent, matching CSS's "ignored for one
// line" rule.
func alignContentOffsets(a scene.FlexAlign, crossLen float64, lineCrosses []float64, gap float64) []float64 {
	offsets := make([]float64, len(lineCrosses))
	if len(lineCrosses) == 0 {
		return offsets
	}
	var used float64
	for i, lc := range lineCrosses {
		used += lc
		if i > 0 {
			used += gap
		}
	}
	if len(lineCrosses) == 1 {
		offsets[0] = 0
		return offsets
	}
	free := crossLen - used
	start, effGap := 0.0, gap
	if free > 0 {
		switch a {
		case scene.AlignFlexEnd:
			start = free
		case scene.AlignCenterCross:
			start = free / 2
		case scene.AlignStretch:
			effGap = gap + free/float64(len(lineCrosses)-1)
		}
	}
	cursor := start
	for i, lc := range lineCrosses {
		offsets[i] = cursor
		cursor += lc + effGap
	}
	return offsets
}

func placeLine(s *solver, st *scene.StackNode, line []flexItem, frame geom.Rect, horizontal bool, crossOrigin, lineCross float64, canvasRect geom.Rect) error {
	var used float64
	for i, it := range line {
		used += it.final + it.mainMargin()
		if i > 0 {
			used += st.Flex.Gap
		}
	}
	mainLen := frame.Width()
	if !horizontal {
		mainLen = frame.Height()
	}
	free := mainLen - used
	start, gap := justifyOffsets(st.Flex.Justify, free, len(line), st.Flex.Gap)

	crossBase := frame.Origin.Y + crossOrigin
	cursor := start
	if horizontal {
		cursor += frame.Origin.X
	} else {
		crossBase = frame.Origin.X + crossOrigin
		cursor += frame.Origin.Y
	}
	for _, it := range line {
		cursor += it.mainMarginStart
		align := st.Flex.AlignItems
		if it.child.FlexItem != nil && it.child.FlexItem.AlignSelf != nil {
			align = *it.child.FlexItem.AlignSelf
		}
		crossSize := it.crossSz
		crossAvail := lineCross - it.crossMarginStart - it.crossMarginEnd
		if align == scene.AlignStretch {
			crossSize = crossAvail
		}
		crossPos := crossBase + it.crossMarginStart + alignOffset(align, 0, crossAvail, crossSize)

		var slot geom.Rect
		if horizontal {
			slot = geom.NewRect(cursor, crossPos, it.final, crossSize)
		} else {
			slot = geom.NewRect(crossPos, cursor, crossSize, it.final)
		}
		if err := s.arrange(it.child.Node, slot, canvasRect); err != nil {
			return err
		}
		cursor += it.final + it.mainMarginEnd + gap
	}
	return nil
}

func justifyOffsets(j scene.FlexJustify, free float64, n int, gap float64) (start, effGap float64) {
	if free <= 0 || n == 0 {
		return 0, gap
	}
	switch j {
	case scene.JustifyEnd:
		return free, gap
	case scene.JustifyCenter:
		return free / 2, gap
	case scene.JustifySpaceBetween:
		if n > 1 {
			return 0, gap + free/float64(n-1)
		}
		return free / 2, gap
	case scene.JustifySpaceAround:
		each := free / float64(n)
		return each / 2, gap + each
	case scene.JustifySpaceEvenly:
		each := free / float64(n+1)
		return each, gap + each
	default: // JustifyStart
		return 0, gap
	}
}

func alignOffset(a scene.FlexAlign, origin, length, size float64) float64 {
	switch a {
	case scene.AlignFlexEnd:
		return origin + length - size
	case scene.AlignCenterCross:
		return origin + (length-size)/2
	default: // AlignStretch, AlignFlexStart, AlignBaselineCross(fallback)
		return origin
	}
}
