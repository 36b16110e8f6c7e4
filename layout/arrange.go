package layout

import (
	"github.com/lattice-ui/sceneforge/geom"
	"github.com/lattice-ui/sceneforge/scene"
)

// arrange assigns n's final rect within slotBox (the space its parent
// offered: the canvas for the root, a container's content box, or a
// stack-computed per-child box) and recurses into children. canvasRect
// is threaded through unchanged so that empty-Target edge/center
// constraints and percent sizing can always resolve against it, per
// the percent-sizing scope decision in DESIGN.md's layout entry.
func (s *solver) arrange(n scene.Node, slotBox, canvasRect geom.Rect) error {
	w, h, err := s.resolveSize(n, canvasRect.Size)
	if err != nil {
		return err
	}
	x, y, err := s.resolvePosition(n, slotBox, canvasRect, w, h)
	if err != nil {
		return err
	}
	frame := geom.NewRect(x, y, w, h)
	s.frames[n.ID()] = frame

	switch t := n.(type) {
	case *scene.ContainerNode:
		content := frame.Inset(t.Properties.Padding)
		for _, child := range t.Children {
			if err := s.arrange(child, content, canvasRect); err != nil {
				return err
			}
		}
	case *scene.StackNode:
		if t.Kind() == scene.KindZStack {
			for _, c := range t.Children {
				if err := s.arrange(c.Node, frame, canvasRect); err != nil {
					return err
				}
			}
			return nil
		}
		if t.Flex != nil {
			return s.arrangeFlex(t, frame, canvasRect)
		}
		return s.arrangeAutoStack(t, frame, canvasRect)
	}
	return nil
}

// resolveSize picks n's final width/height: measured intrinsic size at
// Medium priority, overridden by explicit Width/Height/AspectRatio
// constraints per their Priority, then bounded by any Min/Max
// Width/Height constraints (spec.md §3's invariant: min/max bound the
// resolved value regardless of what produced it). Percent values resolve
// against canvasSize (percent is always canvas-relative, not
// slot-relative, avoiding a circular dependency with stack
// distribution).
func (s *solver) resolveSize(n scene.Node, canvasSize geom.Size) (w, h float64, err error) {
	base := s.measured[n.ID()]
	w, h = base.W, base.H

	var wCands, hCands []struct {
		value    float64
		priority scene.Priority
	}
	for _, c := range n.Constraints() {
		switch c.Kind {
		case scene.ConstraintWidth:
			v := c.Value
			if c.IsPercent {
				v *= canvasSize.W
			}
			wCands = append(wCands, struct {
				value    float64
				priority scene.Priority
			}{v, c.Priority})
		case scene.ConstraintHeight:
			v := c.Value
			if c.IsPercent {
				v *= canvasSize.H
			}
			hCands = append(hCands, struct {
				value    float64
				priority scene.Priority
			}{v, c.Priority})
		}
	}
	w, err = resolveDimension(w, scene.PriorityMedium, wCands)
	if err != nil {
		return 0, 0, err
	}
	h, err = resolveDimension(h, scene.PriorityMedium, hCands)
	if err != nil {
		return 0, 0, err
	}
	for _, c := range n.Constraints() {
		if c.Kind == scene.ConstraintAspectRatio && c.Value > 0 && c.Priority <= scene.PriorityStrong {
			h = w / c.Value
		}
	}
	for _, c := range n.Constraints() {
		v := c.Value
		if c.IsPercent {
			switch c.Kind {
			case scene.ConstraintMinWidth, scene.ConstraintMaxWidth:
				v *= canvasSize.W
			case scene.ConstraintMinHeight, scene.ConstraintMaxHeight:
				v *= canvasSize.H
			}
		}
		switch c.Kind {
		case scene.ConstraintMinWidth:
			if w < v {
				w = v
			}
		case scene.ConstraintMaxWidth:
			if w > v {
				w = v
			}
		case scene.ConstraintMinHeight:
			if h < v {
				h = v
			}
		case scene.ConstraintMaxHeight:
			if h > v {
				h = v
			}
		}
	}
	return w, h, nil
}

// resolvePosition picks n's final origin. The default is slotBox's
// origin (a stack or container has already placed the slot where it
// wants the child). Leading/Trailing/Top/Bottom place n adjacent to the
// target's opposite edge (spec.md §4.1's stacking semantics);
// AlignLeading/AlignTrailing/AlignTop/AlignBottom and CenterX/CenterY pin
// n to the target's same edge/center. All resolve, per Priority, against
// the target node's frame (already-arranged sibling) or canvasRect for an
// empty Target.
func (s *solver) resolvePosition(n scene.Node, slotBox, canvasRect geom.Rect, w, h float64) (x, y float64, err error) {
	x, y = slotBox.Origin.X, slotBox.Origin.Y
	xPri, yPri := scene.PriorityWeak, scene.PriorityWeak

	for _, c := range n.Constraints() {
		ref := canvasRect
		if c.Target != "" {
			if f, ok := s.frames[c.Target]; ok {
				ref = f
			}
		}
		switch c.Kind {
		case scene.ConstraintLeading:
			if c.Priority <= xPri {
				x, xPri = ref.Right()+c.Offset, c.Priority
			}
		case scene.ConstraintTrailing:
			if c.Priority <= xPri {
				x, xPri = ref.Origin.X-w-c.Offset, c.Priority
			}
		case scene.ConstraintTop:
			if c.Priority <= yPri {
				y, yPri = ref.Bottom()+c.Offset, c.Priority
			}
		case scene.ConstraintBottom:
			if c.Priority <= yPri {
				y, yPri = ref.Origin.Y-h-c.Offset, c.Priority
			}
		case scene.ConstraintAlignLeading:
			if c.Priority <= xPri {
				x, xPri = ref.Origin.X+c.Offset, c.Priority
			}
		case scene.ConstraintAlignTrailing:
			if c.Priority <= xPri {
				x, xPri = ref.Right()-w-c.Offset, c.Priority
			}
		case scene.ConstraintAlignTop:
			if c.Priority <= yPri {
				y, yPri = ref.Origin.Y+c.Offset, c.Priority
			}
		case scene.ConstraintAlignBottom:
			if c.Priority <= yPri {
				y, yPri = ref.Bottom()-h-c.Offset, c.Priority
			}
		case scene.ConstraintCenterX:
			if c.Priority <= xPri {
				x, xPri = ref.CenterX()-w/2+c.Offset, c.Priority
			}
		case scene.ConstraintCenterY:
			if c.Priority <= yPri {
				y, yPri = ref.CenterY()-h/2+c.Offset, c.Priority
			}
		}
	}
	return x, y, nil
}
