package statusbar

// Layout computes every widget's rectangle from the declared styles and
// the available bar size, mutating rectangles in place. It is a single
// top-down pass and a pure function of the tree's styles, intrinsic
// sizes, and the available size: identical inputs always produce
// identical rectangles.
//
// A container splits its main axis among children: fixed-size children
// consume their declared size, leaves consume their intrinsic size, and
// flexible children (containers without a fixed main size) share the
// remainder equally. If fixed and intrinsic sizes already exceed the
// available space, flexible children receive exactly zero main-axis
// size; no rectangle ever has negative dimensions.
func Layout(t *Tree, available Size) {
	if len(t.nodes) == 0 {
		return
	}
	t.nodes[0].rect = RectXYWH(0, 0, available.W, available.H)
	t.layoutChildren(0)
}

// mainSize returns a child's main-axis size contribution before flex
// distribution. The second result reports whether the child is flexible.
func (t *Tree) mainSize(id WidgetID, axis Axis) (float64, bool) {
	n := &t.nodes[id]
	if m, ok := n.style.fixedMain(axis); ok {
		return m, false
	}
	switch n.kind {
	case KindText, KindIcon:
		if axis == AxisRow {
			return n.intrinsic.W, false
		}
		return n.intrinsic.H, false
	default:
		return 0, true
	}
}

// crossSize returns a child's cross-axis size and whether it spans the
// full container extent.
func (t *Tree) crossSize(id WidgetID, axis Axis) (float64, bool) {
	n := &t.nodes[id]
	if c, ok := n.style.fixedCross(axis); ok {
		return c, false
	}
	switch n.kind {
	case KindText, KindIcon:
		if axis == AxisRow {
			return n.intrinsic.H, false
		}
		return n.intrinsic.W, false
	default:
		return 0, true
	}
}

func (t *Tree) layoutChildren(id WidgetID) {
	n := &t.nodes[id]
	if n.kind != KindContainer || len(n.children) == 0 {
		return
	}

	inner := n.rect.Inset(n.style.Padding)
	axis := n.style.Axis

	var mainAvail, crossAvail float64
	if axis == AxisRow {
		mainAvail, crossAvail = inner.Width(), inner.Height()
	} else {
		mainAvail, crossAvail = inner.Height(), inner.Width()
	}

	// First pass: sum the space consumed by fixed and intrinsic
	// children and count the flexible ones.
	var used float64
	var flexible int
	for _, c := range n.children {
		if m, isFlex := t.mainSize(c, axis); isFlex {
			flexible++
		} else {
			used += m
		}
	}

	var share float64
	if flexible > 0 {
		if rem := mainAvail - used; rem > 0 {
			share = rem / float64(flexible)
		}
	}

	// Second pass: place children along the main axis in order.
	cursor := 0.0
	for _, c := range n.children {
		main, isFlex := t.mainSize(c, axis)
		if isFlex {
			main = share
		}

		cross, full := t.crossSize(c, axis)
		var crossOff float64
		if full {
			cross = crossAvail
		} else {
			switch t.nodes[c].style.Align {
			case AlignStart:
				crossOff = 0
			case AlignEnd:
				crossOff = crossAvail - cross
			default:
				crossOff = (crossAvail - cross) / 2
			}
		}

		if axis == AxisRow {
			t.nodes[c].rect = RectXYWH(inner.Min.X+cursor, inner.Min.Y+crossOff, main, cross)
		} else {
			t.nodes[c].rect = RectXYWH(inner.Min.X+crossOff, inner.Min.Y+cursor, cross, main)
		}
		cursor += main

		t.layoutChildren(c)
	}
}
