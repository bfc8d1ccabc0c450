package statusbar

// WorkspacesStyle configures the appearance of a workspace strip.
type WorkspacesStyle struct {
	// CellWidth is the fixed width of each desktop cell in pixels.
	CellWidth float64

	// Foreground is the label color.
	Foreground RGBA

	// Background fills an inactive cell.
	Background RGBA

	// CurrentBackground fills the cell of the current desktop.
	CurrentBackground RGBA

	// HoverBackground fills a cell while the pointer is over it.
	HoverBackground RGBA

	// Underline is the color of the current-desktop marker drawn along
	// the bar's bottom edge.
	Underline RGBA

	// UnderlineHeight is the marker thickness. 0 uses 2 pixels.
	UnderlineHeight float64

	// FontSize is the label pixel size. 0 uses the bar's default.
	FontSize float64
}

// workspaceCell is the widget triple backing one desktop.
type workspaceCell struct {
	cell      WidgetID
	label     WidgetID
	underline WidgetID
}

// Workspaces is a strip of per-desktop cells: a label per desktop, the
// current one highlighted and marked with an underline at the bar's
// bottom edge, hover highlighting, and a click callback asking the
// window-system side to switch desktops.
//
// The widget tree's shape is fixed at startup, so the strip is built
// with a maximum cell count; SetNames relabels and hides cells instead
// of adding or removing them.
type Workspaces struct {
	bar      *Bar
	style    WorkspacesStyle
	cells    []workspaceCell
	visible  int
	current  int
	onSwitch func(int)
}

// NewWorkspaces builds a workspace strip under parent with room for
// maxCells desktops, all hidden until SetNames reveals them.
func NewWorkspaces(bar *Bar, parent WidgetID, maxCells int, style WorkspacesStyle) (*Workspaces, error) {
	if style.CellWidth <= 0 {
		style.CellWidth = 24
	}
	if style.UnderlineHeight <= 0 {
		style.UnderlineHeight = 2
	}

	w := &Workspaces{bar: bar, style: style, current: -1}
	for i := 0; i < maxCells; i++ {
		cell, err := bar.tree.AddContainer(parent, Style{
			Axis:       AxisColumn,
			Width:      style.CellWidth,
			Background: style.Background,
		})
		if err != nil {
			return nil, err
		}
		// Flexible spacers above and below the label keep it centered
		// while the underline stays pinned to the bar's bottom edge.
		if _, err := bar.tree.AddContainer(cell, Style{}); err != nil {
			return nil, err
		}
		label, err := bar.tree.AddText(cell, "", Style{
			Foreground: style.Foreground,
			FontSize:   style.FontSize,
		})
		if err != nil {
			return nil, err
		}
		if _, err := bar.tree.AddContainer(cell, Style{}); err != nil {
			return nil, err
		}
		underline, err := bar.tree.AddIcon(cell, Style{
			Width:      style.CellWidth,
			Height:     style.UnderlineHeight,
			Background: style.Underline,
		})
		if err != nil {
			return nil, err
		}

		_ = bar.tree.SetHidden(cell, true)
		_ = bar.tree.SetHidden(underline, true)
		bar.SetHoverHighlight(cell, style.HoverBackground)

		idx := i
		bar.OnClick(cell, func(ButtonPressEvent) {
			if w.onSwitch != nil && idx < w.visible {
				w.onSwitch(idx)
			}
		})

		w.cells = append(w.cells, workspaceCell{cell: cell, label: label, underline: underline})
	}
	return w, nil
}

// OnSwitch registers the callback invoked with the clicked desktop's
// index. Actually switching desktops is the window-system collaborator's
// job.
func (w *Workspaces) OnSwitch(fn func(int)) {
	w.onSwitch = fn
}

// Cells returns the number of cells the strip was built with.
func (w *Workspaces) Cells() int {
	return len(w.cells)
}

// SetNames relabels the strip. Names beyond the built capacity are
// ignored; cells beyond len(names) are hidden. Returns the number of
// visible cells.
func (w *Workspaces) SetNames(names []string) int {
	n := len(names)
	if n > len(w.cells) {
		n = len(w.cells)
	}
	for i, c := range w.cells {
		if i < n {
			_ = w.bar.tree.UpdateText(c.label, names[i])
			w.bar.remeasure(c.label)
			_ = w.bar.tree.SetHidden(c.cell, false)
		} else {
			_ = w.bar.tree.SetHidden(c.cell, true)
		}
	}
	w.visible = n
	if w.current >= n {
		w.SetCurrent(-1)
	}
	w.bar.relayout()
	w.bar.sched.RequestRedraw()
	return n
}

// SetCurrent marks the given desktop as current: its cell takes the
// current background and shows the underline marker. Pass a negative
// index to clear the marker.
func (w *Workspaces) SetCurrent(i int) {
	if i == w.current {
		return
	}
	if w.current >= 0 && w.current < len(w.cells) {
		prev := w.cells[w.current]
		_ = w.bar.tree.SetBackground(prev.cell, w.style.Background)
		_ = w.bar.tree.SetHidden(prev.underline, true)
		// Keep the saved hover background in sync so un-hovering does
		// not restore the stale current color.
		if spot, ok := w.bar.hovers[prev.cell]; ok && spot.active {
			spot.saved = w.style.Background
		}
	}
	w.current = -1
	if i >= 0 && i < w.visible {
		cur := w.cells[i]
		_ = w.bar.tree.SetBackground(cur.cell, w.style.CurrentBackground)
		_ = w.bar.tree.SetHidden(cur.underline, false)
		if spot, ok := w.bar.hovers[cur.cell]; ok && spot.active {
			spot.saved = w.style.CurrentBackground
		}
		w.current = i
	}
	w.bar.sched.RequestRedraw()
}

// Current returns the current desktop index, or -1 when none is marked.
func (w *Workspaces) Current() int {
	return w.current
}
