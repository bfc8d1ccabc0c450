package statusbar

import "testing"

func newWorkspacesBar(t *testing.T, maxCells int) (*Bar, *Workspaces) {
	t.Helper()
	tree := NewTree(Style{})
	bar := New(tree, nil, nil, WithSize(400, 24))
	ws, err := NewWorkspaces(bar, tree.Root(), maxCells, WorkspacesStyle{
		CellWidth:         20,
		Background:        Black,
		CurrentBackground: RGB(0.2, 0.2, 0.4),
		HoverBackground:   RGB(0.3, 0.3, 0.3),
		Underline:         RGB(0.4, 0.6, 1),
	})
	if err != nil {
		t.Fatalf("NewWorkspaces: %v", err)
	}
	return bar, ws
}

func TestWorkspacesStartHidden(t *testing.T) {
	bar, ws := newWorkspacesBar(t, 4)
	if ws.Cells() != 4 {
		t.Fatalf("Cells = %d, want 4", ws.Cells())
	}
	for _, c := range ws.cells {
		if !bar.tree.Hidden(c.cell) {
			t.Errorf("cell %d visible before SetNames", c.cell)
		}
	}
}

func TestWorkspacesSetNames(t *testing.T) {
	bar, ws := newWorkspacesBar(t, 4)

	if n := ws.SetNames([]string{"web", "code", "chat"}); n != 3 {
		t.Fatalf("SetNames = %d, want 3", n)
	}
	for i, c := range ws.cells {
		wantHidden := i >= 3
		if got := bar.tree.Hidden(c.cell); got != wantHidden {
			t.Errorf("cell %d hidden = %v, want %v", i, got, wantHidden)
		}
	}
	if got := bar.tree.Text(ws.cells[1].label); got != "code" {
		t.Errorf("label[1] = %q, want %q", got, "code")
	}

	// More names than cells: extras are ignored.
	if n := ws.SetNames([]string{"a", "b", "c", "d", "e"}); n != 4 {
		t.Errorf("SetNames over capacity = %d, want 4", n)
	}
}

func TestWorkspacesSetCurrent(t *testing.T) {
	bar, ws := newWorkspacesBar(t, 3)
	ws.SetNames([]string{"one", "two", "three"})

	ws.SetCurrent(1)
	if ws.Current() != 1 {
		t.Fatalf("Current = %d, want 1", ws.Current())
	}
	if bar.tree.Hidden(ws.cells[1].underline) {
		t.Error("current cell's underline hidden")
	}
	if got := bar.tree.Style(ws.cells[1].cell).Background; got != ws.style.CurrentBackground {
		t.Errorf("current background = %+v, want %+v", got, ws.style.CurrentBackground)
	}

	ws.SetCurrent(2)
	if !bar.tree.Hidden(ws.cells[1].underline) {
		t.Error("previous cell's underline still visible")
	}
	if got := bar.tree.Style(ws.cells[1].cell).Background; got != ws.style.Background {
		t.Errorf("previous background = %+v, want restored %+v", got, ws.style.Background)
	}

	// Shrinking the visible set clears an out-of-range current marker.
	ws.SetNames([]string{"only"})
	if ws.Current() != -1 {
		t.Errorf("Current after shrink = %d, want -1", ws.Current())
	}
}

func TestWorkspacesClickSwitch(t *testing.T) {
	bar, ws := newWorkspacesBar(t, 3)
	ws.SetNames([]string{"one", "two", "three"})

	switched := -1
	ws.OnSwitch(func(i int) { switched = i })

	// Cells are 20px wide starting at x=0; click inside the second.
	bar.HandleEvent(ButtonPressEvent{Button: 1, X: 30, Y: 12})
	if switched != 1 {
		t.Errorf("switch callback got %d, want 1", switched)
	}

	// Clicks on hidden cells do nothing.
	ws.SetNames([]string{"one"})
	switched = -1
	bar.HandleEvent(ButtonPressEvent{Button: 1, X: 30, Y: 12})
	if switched != -1 {
		t.Errorf("hidden cell produced switch %d", switched)
	}
}

func TestWorkspacesUnderlineAtBottom(t *testing.T) {
	bar, ws := newWorkspacesBar(t, 1)
	ws.SetNames([]string{"one"})
	ws.SetCurrent(0)
	bar.relayout()

	u := bar.tree.Rect(ws.cells[0].underline)
	if u.Max.Y != 24 {
		t.Errorf("underline bottom = %v, want bar bottom 24", u.Max.Y)
	}
	if got := u.Height(); got != 2 {
		t.Errorf("underline height = %v, want 2", got)
	}
}
